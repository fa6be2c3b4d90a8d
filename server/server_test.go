package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AkashAS-coder/Clarity-Care/config"
	"github.com/AkashAS-coder/Clarity-Care/export"
	"github.com/AkashAS-coder/Clarity-Care/generator"
	"github.com/AkashAS-coder/Clarity-Care/translator"
)

// --- Test helpers ---

type stubLLM struct {
	reply string
	err   error
	calls int
}

func (s *stubLLM) Complete(_ context.Context, _ generator.Prompt) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newTestServer(t *testing.T, llm generator.LLMClient) http.Handler {
	t.Helper()
	agent, err := generator.NewAgent(llm)
	require.NoError(t, err)
	srv, err := New(agent, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// --- POST /translate ---

func TestNew_RequiresAgent(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestTranslate_Success(t *testing.T) {
	llm := &stubLLM{reply: `{"simple":" You have high blood pressure. ","actions":["Take your pill"]}`}
	h := newTestServer(t, llm)

	rec := do(t, h, http.MethodPost, "/translate", `{"text":"Pt w/ HTN","audience":"teen","tone":"coach"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[translateResp](t, rec)
	assert.Equal(t, translateResp{Simple: "You have high blood pressure.", Actions: []string{"Take your pill"}}, got)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestTranslate_MissingText(t *testing.T) {
	llm := &stubLLM{}
	h := newTestServer(t, llm)

	for _, body := range []string{`{}`, `{"text":""}`} {
		rec := do(t, h, http.MethodPost, "/translate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, errorResp{Error: "Missing text"}, decode[errorResp](t, rec))
	}
	assert.Equal(t, 0, llm.calls)
}

func TestTranslate_InvalidJSON(t *testing.T) {
	rec := do(t, newTestServer(t, &stubLLM{}), http.MethodPost, "/translate", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranslate_UpstreamFailure(t *testing.T) {
	llm := &stubLLM{err: &generator.UpstreamError{StatusCode: 502, Body: "bad gateway"}}

	rec := do(t, newTestServer(t, llm), http.MethodPost, "/translate", `{"text":"note"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errorResp{Error: "AI request failed", Details: "bad gateway"}, decode[errorResp](t, rec))
}

func TestTranslate_BodyTooLarge(t *testing.T) {
	llm := &stubLLM{}
	body := `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	rec := do(t, newTestServer(t, llm), http.MethodPost, "/translate", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, 0, llm.calls)
}

// defaultModelClient builds the real OpenAI client from config.Default(),
// pointed at upstream.
func defaultModelClient(t *testing.T, upstream string) generator.LLMClient {
	t.Helper()
	c := config.Default()
	llm, err := generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Provider:    c.LLM.Provider,
		Model:       c.LLM.Model,
		APIKey:      "sk-test",
		BaseURL:     upstream,
		App:         c.LLM.App,
		Temperature: c.LLM.Temperature,
		MaxRetries:  c.LLM.MaxRetries,
	})
	require.NoError(t, err)
	return llm
}

func TestTranslate_UpstreamBodyInDetails(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer upstream.Close()

	rec := do(t, newTestServer(t, defaultModelClient(t, upstream.URL)), http.MethodPost, "/translate", `{"text":"Pt w/ HTN"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decode[errorResp](t, rec)
	assert.Equal(t, errorResp{Error: "AI request failed", Details: "upstream exploded"}, got)
	assert.NotContains(t, rec.Body.String(), upstream.URL)
	assert.Equal(t, int32(1), calls.Load(), "one model call per request")
}

func TestTranslate_UpstreamJSONErrorInDetails(t *testing.T) {
	const body = `{"error":{"message":"No auth credentials found","code":401}}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(body))
	}))
	defer upstream.Close()

	rec := do(t, newTestServer(t, defaultModelClient(t, upstream.URL)), http.MethodPost, "/translate", `{"text":"note"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, body, decode[errorResp](t, rec).Details)
}

func TestTranslate_UnexpectedFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("dial tcp: connection refused")}

	rec := do(t, newTestServer(t, llm), http.MethodPost, "/translate", `{"text":"note"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errorResp{Error: "Server error"}, decode[errorResp](t, rec))
}

func TestTranslate_UnparseableModelOutput(t *testing.T) {
	llm := &stubLLM{reply: "Plain words only."}

	rec := do(t, newTestServer(t, llm), http.MethodPost, "/translate", `{"text":"note"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"simple":"Plain words only.","actions":[]}`, rec.Body.String())
}

func TestTranslate_MethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t, &stubLLM{}), http.MethodGet, "/translate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	rec := do(t, newTestServer(t, &stubLLM{}), http.MethodOptions, "/translate", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// --- Supplementary API ---

func TestRender_Local(t *testing.T) {
	llm := &stubLLM{}
	rec := do(t, newTestServer(t, llm), http.MethodPost, "/api/render",
		`{"text":"Pt w/ HTN and DM2 reports dyspnea","highlight":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[translator.Outcome](t, rec)
	require.NotNil(t, out.Result)
	assert.Equal(t, translator.StateLocalPath, out.State)
	assert.Contains(t, out.HTML, "<mark>high <mark>blood pressure</mark></mark>")
	assert.Equal(t, 0, llm.calls)
}

func TestRender_AIFallsBackOnFailure(t *testing.T) {
	llm := &stubLLM{err: &generator.UpstreamError{StatusCode: 500, Body: "down"}}
	rec := do(t, newTestServer(t, llm), http.MethodPost, "/api/render", `{"text":"BP high","use_ai":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[translator.Outcome](t, rec)
	assert.True(t, out.Degraded)
	assert.Equal(t, translator.StateLocalFallback, out.State)
	assert.Equal(t, 1, llm.calls)
}

func TestRender_EmptyNoteIsPlaceholder(t *testing.T) {
	llm := &stubLLM{}
	rec := do(t, newTestServer(t, llm), http.MethodPost, "/api/render", `{"text":"","use_ai":true}`)

	out := decode[translator.Outcome](t, rec)
	assert.Equal(t, translator.StatePlaceholder, out.State)
	assert.Equal(t, 0, llm.calls)
}

func TestStats(t *testing.T) {
	rec := do(t, newTestServer(t, &stubLLM{}), http.MethodPost, "/api/stats", `{"text":"Take your medicine. Rest today."}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[translator.ReadabilityStats](t, rec)
	assert.Equal(t, translator.ComputeStats("Take your medicine. Rest today."), got)
}

func TestExport_PlainText(t *testing.T) {
	rec := do(t, newTestServer(t, &stubLLM{}), http.MethodPost, "/api/export", `{"text":"Pt w/ HTN. Return in 2 weeks."}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="`+export.Filename+`"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "the patient with high blood pressure. Return in 2 weeks.\n\nNext steps:\n- Return in 2 weeks", rec.Body.String())
}

func TestExport_Errors(t *testing.T) {
	h := newTestServer(t, &stubLLM{})

	rec := do(t, h, http.MethodPost, "/api/export", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/export", `{"text":"x","format":"pdf"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSamplesAndHealth(t *testing.T) {
	h := newTestServer(t, &stubLLM{})

	rec := do(t, h, http.MethodGet, "/api/samples", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]translator.Sample](t, rec), 3)

	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLogMiddleware_KeepsRequestID(t *testing.T) {
	h := newTestServer(t, &stubLLM{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
