package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRemote records how many times it was asked to translate.
type countingRemote struct {
	calls  int
	result RemoteResult
	err    error
}

func (c *countingRemote) FetchRemoteTranslation(_ context.Context, _ string, _ Options) (RemoteResult, error) {
	c.calls++
	return c.result, c.err
}

func TestSubmitNote_LocalPath(t *testing.T) {
	o := NewOrchestrator()

	out := o.SubmitNote(context.Background(), "  Pt w/ HTN and DM2 reports dyspnea  ", Options{Audience: AudienceAdult, Tone: ToneWarm})

	require.NotNil(t, out.Result)
	assert.Equal(t, StateLocalPath, out.State)
	assert.False(t, out.Degraded)
	assert.Equal(t, "the patient with high blood pressure and type 2 diabetes reports shortness of breath", out.Result.Simple)
	assert.Equal(t, []string{FallbackAction}, out.Result.Actions)
	assert.Equal(t, ComputeStats(out.Result.Simple), out.Stats)
	assert.Equal(t, "Clarity score: 78 (estimated). Actions found: 1.", out.Status)
	assert.Equal(t, out.Result.HTML, out.HTML)
}

func TestSubmitNote_EmptyInputSkipsRemote(t *testing.T) {
	remote := &countingRemote{}
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), " \n ", Options{UseAI: true})

	assert.Equal(t, 0, remote.calls)
	assert.Equal(t, StatePlaceholder, out.State)
	assert.Nil(t, out.Result)
	assert.Equal(t, placeholderHTML, out.HTML)
	assert.Equal(t, placeholderNotes, out.Status)
	assert.Equal(t, 0, out.Stats.WordCount)
	assert.Equal(t, 1, out.Stats.SentenceCount)
	assert.Equal(t, 1, out.Stats.ReadTimeMinutes)
}

func TestSubmitNote_RemoteDisabledUsesLocal(t *testing.T) {
	remote := &countingRemote{}
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), "BP ok", Options{UseAI: false})

	assert.Equal(t, 0, remote.calls)
	assert.Equal(t, StateLocalPath, out.State)
}

func TestSubmitNote_RemoteWithoutTranslatorUsesLocal(t *testing.T) {
	out := NewOrchestrator().SubmitNote(context.Background(), "BP ok", Options{UseAI: true})
	assert.Equal(t, StateLocalPath, out.State)
}

func TestSubmitNote_RemoteSuccess(t *testing.T) {
	remote := &countingRemote{result: RemoteResult{
		Simple:  "You have high blood pressure.",
		Actions: []string{"Take your pill each morning"},
	}}
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), "Pt w/ HTN", Options{UseAI: true, Highlight: true, Tone: ToneCoach})

	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, StateRemoteSuccess, out.State)
	assert.False(t, out.Degraded)
	require.NotNil(t, out.Result)
	assert.Equal(t, "You have high blood pressure.", out.Result.Simple)
	assert.Equal(t, []string{"Take your pill each morning"}, out.Result.Actions)
	assert.Contains(t, out.HTML, "<mark>high <mark>blood pressure</mark></mark>")
	assert.True(t, strings.HasPrefix(out.Status, "AI mode: clarity score "))
	assert.True(t, strings.HasSuffix(out.Status, "Actions found: 1."))
}

func TestSubmitNote_RemoteOutputFieldAndExtractedActions(t *testing.T) {
	remote := &countingRemote{result: RemoteResult{Output: "Rest for two days. Drink water."}}
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), "note", Options{UseAI: true})

	require.NotNil(t, out.Result)
	assert.Equal(t, "Rest for two days. Drink water.", out.Result.Simple)
	assert.Equal(t, []string{"Rest for two days"}, out.Result.Actions)
}

func TestSubmitNote_RemoteEmptyTextFallsBackToNote(t *testing.T) {
	remote := &countingRemote{result: RemoteResult{}}
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), "  raw note  ", Options{UseAI: true})

	require.NotNil(t, out.Result)
	assert.Equal(t, StateRemoteSuccess, out.State)
	assert.Equal(t, "raw note", out.Result.Simple)
	assert.Equal(t, []string{FallbackAction}, out.Result.Actions)
}

func TestSubmitNote_RemoteFailureFallsBack(t *testing.T) {
	remote := &countingRemote{err: errors.New("boom")}
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), "Pt w/ HTN. Return in 2 weeks.", Options{UseAI: true})

	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, StateLocalFallback, out.State)
	assert.True(t, out.Degraded)
	require.NotNil(t, out.Result)
	assert.Equal(t, "the patient with high blood pressure. Return in 2 weeks.", out.Result.Simple)
	assert.Equal(t, []string{"Return in 2 weeks"}, out.Result.Actions)
	assert.True(t, strings.HasPrefix(out.HTML, unavailableHTML))
	assert.True(t, strings.HasPrefix(out.Status, "Standard mode: clarity score "))
}

func TestSubmitNote_HTTP500FallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"AI request failed","details":"upstream down"}`))
	}))
	defer srv.Close()

	remote, err := NewHTTPRemote(srv.URL+"/translate", srv.Client())
	require.NoError(t, err)
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), "Pt w/ HTN and DM2 reports dyspnea", Options{UseAI: true})

	assert.True(t, out.Degraded)
	assert.Equal(t, StateLocalFallback, out.State)
	require.NotNil(t, out.Result)
	assert.NotEmpty(t, out.Result.Simple)
	assert.NotEmpty(t, out.Result.Actions)
	assert.Contains(t, out.Status, "Standard mode")
}

func TestSubmitNote_NullBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	remote, err := NewHTTPRemote(srv.URL+"/translate", srv.Client())
	require.NoError(t, err)
	o := NewOrchestrator(WithRemote(remote))

	out := o.SubmitNote(context.Background(), "Pt w/ HTN. Return in 2 weeks.", Options{UseAI: true})

	assert.True(t, out.Degraded)
	assert.Equal(t, StateLocalFallback, out.State)
	require.NotNil(t, out.Result)
	assert.Equal(t, "the patient with high blood pressure. Return in 2 weeks.", out.Result.Simple)
}

func TestSubmitNote_CustomRules(t *testing.T) {
	o := NewOrchestrator(
		WithRules([]ReplacementRule{Rule(`abx`, "antibiotics")}),
		WithHighlightTerms([]string{"antibiotics"}),
	)

	out := o.SubmitNote(context.Background(), "Take abx", Options{Highlight: true})

	require.NotNil(t, out.Result)
	assert.Equal(t, "Take antibiotics", out.Result.Simple)
	assert.Contains(t, out.HTML, "<mark>antibiotics</mark>")
}

func TestHTTPRemote_SendsRequest(t *testing.T) {
	var got remoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"simple":"plain","actions":["Call"]}`))
	}))
	defer srv.Close()

	remote, err := NewHTTPRemote(srv.URL, srv.Client())
	require.NoError(t, err)

	res, err := remote.FetchRemoteTranslation(context.Background(), "note", Options{Audience: "teen", Tone: "coach"})

	require.NoError(t, err)
	assert.Equal(t, remoteRequest{Text: "note", Audience: "teen", Tone: "coach"}, got)
	assert.Equal(t, RemoteResult{Simple: "plain", Actions: []string{"Call"}}, res)
}

func TestHTTPRemote_Errors(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		remote, _ := NewHTTPRemote(srv.URL, srv.Client())
		_, err := remote.FetchRemoteTranslation(context.Background(), "note", Options{})
		assert.ErrorIs(t, err, ErrRemoteStatus)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		remote, _ := NewHTTPRemote(srv.URL, srv.Client())
		_, err := remote.FetchRemoteTranslation(context.Background(), "note", Options{})
		assert.Error(t, err)
	})

	for _, body := range []string{`null`, `[]`, `"plain words"`} {
		t.Run("non-object body "+body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			remote, _ := NewHTTPRemote(srv.URL, srv.Client())
			_, err := remote.FetchRemoteTranslation(context.Background(), "note", Options{})
			assert.Error(t, err)
		})
	}

	t.Run("missing endpoint", func(t *testing.T) {
		_, err := NewHTTPRemote("", nil)
		assert.Error(t, err)
	})
}
