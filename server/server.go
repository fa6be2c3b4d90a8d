package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AkashAS-coder/Clarity-Care/export"
	"github.com/AkashAS-coder/Clarity-Care/generator"
	"github.com/AkashAS-coder/Clarity-Care/translator"
)

const maxBodyBytes = 1 << 20

type Server struct {
	agent   *generator.Agent
	orch    *translator.Orchestrator
	logger  *zap.Logger
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds each model call. Zero leaves it to the transport.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

func New(agent *generator.Agent, opts ...Option) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	s := &Server{agent: agent, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.orch = translator.NewOrchestrator(
		translator.WithRemote(agent),
		translator.WithLogger(s.logger),
	)
	return s, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/translate", s.handleTranslate)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/samples", s.handleSamples)
	mux.HandleFunc("/healthz", s.handleHealth)
	return s.logMiddleware(corsMiddleware(mux))
}

// --- Handlers ---

type translateReq struct {
	Text     string `json:"text"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
}

type translateResp struct {
	Simple  string   `json:"simple"`
	Actions []string `json:"actions"`
}

type errorResp struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type renderReq struct {
	Text      string `json:"text"`
	Audience  string `json:"audience"`
	Tone      string `json:"tone"`
	Highlight bool   `json:"highlight"`
	UseAI     bool   `json:"use_ai"`
	Format    string `json:"format,omitempty"`
}

func (r renderReq) options() translator.Options {
	return translator.Options{
		Audience:  r.Audience,
		Tone:      r.Tone,
		Highlight: r.Highlight,
		UseAI:     r.UseAI,
	}
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errorResp{Error: "Method not allowed"})
		return
	}
	var req translateReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, errorResp{Error: "Missing text"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()
	tr, err := s.agent.Translate(ctx, generator.Request{Text: req.Text, Audience: req.Audience, Tone: req.Tone})
	if err != nil {
		var upErr *generator.UpstreamError
		if errors.As(err, &upErr) {
			s.logger.Warn("model request failed", zap.Int("status", upErr.StatusCode), zap.String("request_id", requestID(r)))
			writeError(w, http.StatusInternalServerError, errorResp{Error: "AI request failed", Details: upErr.Body})
			return
		}
		s.logger.Error("translate failed", zap.Error(err), zap.String("request_id", requestID(r)))
		writeError(w, http.StatusInternalServerError, errorResp{Error: "Server error"})
		return
	}

	actions := tr.Actions
	if actions == nil {
		actions = []string{}
	}
	writeJSON(w, http.StatusOK, translateResp{Simple: tr.Simple, Actions: actions})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errorResp{Error: "Method not allowed"})
		return
	}
	var req renderReq
	if !decodeBody(w, r, &req) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, s.orch.SubmitNote(ctx, req.Text, req.options()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errorResp{Error: "Method not allowed"})
		return
	}
	var req renderReq
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, translator.ComputeStats(req.Text))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errorResp{Error: "Method not allowed"})
		return
	}
	var req renderReq
	if !decodeBody(w, r, &req) {
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()
	out := s.orch.SubmitNote(ctx, req.Text, req.options())
	if out.Result == nil {
		writeError(w, http.StatusBadRequest, errorResp{Error: "Missing text"})
		return
	}

	body, contentType, filename, err := export.Render(*out.Result, format)
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errorResp{Error: "Server error"})
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errorResp{Error: "Method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, translator.Samples())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Helpers ---

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(r.Context(), s.timeout)
	}
	return context.WithCancel(r.Context())
}

// decodeBody reads a JSON request capped at maxBodyBytes and writes the
// 413 or 400 response itself when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, errorResp{Error: "Request body too large"})
		return false
	}
	writeError(w, http.StatusBadRequest, errorResp{Error: "Invalid JSON body"})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, e errorResp) {
	writeJSON(w, status, e)
}

type ctxKey struct{}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", id),
		)
	})
}

// corsMiddleware allows any origin; the API carries no credentials.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
