package translator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// State is the terminal state of one SubmitNote call.
type State string

const (
	StatePlaceholder   State = "placeholder"
	StateLocalPath     State = "local"
	StateRemoteSuccess State = "remote_success"
	StateLocalFallback State = "local_fallback"
)

const (
	placeholderHTML  = `<div class="result-card">Paste a doctor's note to translate.</div>`
	placeholderNotes = "Paste a note to see translation notes."
	unavailableHTML  = `<div class="result-card">AI service unavailable. Using standard translation.</div>`
)

// Options carries the per-request presentation choices.
type Options struct {
	Audience  string `json:"audience"`
	Tone      string `json:"tone"`
	Highlight bool   `json:"highlight"`
	UseAI     bool   `json:"use_ai"`
}

// RemoteResult is the body returned by an AI translation endpoint. Older
// deployments send the text as "output" instead of "simple".
type RemoteResult struct {
	Simple  string   `json:"simple"`
	Output  string   `json:"output,omitempty"`
	Actions []string `json:"actions"`
}

// RemoteTranslator fetches an AI-generated translation.
type RemoteTranslator interface {
	FetchRemoteTranslation(ctx context.Context, text string, opts Options) (RemoteResult, error)
}

// RemoteFunc adapts a function to RemoteTranslator.
type RemoteFunc func(ctx context.Context, text string, opts Options) (RemoteResult, error)

func (f RemoteFunc) FetchRemoteTranslation(ctx context.Context, text string, opts Options) (RemoteResult, error) {
	return f(ctx, text, opts)
}

// Outcome is everything a caller needs to render one translation.
type Outcome struct {
	Result    *TranslationResult `json:"result,omitempty"`
	HTML      string             `json:"html"`
	Stats     ReadabilityStats   `json:"stats"`
	NoteStats ReadabilityStats   `json:"note_stats"`
	State     State              `json:"state"`
	Degraded  bool               `json:"degraded"`
	Status    string             `json:"status"`
}

// Orchestrator picks between the local pipeline and a remote translator.
// It keeps no per-request state, so concurrent calls do not interfere.
type Orchestrator struct {
	simplifier *Simplifier
	composer   Composer
	remote     RemoteTranslator
	logger     *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRemote enables the AI path for requests that ask for it.
func WithRemote(r RemoteTranslator) Option {
	return func(o *Orchestrator) { o.remote = r }
}

// WithRules replaces the shorthand table.
func WithRules(rules []ReplacementRule) Option {
	return func(o *Orchestrator) { o.simplifier = NewSimplifier(rules) }
}

// WithHighlightTerms replaces the highlight list.
func WithHighlightTerms(terms []string) Option {
	return func(o *Orchestrator) { o.composer.Highlighter = NewHighlighter(terms) }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		simplifier: defaultSimplifier,
		composer:   Composer{Highlighter: defaultHighlighter},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SubmitNote translates note. It never fails: a remote error degrades to the
// local pipeline and is reported through Outcome.Degraded and Outcome.Status.
func (o *Orchestrator) SubmitNote(ctx context.Context, note string, opts Options) Outcome {
	text := strings.TrimSpace(note)
	if text == "" {
		return Outcome{
			HTML:      placeholderHTML,
			Stats:     ComputeStats(""),
			NoteStats: ComputeStats(note),
			State:     StatePlaceholder,
			Status:    placeholderNotes,
		}
	}

	if !opts.UseAI || o.remote == nil {
		res := o.local(text, opts)
		stats := ComputeStats(res.Simple)
		return Outcome{
			Result:    &res,
			HTML:      res.HTML,
			Stats:     stats,
			NoteStats: ComputeStats(note),
			State:     StateLocalPath,
			Status:    fmt.Sprintf("Clarity score: %d (estimated). Actions found: %d.", stats.ReadingEase, len(res.Actions)),
		}
	}

	o.logger.Debug("requesting remote translation", zap.Int("chars", len(text)))
	remote, err := o.remote.FetchRemoteTranslation(ctx, text, opts)
	if err != nil {
		o.logger.Warn("remote translation failed, using local fallback", zap.Error(err))
		res := o.local(text, opts)
		stats := ComputeStats(res.Simple)
		return Outcome{
			Result:    &res,
			HTML:      unavailableHTML + res.HTML,
			Stats:     stats,
			NoteStats: ComputeStats(note),
			State:     StateLocalFallback,
			Degraded:  true,
			Status:    fmt.Sprintf("Standard mode: clarity score %d. Actions found: %d.", stats.ReadingEase, len(res.Actions)),
		}
	}

	simple := remote.Simple
	if simple == "" {
		simple = remote.Output
	}
	actions := remote.Actions
	if len(actions) == 0 {
		actions = ExtractActions(simple)
	}
	if simple == "" {
		simple = text
	}
	res := o.composer.Compose(simple, actions, opts.Audience, opts.Tone, opts.Highlight)
	stats := ComputeStats(res.Simple)
	return Outcome{
		Result:    &res,
		HTML:      res.HTML,
		Stats:     stats,
		NoteStats: ComputeStats(note),
		State:     StateRemoteSuccess,
		Status:    fmt.Sprintf("AI mode: clarity score %d. Actions found: %d.", stats.ReadingEase, len(res.Actions)),
	}
}

func (o *Orchestrator) local(text string, opts Options) TranslationResult {
	simple := o.simplifier.Simplify(text)
	return o.composer.Compose(simple, ExtractActions(simple), opts.Audience, opts.Tone, opts.Highlight)
}
