package generator

import (
	"context"
	"errors"

	"github.com/AkashAS-coder/Clarity-Care/translator"
)

// Agent turns notes into plain-language translations with an LLM.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Translate sends one note to the model. Only transport and provider errors
// are returned; unparseable output still yields a Translation.
func (a *Agent) Translate(ctx context.Context, req Request) (Translation, error) {
	if req.Text == "" {
		return Translation{}, errors.New("note text is required")
	}
	raw, err := a.llm.Complete(ctx, BuildTranslatePrompt(req))
	if err != nil {
		return Translation{}, err
	}
	return ParseTranslation(raw), nil
}

// FetchRemoteTranslation lets the agent back a translator.Orchestrator
// in-process, without an HTTP hop.
func (a *Agent) FetchRemoteTranslation(ctx context.Context, text string, opts translator.Options) (translator.RemoteResult, error) {
	tr, err := a.Translate(ctx, Request{Text: text, Audience: opts.Audience, Tone: opts.Tone})
	if err != nil {
		return translator.RemoteResult{}, err
	}
	return translator.RemoteResult{Simple: tr.Simple, Actions: tr.Actions}, nil
}
