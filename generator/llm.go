package generator

import (
	"context"
	"time"
)

// LLMClient abstracts the chat model so tests can swap in a fake.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings is the provider configuration handed to a concrete client.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Site        string
	App         string
	Temperature float64
	MaxRetries  int
	Timeout     time.Duration
}
