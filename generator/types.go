package generator

import "fmt"

// Request is one note to rewrite.
type Request struct {
	Text     string `json:"text"`
	Audience string `json:"audience,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

// Translation is the model's plain-language rewrite.
type Translation struct {
	Simple  string   `json:"simple"`
	Actions []string `json:"actions"`
}

// UpstreamError reports a non-2xx answer from the model provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model request failed with status %d: %s", e.StatusCode, e.Body)
}
