package generator

import (
	"context"
	"encoding/json"
	"strings"
)

// MockLLM answers without calling a provider: it echoes the note back as the
// simplified text. Useful for local runs without an API key.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	note := prompt.User
	if i := strings.Index(note, "Note: "); i >= 0 {
		note = note[i+len("Note: "):]
	}
	out, err := json.Marshal(Translation{Simple: note, Actions: []string{}})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
