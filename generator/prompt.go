package generator

import "fmt"

// Prompt is the message pair sent to the model.
type Prompt struct {
	System string
	User   string
}

const systemPrompt = "You rewrite medical notes into clear, respectful plain language. " +
	"Return JSON with keys: simple (string), actions (array of short sentences). " +
	"Keep medical meaning intact and avoid adding new facts."

// BuildTranslatePrompt asks the model for a JSON object with simple and
// actions. Missing audience and tone default to adult and warm.
func BuildTranslatePrompt(req Request) Prompt {
	audience := req.Audience
	if audience == "" {
		audience = "adult"
	}
	tone := req.Tone
	if tone == "" {
		tone = "warm"
	}
	return Prompt{
		System: systemPrompt,
		User:   fmt.Sprintf("Audience: %s\nTone: %s\nNote: %s", audience, tone, req.Text),
	}
}
