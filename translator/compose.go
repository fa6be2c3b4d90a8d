package translator

import "strings"

// TranslationResult is what every translation path hands back.
type TranslationResult struct {
	Simple  string   `json:"simple"`
	Actions []string `json:"actions"`
	HTML    string   `json:"html"`
}

// Questions shown under every result.
var followUpQuestions = []string{
	"What should I watch for at home?",
	"When should I come back or call?",
	"What changes can I make this week?",
}

// Composer renders results. A nil Highlighter falls back to the default list.
type Composer struct {
	Highlighter *Highlighter
}

// Compose builds the markup fragment for an already simplified text.
func (c Composer) Compose(simple string, actions []string, audience, tone string, highlight bool) TranslationResult {
	if len(actions) == 0 {
		actions = []string{FallbackAction}
	}

	body := EscapeHTML(simple)
	if highlight {
		h := c.Highlighter
		if h == nil {
			h = defaultHighlighter
		}
		body = h.Highlight(simple)
	}

	var sb strings.Builder
	sb.WriteString(`<div class="result-card">`)
	sb.WriteString(`<div class="chip">Plain-language version</div>`)
	sb.WriteString("<p>" + AudienceIntro(audience) + "</p>")
	sb.WriteString("<p>" + body + "</p>")
	sb.WriteString("</div>")

	sb.WriteString(`<div class="result-card">`)
	sb.WriteString("<strong>" + ToneHeadline(tone) + "</strong>")
	sb.WriteString("<ul>")
	for _, a := range actions {
		sb.WriteString("<li>" + EscapeHTML(a) + ".</li>")
	}
	sb.WriteString("</ul>")
	sb.WriteString("</div>")

	sb.WriteString(`<div class="result-card">`)
	sb.WriteString("<strong>What to ask next</strong>")
	sb.WriteString("<ul>")
	for _, q := range followUpQuestions {
		sb.WriteString("<li>" + q + "</li>")
	}
	sb.WriteString("</ul>")
	sb.WriteString("</div>")

	return TranslationResult{
		Simple:  simple,
		Actions: actions,
		HTML:    sb.String(),
	}
}

// Compose renders with the default highlight terms.
func Compose(simple string, actions []string, audience, tone string, highlight bool) TranslationResult {
	return Composer{}.Compose(simple, actions, audience, tone, highlight)
}

// BuildLocal runs the local pipeline: simplify, extract actions, compose.
func BuildLocal(note, audience, tone string, highlight bool) TranslationResult {
	simple := Simplify(note)
	return Compose(simple, ExtractActions(simple), audience, tone, highlight)
}
