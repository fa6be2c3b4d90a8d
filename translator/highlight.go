package translator

import (
	"regexp"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five characters that matter inside element content
// and attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Highlighter wraps known plain-language terms in <mark> tags.
type Highlighter struct {
	patterns []*regexp.Regexp
}

// NewHighlighter builds whole-word, case-insensitive matchers for terms,
// keeping their order.
func NewHighlighter(terms []string) *Highlighter {
	h := &Highlighter{patterns: make([]*regexp.Regexp, 0, len(terms))}
	for _, term := range terms {
		h.patterns = append(h.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return h
}

// Highlight escapes text and marks every term occurrence. Terms are applied in
// order over the already-marked output, so a shorter term nested in a longer
// one ends up wrapped twice.
func (h *Highlighter) Highlight(text string) string {
	out := EscapeHTML(text)
	for _, re := range h.patterns {
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			return "<mark>" + m + "</mark>"
		})
	}
	return out
}

var defaultHighlighter = NewHighlighter(defaultHighlightTerms)

// Highlight marks the built-in term list.
func Highlight(text string) string {
	return defaultHighlighter.Highlight(text)
}
