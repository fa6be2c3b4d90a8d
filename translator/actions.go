package translator

import (
	"regexp"
	"strings"
)

// FallbackAction is returned when no sentence looks like an instruction.
const FallbackAction = "Ask your care team to explain any parts you do not understand."

var (
	actionVerbs    = regexp.MustCompile(`(?i)(recommend|start|schedule|call|follow|return|take|rest|encourage)`)
	sentenceBreaks = regexp.MustCompile(`[.!?]`)
)

// ExtractActions keeps the sentences that mention an action verb. The result
// always has at least one entry.
func ExtractActions(text string) []string {
	var actions []string
	for _, s := range splitSentences(text) {
		if actionVerbs.MatchString(s) {
			actions = append(actions, s)
		}
	}
	if len(actions) == 0 {
		return []string{FallbackAction}
	}
	return actions
}

// splitSentences splits on . ! ? and drops blank pieces.
func splitSentences(text string) []string {
	var out []string
	for _, part := range sentenceBreaks.Split(text, -1) {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
