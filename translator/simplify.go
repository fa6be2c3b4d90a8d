package translator

import "strings"

// Simplifier expands clinical shorthand using an ordered rule list.
type Simplifier struct {
	rules []ReplacementRule
}

// NewSimplifier copies rules so later changes by the caller have no effect.
func NewSimplifier(rules []ReplacementRule) *Simplifier {
	own := make([]ReplacementRule, len(rules))
	copy(own, rules)
	return &Simplifier{rules: own}
}

// Simplify applies every rule in order, each over the previous result, then
// collapses whitespace runs and trims.
func (s *Simplifier) Simplify(text string) string {
	out := text
	for _, r := range s.rules {
		out = r.Pattern.ReplaceAllLiteralString(out, r.Replacement)
	}
	return strings.Join(strings.Fields(out), " ")
}

var defaultSimplifier = NewSimplifier(defaultRules)

// Simplify runs the built-in rule table.
func Simplify(text string) string {
	return defaultSimplifier.Simplify(text)
}
