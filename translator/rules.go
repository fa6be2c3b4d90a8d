package translator

import "regexp"

// ReplacementRule rewrites every match of Pattern with the literal Replacement.
type ReplacementRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Rule compiles a case-insensitive pattern into a ReplacementRule. It panics on
// a bad pattern, so it is meant for package-level tables and tests.
func Rule(pattern, replacement string) ReplacementRule {
	return ReplacementRule{
		Pattern:     regexp.MustCompile(`(?i)` + pattern),
		Replacement: replacement,
	}
}

// Order matters: each rule runs over the output of the previous one, so short
// patterns near the end (ed, er, hr) also hit text produced by earlier rules.
var defaultRules = []ReplacementRule{
	Rule(`(pt\b|patient\b)`, "the patient"),
	Rule(`(hx|history) of`, "history of"),
	Rule(`htn`, "high blood pressure"),
	Rule(`dm2|t2dm`, "type 2 diabetes"),
	Rule(`dyspnea`, "shortness of breath"),
	Rule(`sob`, "shortness of breath"),
	Rule(`echo`, "heart ultrasound"),
	Rule(`acei`, "blood pressure medicine"),
	Rule(`f/u|follow[- ]?up`, "follow-up appointment"),
	Rule(`prn`, "as needed"),
	Rule(`bid`, "twice a day"),
	Rule(`qd`, "once a day"),
	Rule(`qhs`, "at bedtime"),
	Rule(`dx`, "diagnosis"),
	Rule(`rx`, "prescription"),
	Rule(`labs?`, "blood tests"),
	Rule(`stat`, "right away"),
	Rule(`w/`, "with"),
	Rule(`c/`, "with"),
	Rule(`r/o`, "rule out"),
	Rule(`neg`, "negative"),
	Rule(`pos`, "positive"),
	Rule(`ed`, "emergency department"),
	Rule(`er`, "emergency room"),
	Rule(`bp`, "blood pressure"),
	Rule(`hr`, "heart rate"),
}

var defaultHighlightTerms = []string{
	"high blood pressure",
	"type 2 diabetes",
	"shortness of breath",
	"heart ultrasound",
	"blood pressure medicine",
	"follow-up appointment",
	"blood tests",
	"emergency department",
	"emergency room",
	"blood pressure",
	"heart rate",
}

// DefaultRules returns a copy of the built-in shorthand table.
func DefaultRules() []ReplacementRule {
	out := make([]ReplacementRule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// DefaultHighlightTerms returns a copy of the built-in highlight list.
func DefaultHighlightTerms() []string {
	out := make([]string, len(defaultHighlightTerms))
	copy(out, defaultHighlightTerms)
	return out
}
