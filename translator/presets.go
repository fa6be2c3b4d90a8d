package translator

import (
	"slices"
	"strings"
)

// Audience and tone keys understood by the composer.
const (
	AudienceAdult     = "adult"
	AudienceTeen      = "teen"
	AudienceCaregiver = "caregiver"
	AudienceESL       = "esl"

	ToneWarm   = "warm"
	ToneDirect = "direct"
	ToneCoach  = "coach"

	DefaultAudience = AudienceAdult
	DefaultTone     = ToneWarm
)

var audienceIntros = map[string]string{
	AudienceAdult:     "Here is a clear explanation:",
	AudienceTeen:      "Here is a simpler, teen-friendly explanation:",
	AudienceCaregiver: "Here is a clear explanation for family or caregivers:",
	AudienceESL:       "Here is a plain-English explanation (short sentences):",
}

var toneHeadlines = map[string]string{
	ToneWarm:   "You are not alone. This is common and treatable.",
	ToneDirect: "Key points and next steps:",
	ToneCoach:  "Here is what you can do next:",
}

// AudienceIntro returns the intro line for key, falling back to the adult
// preset for unknown keys.
func AudienceIntro(key string) string {
	if s, ok := audienceIntros[normalizeKey(key)]; ok {
		return s
	}
	return audienceIntros[DefaultAudience]
}

// ToneHeadline returns the headline for key, falling back to warm.
func ToneHeadline(key string) string {
	if s, ok := toneHeadlines[normalizeKey(key)]; ok {
		return s
	}
	return toneHeadlines[DefaultTone]
}

// ResolveAudience maps key onto a known audience.
func ResolveAudience(key string) string {
	if _, ok := audienceIntros[normalizeKey(key)]; ok {
		return normalizeKey(key)
	}
	return DefaultAudience
}

// ResolveTone maps key onto a known tone.
func ResolveTone(key string) string {
	if _, ok := toneHeadlines[normalizeKey(key)]; ok {
		return normalizeKey(key)
	}
	return DefaultTone
}

// Audiences lists the audience keys in a stable order.
func Audiences() []string {
	return sortedKeys(audienceIntros)
}

// Tones lists the tone keys in a stable order.
func Tones() []string {
	return sortedKeys(toneHeadlines)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
