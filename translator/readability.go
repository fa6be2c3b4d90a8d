package translator

import (
	"math"
	"regexp"
	"strings"
)

// Clarity buckets derived from the reading-ease score.
const (
	ClarityEasy     = "Easy"
	ClarityStandard = "Standard"
	ClarityComplex  = "Complex"
)

const wordsPerMinute = 200

// ReadabilityStats summarises how hard a text is to read.
type ReadabilityStats struct {
	WordCount       int    `json:"word_count"`
	SentenceCount   int    `json:"sentence_count"`
	SyllableCount   int    `json:"syllable_count"`
	ReadingEase     int    `json:"reading_ease"`
	ReadTimeMinutes int    `json:"read_time_minutes"`
	Clarity         string `json:"clarity"`
}

var (
	wordPattern  = regexp.MustCompile(`\b[\w']+\b`)
	silentEnding = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingY     = regexp.MustCompile(`^y`)
	vowelGroup   = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// ComputeStats scores text with a Flesch-style reading-ease formula. The score
// is not clamped and may fall outside 0..100.
func ComputeStats(text string) ReadabilityStats {
	words := wordPattern.FindAllString(strings.TrimSpace(text), -1)
	wordCount := len(words)
	sentenceCount := max(len(splitSentences(text)), 1)

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	// Explicit conversions keep the products from being fused into FMA
	// instructions, so scores match across architectures.
	ease := 206.835 -
		float64(1.015*(float64(wordCount)/float64(sentenceCount))) -
		float64(84.6*(float64(syllables)/float64(max(wordCount, 1))))
	score := roundHalfUp(ease)

	return ReadabilityStats{
		WordCount:       wordCount,
		SentenceCount:   sentenceCount,
		SyllableCount:   syllables,
		ReadingEase:     score,
		ReadTimeMinutes: max(1, (wordCount+wordsPerMinute-1)/wordsPerMinute),
		Clarity:         clarityLabel(score),
	}
}

// CountSyllables estimates syllables in a single word; never less than 1.
func CountSyllables(word string) int {
	cleaned := silentEnding.ReplaceAllString(strings.ToLower(word), "")
	cleaned = leadingY.ReplaceAllString(cleaned, "")
	if n := len(vowelGroup.FindAllStringIndex(cleaned, -1)); n > 0 {
		return n
	}
	return 1
}

func clarityLabel(score int) string {
	switch {
	case score >= 80:
		return ClarityEasy
	case score <= 50:
		return ClarityComplex
	default:
		return ClarityStandard
	}
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
