// Package sentiment scores the polarity, emotion mix and confidence of a text
// from lexicon matches.
//
// All regular expressions are compiled once at package initialization, so
// Analyze is safe for concurrent use by multiple goroutines.
package sentiment

import (
	"regexp"
	"strings"
)

// Labels returned by Analyze.
const (
	LabelVeryPositive = "Very Positive"
	LabelPositive     = "Positive"
	LabelNeutral      = "Neutral"
	LabelNegative     = "Negative"
	LabelVeryNegative = "Very Negative"
)

const (
	neutralScore    = 0.5
	minConfidence   = 0.3
	maxConfidence   = 0.9
	confidenceWords = 20
	maxKeywords     = 5
)

// Result holds the sentiment analysis output.
type Result struct {
	Score      float64            `json:"score"`      // 0.0 to 1.0
	Label      string             `json:"label"`      // Very Negative .. Very Positive
	Confidence float64            `json:"confidence"` // 0.3 to 0.9
	Emotions   map[string]float64 `json:"emotions"`   // normalized, sums to 1 when non-empty
	Keywords   []string           `json:"keywords"`   // at most 5, lexicon order
}

type lexiconEntry struct {
	word string
	re   *regexp.Regexp
}

type emotionEntry struct {
	name string
	re   *regexp.Regexp
}

var (
	positiveLexicon = compileLexicon(positiveWords)
	negativeLexicon = compileLexicon(negativeWords)
	emotions        = compileEmotions()
)

func compileLexicon(words []string) []lexiconEntry {
	entries := make([]lexiconEntry, len(words))
	for i, w := range words {
		entries[i] = lexiconEntry{
			word: w,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`),
		}
	}
	return entries
}

func compileEmotions() []emotionEntry {
	entries := make([]emotionEntry, len(emotionPatterns))
	for i, p := range emotionPatterns {
		entries[i] = emotionEntry{name: p.name, re: regexp.MustCompile(p.pattern)}
	}
	return entries
}

// Analyze returns the sentiment of text. It never fails: empty input yields a
// neutral result with the minimum confidence.
func Analyze(text string) Result {
	lower := strings.ToLower(text)
	tokenCount := len(strings.Fields(lower))

	var keywords []string
	positive := matchLexicon(lower, positiveLexicon, &keywords)
	negative := matchLexicon(lower, negativeLexicon, &keywords)
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	if keywords == nil {
		keywords = []string{}
	}

	score := neutralScore
	if total := positive + negative; total > 0 {
		score = float64(positive) / float64(total)
	}

	return Result{
		Score:      score,
		Label:      Label(score),
		Confidence: confidence(positive+negative, tokenCount),
		Emotions:   detectEmotions(lower, tokenCount),
		Keywords:   keywords,
	}
}

// matchLexicon counts the distinct lexicon words present in text.
func matchLexicon(text string, lexicon []lexiconEntry, keywords *[]string) int {
	count := 0
	for _, entry := range lexicon {
		if entry.re.MatchString(text) {
			count++
			*keywords = append(*keywords, entry.word)
		}
	}
	return count
}

func detectEmotions(text string, tokenCount int) map[string]float64 {
	result := make(map[string]float64)
	if tokenCount == 0 {
		return result
	}

	var total float64
	for _, e := range emotions {
		matches := len(e.re.FindAllStringIndex(text, -1))
		if matches == 0 {
			continue
		}
		strength := float64(matches) / float64(tokenCount)
		result[e.name] = strength
		total += strength
	}

	if total > 0 {
		for name, strength := range result {
			result[name] = strength / total
		}
	}
	return result
}

func confidence(sentimentWords, tokenCount int) float64 {
	if tokenCount == 0 {
		return minConfidence
	}
	c := float64(sentimentWords) / float64(min(tokenCount, confidenceWords))
	return max(minConfidence, min(maxConfidence, c))
}

// Label maps a score to its label. The checks run in order and the first match
// wins, so the bands are not symmetric around 0.5.
func Label(score float64) string {
	switch {
	case score >= 0.75:
		return LabelVeryPositive
	case score >= 0.6:
		return LabelPositive
	case score <= 0.25:
		return LabelVeryNegative
	case score <= 0.4:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
