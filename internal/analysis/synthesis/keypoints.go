package synthesis

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	minSentenceLength = 15
	minKeyPointLength = 30
	duplicateCutoff   = 0.7
	defaultConfidence = 0.7
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

var (
	recommendationMarkers = []string{"should", "recommend", "suggest", "consider", "best practice", "advise", "make sure", "ensure"}
	speculativeMarkers    = []string{"might", "could", "perhaps", "possibly", "maybe", "potentially", "speculat", "may "}
	factualMarkers        = []string{"research", "study", "studies", "data", "evidence", "according to", "statistic", "percent", "proven", "fact"}
)

var confidenceTriggers = []struct {
	phrases    []string
	confidence float64
}{
	{[]string{"definitely", "certainly", "always"}, 0.9},
	{[]string{"likely", "probably"}, 0.7},
	{[]string{"might", "perhaps", "possibly"}, 0.5},
}

// splitSentences splits text on runs of '.', '!' and '?', trims each piece
// and keeps those longer than minSentenceLength characters.
func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= minSentenceLength {
			continue
		}
		out = append(out, s)
		if len(out) == MaxSentences {
			break
		}
	}
	return out
}

// ExtractKeyPoints classifies the sentences of a response. Error responses
// produce no key points.
func ExtractKeyPoints(r Response) []KeyPoint {
	if IsError(r) {
		return nil
	}

	var points []KeyPoint
	for _, s := range splitSentences(r.Text) {
		if utf8.RuneCountInString(s) <= minKeyPointLength {
			continue
		}
		lower := strings.ToLower(s)
		points = append(points, KeyPoint{
			Text:       s,
			Source:     r.Source,
			Confidence: Confidence(lower),
			Type:       Classify(lower),
		})
	}
	return points
}

// Classify assigns a type to a lowercased sentence. Recommendation markers are
// checked first, then speculative, then factual; analytical is the default.
func Classify(lower string) PointType {
	switch {
	case containsAny(lower, recommendationMarkers):
		return TypeRecommendation
	case containsAny(lower, speculativeMarkers):
		return TypeSpeculative
	case containsAny(lower, factualMarkers):
		return TypeFactual
	default:
		return TypeAnalytical
	}
}

// Confidence scores a lowercased sentence from its hedging phrases.
func Confidence(lower string) float64 {
	for _, t := range confidenceTriggers {
		if containsAny(lower, t.phrases) {
			return t.confidence
		}
	}
	return defaultConfidence
}

// Deduplicate orders points by descending confidence and drops any point whose
// similarity to an already kept point exceeds 0.7.
func Deduplicate(points []KeyPoint) []KeyPoint {
	sorted := make([]KeyPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := []KeyPoint{}
	for _, p := range sorted {
		duplicate := false
		for _, k := range kept {
			if Similarity(p.Text, k.Text) > duplicateCutoff {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, p)
		}
	}
	return kept
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
