package synthesis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	topicWords      = 3
	topicWordLength = 5
	topicLabelRunes = 50
)

type polarityPattern struct {
	affirm *regexp.Regexp
	negate *regexp.Regexp
}

var polarityPatterns = []polarityPattern{
	{regexp.MustCompile(`\bis\b`), regexp.MustCompile(`\bis not\b`)},
	{regexp.MustCompile(`\bshould\b`), regexp.MustCompile(`\bshould not\b`)},
	{regexp.MustCompile(`\bcan\b`), regexp.MustCompile(`\bcannot\b`)},
}

// TopicKey is the first three words of at least five characters in text,
// lowercased and joined by hyphens.
func TopicKey(text string) string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(w) < topicWordLength {
			continue
		}
		words = append(words, w)
		if len(words) == topicWords {
			break
		}
	}
	return strings.Join(words, "-")
}

// IdentifyContradictions groups points by TopicKey and reports every group in
// which two points from different sources use opposite polarity phrasing.
// Groups are reported in first-seen order.
func IdentifyContradictions(points []KeyPoint) []Contradiction {
	var order []string
	groups := make(map[string][]KeyPoint)
	for _, p := range points {
		key := TopicKey(p.Text)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	contradictions := []Contradiction{}
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 || distinctSources(group) < 2 {
			continue
		}
		if !hasOpposingPair(group) {
			continue
		}

		positions := make([]Position, len(group))
		for i, p := range group {
			positions[i] = Position{Source: p.Source, Stance: p.Text}
		}
		contradictions = append(contradictions, Contradiction{
			Topic:     topicLabel(group[0].Text),
			Positions: positions,
		})
	}
	return contradictions
}

func hasOpposingPair(group []KeyPoint) bool {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if group[i].Source == group[j].Source {
				continue
			}
			if opposite(group[i].Text, group[j].Text) {
				return true
			}
		}
	}
	return false
}

func opposite(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	for _, p := range polarityPatterns {
		if p.polarity(a)*p.polarity(b) < 0 {
			return true
		}
	}
	return false
}

// polarity is -1 for negated phrasing, +1 for affirmative phrasing and 0 when
// the pattern does not occur.
func (p polarityPattern) polarity(s string) int {
	switch {
	case p.negate.MatchString(s):
		return -1
	case p.affirm.MatchString(s):
		return 1
	default:
		return 0
	}
}

func distinctSources(points []KeyPoint) int {
	seen := make(map[string]struct{})
	for _, p := range points {
		seen[p.Source] = struct{}{}
	}
	return len(seen)
}

func topicLabel(text string) string {
	runes := []rune(text)
	if len(runes) > topicLabelRunes {
		runes = runes[:topicLabelRunes]
	}
	return string(runes) + "..."
}
