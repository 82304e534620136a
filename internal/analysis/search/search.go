// Package search ranks text items against a query by literal token overlap.
package search

import (
	"sort"
	"strings"
)

// Item is a text unit to rank. ID and Source are carried through untouched.
type Item struct {
	ID     string `json:"id,omitempty"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// Scored is an item with its relevance to the query.
type Scored struct {
	Item  Item    `json:"item"`
	Score float64 `json:"score"`
}

// Score returns the fraction of query tokens found in text. Tokens are
// whitespace separated and lowercased, with punctuation kept, so "great," does
// not match "great". Repeated query tokens count once per occurrence. An empty
// query scores 0.
func Score(query, text string) float64 {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return 0
	}
	return overlap(queryTokens, tokenSet(text))
}

// Rank scores every item against query and sorts by descending score. The sort
// is stable: ties, including every item for an empty query, keep input order.
func Rank(query string, items []Item) []Scored {
	queryTokens := tokenize(query)

	ranked := make([]Scored, len(items))
	for i, item := range items {
		var score float64
		if len(queryTokens) > 0 {
			score = overlap(queryTokens, tokenSet(item.Text))
		}
		ranked[i] = Scored{Item: item, Score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func overlap(queryTokens []string, itemTokens map[string]struct{}) float64 {
	found := 0
	for _, tok := range queryTokens {
		if _, ok := itemTokens[tok]; ok {
			found++
		}
	}
	return float64(found) / float64(len(queryTokens))
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func tokenSet(s string) map[string]struct{} {
	tokens := tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
