// Package keywords extracts significant words from free text.
package keywords

import (
	"strings"
	"unicode"
)

// MinLength is the shortest word Extract reports.
const MinLength = 4

var stopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "also": true,
	"been": true, "before": true, "being": true, "both": true, "could": true,
	"does": true, "doing": true, "down": true, "each": true, "even": true,
	"from": true, "have": true, "having": true, "here": true, "into": true,
	"just": true, "like": true, "make": true, "more": true, "most": true,
	"much": true, "only": true, "other": true, "over": true, "same": true,
	"should": true, "some": true, "such": true, "than": true, "that": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "very": true,
	"want": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "will": true, "with": true, "would": true,
	"your": true, "yours": true, "ours": true, "really": true, "think": true,
}

// Extract returns the distinct lowercased words of text that are at least
// MinLength long and not stop words, in order of first appearance.
func Extract(text string) []string {
	seen := make(map[string]bool)
	var out []string

	for _, word := range tokenize(text) {
		if len([]rune(word)) < MinLength || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	return out
}

// tokenize splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
