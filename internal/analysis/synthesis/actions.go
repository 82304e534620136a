package synthesis

import "strings"

const maxActionItems = 5

var (
	actionPrefixes = []string{"use ", "try ", "consider ", "implement "}
	actionPhrases  = []string{"should ", "need to ", "important to "}
)

// ExtractActionItems collects imperative or advisory sentences from the
// non-error responses, skipping near duplicates, up to five items.
//
// It re-splits the responses rather than reusing key points: action items keep
// sentences of 16 to 30 characters that key point extraction discards.
func ExtractActionItems(responses []Response) []string {
	items := []string{}
	for _, r := range responses {
		if IsError(r) {
			continue
		}
		for _, s := range splitSentences(r.Text) {
			if !isAction(strings.ToLower(s)) {
				continue
			}
			if anySimilarText(items, s, consensusCutoff) {
				continue
			}
			items = append(items, s)
			if len(items) == maxActionItems {
				return items
			}
		}
	}
	return items
}

func isAction(lower string) bool {
	for _, p := range actionPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return containsAny(lower, actionPhrases)
}
