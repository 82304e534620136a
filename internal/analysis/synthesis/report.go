package synthesis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	perspectivePoints   = 3
	finalPoints         = 3
	finalMinConfidence  = 0.7
	excerptRunes        = 200
	fallbackSynthesis   = "The models did not produce enough overlapping insight to form a combined answer. Review the individual perspectives above for details."
	noConsensus         = "No clear consensus emerged across the models."
	noContradictions    = "No contradictions detected."
	noActionItems       = "No specific action items identified."
	noPerspectivePoints = "No key points extracted."
)

// Report synthesizes responses and renders the result.
func Report(prompt string, responses []Response) string {
	return Render(prompt, responses, Synthesize(responses))
}

// Render formats a synthesis as plain text. Sections always appear in the
// same order: perspectives, consensus, contradictions, action items and the
// final synthesis. Error responses are left out of every section.
func Render(prompt string, responses []Response, result Result) string {
	responses = bound(responses)

	var live []Response
	for _, r := range responses {
		if !IsError(r) {
			live = append(live, r)
		}
	}

	var b strings.Builder

	b.WriteString("# Multi-Model Synthesis\n\n")
	fmt.Fprintf(&b, "Prompt: %s\n", strings.TrimSpace(prompt))
	fmt.Fprintf(&b, "Sources: %d of %d responded\n", len(live), len(responses))
	fmt.Fprintf(&b, "Overall confidence: %.0f%%\n\n", result.Confidence*100)

	b.WriteString("## Model Perspectives\n\n")
	if len(live) == 0 {
		b.WriteString("No model produced a usable response.\n\n")
	}
	for _, r := range live {
		fmt.Fprintf(&b, "### %s\n\n", r.Source)
		writePerspective(&b, r, result.KeyPoints)
		b.WriteString("\n")
	}

	b.WriteString("## Consensus\n\n")
	if len(result.Consensus) == 0 {
		b.WriteString(noConsensus + "\n")
	}
	for _, c := range result.Consensus {
		fmt.Fprintf(&b, "- %s\n", sentence(c))
	}
	b.WriteString("\n")

	b.WriteString("## Contradictions\n\n")
	if len(result.Contradictions) == 0 {
		b.WriteString(noContradictions + "\n\n")
	}
	for _, c := range result.Contradictions {
		fmt.Fprintf(&b, "### %s\n\n", c.Topic)
		for _, p := range c.Positions {
			fmt.Fprintf(&b, "- %s: %s\n", p.Source, sentence(p.Stance))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Action Items\n\n")
	if len(result.ActionItems) == 0 {
		b.WriteString(noActionItems + "\n")
	}
	for i, item := range result.ActionItems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sentence(item))
	}
	b.WriteString("\n")

	b.WriteString("## Final Synthesis\n\n")
	b.WriteString(FinalSynthesis(result))
	b.WriteString("\n")

	return b.String()
}

// FinalSynthesis joins the consensus statements and up to three confident,
// non-speculative key points into one paragraph, or returns a fixed fallback.
func FinalSynthesis(result Result) string {
	var parts []string
	used := make(map[string]bool)

	for _, c := range result.Consensus {
		parts = append(parts, sentence(c))
		used[c] = true
	}

	added := 0
	for _, p := range result.KeyPoints {
		if added == finalPoints {
			break
		}
		if p.Confidence < finalMinConfidence || p.Type == TypeSpeculative || used[p.Text] {
			continue
		}
		parts = append(parts, sentence(p.Text))
		used[p.Text] = true
		added++
	}

	if len(parts) == 0 {
		return fallbackSynthesis
	}
	return strings.Join(parts, " ")
}

func writePerspective(b *strings.Builder, r Response, points []KeyPoint) {
	written := 0
	for _, p := range points {
		if p.Source != r.Source {
			continue
		}
		fmt.Fprintf(b, "- [%s] %s (%.0f%%)\n", p.Type, sentence(p.Text), p.Confidence*100)
		written++
		if written == perspectivePoints {
			return
		}
	}
	if written > 0 {
		return
	}

	if excerpt := strings.TrimSpace(r.Text); excerpt != "" {
		fmt.Fprintf(b, "%s\n", truncate(excerpt, excerptRunes))
		return
	}
	b.WriteString(noPerspectivePoints + "\n")
}

// sentence restores the terminal period removed by sentence splitting.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
