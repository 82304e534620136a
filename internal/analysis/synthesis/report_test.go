package synthesis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSectionOrder(t *testing.T) {
	report := Report("How should we secure the grid?", []Response{
		{Source: "gpt", Text: "Use strong passwords. Authentication middleware validation is required for every incoming request."},
		{Source: "claude", Text: "Authentication middleware validation is not required for every incoming request."},
	})

	headers := []string{
		"# Multi-Model Synthesis",
		"Prompt: How should we secure the grid?",
		"## Model Perspectives",
		"### gpt",
		"### claude",
		"## Consensus",
		"## Contradictions",
		"## Action Items",
		"## Final Synthesis",
	}

	last := -1
	for _, h := range headers {
		idx := strings.Index(report, h)
		require.GreaterOrEqual(t, idx, 0, "missing %q", h)
		assert.Greater(t, idx, last, "%q out of order", h)
		last = idx
	}

	assert.Contains(t, report, "### Authentication middleware validation is required f...")
	assert.Contains(t, report, "1. Use strong passwords.")
	assert.Contains(t, report, "Sources: 2 of 2 responded")
}

func TestRenderSkipsErrorResponses(t *testing.T) {
	report := Report("status?", []Response{
		{Source: "gpt", Text: "The orbital relay network is operating within expected parameters."},
		{Source: "claude", Text: "Error connecting to service"},
	})

	assert.NotContains(t, report, "claude")
	assert.NotContains(t, report, "Error connecting")
	assert.Contains(t, report, "Sources: 1 of 2 responded")
	assert.Contains(t, report, "### gpt")
}

func TestRenderEmpty(t *testing.T) {
	report := Report("anything", nil)

	assert.Contains(t, report, "No model produced a usable response.")
	assert.Contains(t, report, noConsensus)
	assert.Contains(t, report, noContradictions)
	assert.Contains(t, report, noActionItems)
	assert.True(t, strings.HasSuffix(report, fallbackSynthesis+"\n"))
}

func TestRenderAllErrored(t *testing.T) {
	report := Report("anything", []Response{{Source: "gpt", Text: "Error connecting to OpenAI"}})

	assert.Contains(t, report, fallbackSynthesis)
	assert.Contains(t, report, "Sources: 0 of 1 responded")
}

func TestFinalSynthesis(t *testing.T) {
	t.Run("Consensus then confident non speculative points", func(t *testing.T) {
		result := Result{
			Consensus: []string{"A shared statement"},
			KeyPoints: []KeyPoint{
				{Text: "A shared statement", Type: TypeAnalytical, Confidence: 0.9},
				{Text: "Speculation about the future", Type: TypeSpeculative, Confidence: 0.9},
				{Text: "First fact", Type: TypeFactual, Confidence: 0.9},
				{Text: "Second point", Type: TypeAnalytical, Confidence: 0.7},
				{Text: "Weak point", Type: TypeAnalytical, Confidence: 0.5},
				{Text: "Third point", Type: TypeRecommendation, Confidence: 0.7},
				{Text: "Fourth point", Type: TypeAnalytical, Confidence: 0.7},
			},
		}

		got := FinalSynthesis(result)

		assert.Equal(t, "A shared statement. First fact. Second point. Third point.", got)
	})

	t.Run("Fallback", func(t *testing.T) {
		assert.Equal(t, fallbackSynthesis, FinalSynthesis(Result{}))
	})
}

func TestRenderPerspectiveExcerpt(t *testing.T) {
	report := Report("q", []Response{{Source: "tiny", Text: "Too short."}})

	assert.Contains(t, report, "### tiny\n\nToo short.\n")
}

func TestReportIsDeterministic(t *testing.T) {
	responses := []Response{
		{Source: "gpt", Text: "Caching layers should always sit close to users. Use a CDN for static assets."},
		{Source: "claude", Text: "Caching layers should always sit close to the users. Databases might become a bottleneck eventually."},
	}
	assert.Equal(t, Report("p", responses), Report("p", responses))
}
