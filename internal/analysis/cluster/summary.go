package cluster

import (
	"github.com/montanaflynn/stats"

	"github.com/capitalize-ai/hivemind/internal/model"
)

// Summarize describes the spread of trending scores across clusters. An empty
// input yields a zero summary.
func Summarize(clusters []model.ThoughtCluster) model.TrendingSummary {
	if len(clusters) == 0 {
		return model.TrendingSummary{}
	}

	data := make(stats.Float64Data, len(clusters))
	for i, c := range clusters {
		data[i] = float64(c.TrendingScore)
	}

	// Errors only occur for empty input, which is handled above.
	mean, _ := data.Mean()
	median, _ := data.Median()
	top, _ := data.Max()

	return model.TrendingSummary{
		Clusters: len(clusters),
		Mean:     mean,
		Median:   median,
		Max:      top,
	}
}
