// Package cluster groups thoughts by cluster id, tags each group with its
// keywords and ranks groups and thoughts by engagement and recency.
package cluster

import (
	"regexp"
	"sort"

	"github.com/capitalize-ai/hivemind/internal/analysis/keywords"
	"github.com/capitalize-ai/hivemind/internal/model"
)

var numericSuffixRe = regexp.MustCompile(`(\d+)$`)

// Generate builds one cluster per distinct non-nil cluster id. Thoughts without
// a cluster id are ignored. Clusters are returned in first-seen order; use
// SortByTrending for a ranked list.
func Generate(nodes []model.ThoughtNode) []model.ThoughtCluster {
	return GenerateWithNames(nodes, nil)
}

// GenerateWithNames is Generate with display names looked up by cluster id.
func GenerateWithNames(nodes []model.ThoughtNode, names map[string]string) []model.ThoughtCluster {
	var order []string
	groups := make(map[string][]model.ThoughtNode)

	for _, n := range nodes {
		if n.ClusterID == nil {
			continue
		}
		id := *n.ClusterID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], n)
	}

	clusters := make([]model.ThoughtCluster, 0, len(order))
	for _, id := range order {
		members := groups[id]

		name := names[id]
		if name == "" {
			name = DefaultName(id)
		}

		posts := make([]string, len(members))
		score := 0
		for i, m := range members {
			posts[i] = m.ID
			score += ItemScore(m)
		}

		clusters = append(clusters, model.ThoughtCluster{
			ID:            id,
			Name:          name,
			Posts:         posts,
			Tags:          tags(members),
			TrendingScore: score,
		})
	}
	return clusters
}

// DefaultName returns "Cluster N" for ids ending in a number, such as
// "cluster3", and "Cluster <id>" otherwise.
func DefaultName(clusterID string) string {
	if m := numericSuffixRe.FindStringSubmatch(clusterID); m != nil {
		return "Cluster " + m[1]
	}
	return "Cluster " + clusterID
}

// ItemScore is the trending contribution of a single thought.
func ItemScore(n model.ThoughtNode) int {
	return n.Likes + len(n.CommentIDs) + RecencyBonus(ParseRelativeTime(n.Timestamp))
}

// SortByTrending sorts clusters by descending trending score, keeping the
// existing order for ties.
func SortByTrending(clusters []model.ThoughtCluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TrendingScore > clusters[j].TrendingScore
	})
}

// RankThoughts scores every thought and returns them by descending score.
func RankThoughts(nodes []model.ThoughtNode) []model.RankedThought {
	ranked := make([]model.RankedThought, len(nodes))
	for i, n := range nodes {
		ranked[i] = model.RankedThought{Thought: n, Score: ItemScore(n)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func tags(members []model.ThoughtNode) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range members {
		for _, w := range keywords.Extract(m.Content) {
			if seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, "#"+w)
		}
	}
	return out
}
