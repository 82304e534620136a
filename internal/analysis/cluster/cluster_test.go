package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/hivemind/internal/model"
)

func ptr(s string) *string { return &s }

func TestGenerate(t *testing.T) {
	t.Run("Trending score sums engagement and recency", func(t *testing.T) {
		nodes := []model.ThoughtNode{
			{ID: "1", Content: "Synthetic dreams", ClusterID: ptr("cluster1"), Likes: 10, CommentIDs: []string{"c1"}, Timestamp: "30 minutes ago"},
			{ID: "2", Content: "Neon rain", ClusterID: ptr("cluster1"), Likes: 5, CommentIDs: []string{"c2"}, Timestamp: "2 days ago"},
		}

		clusters := Generate(nodes)

		require.Len(t, clusters, 1)
		assert.Equal(t, "cluster1", clusters[0].ID)
		assert.Equal(t, "Cluster 1", clusters[0].Name)
		assert.Equal(t, []string{"1", "2"}, clusters[0].Posts)
		assert.Equal(t, 28, clusters[0].TrendingScore)
	})

	t.Run("Unclustered thoughts are excluded", func(t *testing.T) {
		nodes := []model.ThoughtNode{
			{ID: "a", Content: "orphan signal", ClusterID: nil},
			{ID: "b", Content: "grouped signal", ClusterID: ptr("cluster2")},
		}

		clusters := Generate(nodes)

		require.Len(t, clusters, 1)
		for _, c := range clusters {
			assert.NotContains(t, c.Posts, "a")
		}
	})

	t.Run("Only unclustered thoughts", func(t *testing.T) {
		clusters := Generate([]model.ThoughtNode{{ID: "a", Content: "alone"}})
		assert.Empty(t, clusters)
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Empty(t, Generate(nil))
	})

	t.Run("Tags are deduplicated across members", func(t *testing.T) {
		nodes := []model.ThoughtNode{
			{ID: "1", Content: "Quantum memory lattice", ClusterID: ptr("c7")},
			{ID: "2", Content: "Memory lattice decay", ClusterID: ptr("c7")},
		}

		clusters := Generate(nodes)

		require.Len(t, clusters, 1)
		assert.Equal(t, []string{"#quantum", "#memory", "#lattice", "#decay"}, clusters[0].Tags)
	})

	t.Run("Groups keep first seen order", func(t *testing.T) {
		nodes := []model.ThoughtNode{
			{ID: "1", ClusterID: ptr("cluster3")},
			{ID: "2", ClusterID: ptr("cluster1")},
			{ID: "3", ClusterID: ptr("cluster3")},
		}

		clusters := Generate(nodes)

		require.Len(t, clusters, 2)
		assert.Equal(t, "cluster3", clusters[0].ID)
		assert.Equal(t, []string{"1", "3"}, clusters[0].Posts)
		assert.Equal(t, "cluster1", clusters[1].ID)
	})

	t.Run("Malformed timestamps do not fail", func(t *testing.T) {
		nodes := []model.ThoughtNode{
			{ID: "1", ClusterID: ptr("x"), Timestamp: "yesterday-ish"},
			{ID: "2", ClusterID: ptr("x"), Timestamp: ""},
			{ID: "3", ClusterID: ptr("x"), Timestamp: "99999999999999999999 years ago"},
		}

		clusters := Generate(nodes)

		require.Len(t, clusters, 1)
		assert.Equal(t, 3, clusters[0].TrendingScore)
	})
}

func TestGenerateWithNames(t *testing.T) {
	nodes := []model.ThoughtNode{
		{ID: "1", ClusterID: ptr("cluster1")},
		{ID: "2", ClusterID: ptr("cluster2")},
	}

	clusters := GenerateWithNames(nodes, map[string]string{"cluster1": "Digital Consciousness"})

	require.Len(t, clusters, 2)
	assert.Equal(t, "Digital Consciousness", clusters[0].Name)
	assert.Equal(t, "Cluster 2", clusters[1].Name)
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "Cluster 1", DefaultName("cluster1"))
	assert.Equal(t, "Cluster 42", DefaultName("cluster-42"))
	assert.Equal(t, "Cluster matrix", DefaultName("matrix"))
}

func TestSortByTrending(t *testing.T) {
	clusters := []model.ThoughtCluster{
		{ID: "low", TrendingScore: 3},
		{ID: "high", TrendingScore: 40},
		{ID: "tie-a", TrendingScore: 10},
		{ID: "tie-b", TrendingScore: 10},
	}

	SortByTrending(clusters)

	ids := make([]string, len(clusters))
	for i, c := range clusters {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"high", "tie-a", "tie-b", "low"}, ids)
}

func TestRankThoughts(t *testing.T) {
	nodes := []model.ThoughtNode{
		{ID: "old", Likes: 2, Timestamp: "3 weeks ago"},
		{ID: "fresh", Likes: 1, Timestamp: "5 minutes ago"},
		{ID: "today", Likes: 1, CommentIDs: []string{"c"}, Timestamp: "4 hours ago"},
	}

	ranked := RankThoughts(nodes)

	require.Len(t, ranked, 3)
	assert.Equal(t, "fresh", ranked[0].Thought.ID)
	assert.Equal(t, 11, ranked[0].Score)
	assert.Equal(t, "today", ranked[1].Thought.ID)
	assert.Equal(t, 7, ranked[1].Score)
	assert.Equal(t, "old", ranked[2].Thought.ID)
	assert.Equal(t, 3, ranked[2].Score)
}

func TestSummarize(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, model.TrendingSummary{}, Summarize(nil))
	})

	t.Run("Scores", func(t *testing.T) {
		summary := Summarize([]model.ThoughtCluster{
			{TrendingScore: 10},
			{TrendingScore: 20},
			{TrendingScore: 60},
		})

		assert.Equal(t, 3, summary.Clusters)
		assert.InDelta(t, 30.0, summary.Mean, 1e-9)
		assert.InDelta(t, 20.0, summary.Median, 1e-9)
		assert.InDelta(t, 60.0, summary.Max, 1e-9)
	})
}
