package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "1", "content": "Zero knowledge proofs for voting", "author": {"id": "u1", "name": "Ana"},
		 "timestamp": "2 hours ago", "cluster_id": "cluster1", "likes": 4, "comments": ["c1"]},
		{"id": "2", "content": "Unclustered idea", "author": {"id": "u2", "name": "Bo"},
		 "timestamp": "1 day ago", "cluster_id": null, "likes": 0, "comments": []}
	]`), 0o600))

	nodes, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.NotNil(t, nodes[0].ClusterID)
	assert.Equal(t, "cluster1", *nodes[0].ClusterID)
	assert.Nil(t, nodes[1].ClusterID)
	assert.Equal(t, []string{"c1"}, nodes[0].CommentIDs)

	s := newTestThoughtService(nil)
	assert.Equal(t, 2, s.Seed(context.Background(), nodes))
	// 4 likes + 1 comment + 5 recency
	assert.Equal(t, 10, s.Clusters(context.Background()).Clusters[0].TrendingScore)

	_, err = LoadSeedFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o600))
	_, err = LoadSeedFile(path)
	assert.Error(t, err)
}
