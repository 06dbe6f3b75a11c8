package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/airsight/pm25-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArtifact builds a minimal valid artifact around the given trees.
func testArtifact(trees ...Tree) *Artifact {
	return &Artifact{
		Name:         "best_tuned_model",
		Version:      "test-1",
		Algorithm:    "random_forest",
		TrainedAt:    time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC),
		Metrics:      Metrics{MAE: 45.6, R2: 0.522},
		FeatureNames: domain.FeatureNames[:],
		Trees:        trees,
	}
}

// leafTree is a single-leaf tree that always predicts v.
func leafTree(v float64) Tree {
	return Tree{Nodes: []Node{{Left: -1, Right: -1, Value: v}}}
}

// stumpTree splits once on feature: <= threshold predicts lo, otherwise hi.
func stumpTree(feature int, threshold, lo, hi float64) Tree {
	return Tree{Nodes: []Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Left: -1, Right: -1, Value: lo},
		{Left: -1, Right: -1, Value: hi},
	}}
}

func TestArtifact_Validate(t *testing.T) {
	t.Run("valid artifact", func(t *testing.T) {
		require.NoError(t, testArtifact(leafTree(42)).Validate())
	})

	t.Run("short feature manifest", func(t *testing.T) {
		a := testArtifact(leafTree(42))
		a.FeatureNames = a.FeatureNames[:11]

		err := a.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "11 names")
	})

	t.Run("reordered feature manifest", func(t *testing.T) {
		a := testArtifact(leafTree(42))
		names := make([]string, len(a.FeatureNames))
		copy(names, a.FeatureNames)
		names[0], names[1] = names[1], names[0]
		a.FeatureNames = names

		err := a.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feature manifest mismatch at position 0")
	})

	t.Run("renamed feature", func(t *testing.T) {
		a := testArtifact(leafTree(42))
		names := make([]string, len(a.FeatureNames))
		copy(names, a.FeatureNames)
		names[6] = "temperature"
		a.FeatureNames = names

		require.Error(t, a.Validate())
	})

	t.Run("no trees", func(t *testing.T) {
		err := testArtifact().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no trees")
	})

	t.Run("empty tree", func(t *testing.T) {
		require.Error(t, testArtifact(Tree{}).Validate())
	})

	t.Run("feature index out of range", func(t *testing.T) {
		err := testArtifact(stumpTree(domain.FeatureCount, 0, 1, 2)).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feature index")
	})

	t.Run("backward-pointing child", func(t *testing.T) {
		tree := Tree{Nodes: []Node{
			{Feature: 0, Threshold: 0, Left: 1, Right: 2},
			{Feature: 0, Threshold: 0, Left: 0, Right: 2}, // left points backward
			{Left: -1, Right: -1, Value: 1},
		}}
		require.Error(t, testArtifact(tree).Validate())
	})

	t.Run("child index past end", func(t *testing.T) {
		tree := Tree{Nodes: []Node{
			{Feature: 0, Threshold: 0, Left: 1, Right: 5},
			{Left: -1, Right: -1, Value: 1},
		}}
		require.Error(t, testArtifact(tree).Validate())
	})
}

func TestLoadArtifact(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.json")
		a := testArtifact(leafTree(80), stumpTree(10, 50, 30, 90))
		require.NoError(t, WriteArtifact(path, a))

		loaded, err := LoadArtifact(path)
		require.NoError(t, err)
		assert.Equal(t, a.Name, loaded.Name)
		assert.Equal(t, a.Metrics, loaded.Metrics)
		assert.Len(t, loaded.Trees, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadArtifact(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read model artifact")
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadArtifact(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode model artifact")
	})

	t.Run("refuses to write invalid artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.json")
		require.Error(t, WriteArtifact(path, testArtifact()))
	})
}

func TestArtifact_Info(t *testing.T) {
	a := testArtifact(leafTree(1), leafTree(2), leafTree(3))
	info := a.Info()

	assert.Equal(t, "best_tuned_model", info.Name)
	assert.Equal(t, "random_forest", info.Algorithm)
	assert.Equal(t, 45.6, info.Metrics.MAE)
	assert.Equal(t, 3, info.TreeCount)
}
