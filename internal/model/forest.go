package model

import (
	"context"
	"fmt"

	"github.com/airsight/pm25-forecast/internal/domain"
)

// Forest evaluates a loaded random forest. It implements domain.Predictor.
// The tree data is never mutated after construction, so a single Forest can
// serve concurrent requests without locking.
type Forest struct {
	trees []Tree
}

// NewForest builds an evaluator from a validated artifact.
func NewForest(a *Artifact) *Forest {
	return &Forest{trees: a.Trees}
}

// Predict returns the mean of all tree outputs for the given feature vector.
func (f *Forest) Predict(_ context.Context, features []float64) (float64, error) {
	if len(features) != domain.FeatureCount {
		return 0, fmt.Errorf("predict: got %d features, want %d", len(features), domain.FeatureCount)
	}

	var sum float64
	for _, tree := range f.trees {
		sum += evalTree(tree, features)
	}
	return sum / float64(len(f.trees)), nil
}

// evalTree walks from the root to a leaf. Artifact validation guarantees
// child indices point forward and stay in range.
func evalTree(tree Tree, features []float64) float64 {
	i := 0
	for {
		n := tree.Nodes[i]
		if n.Left == -1 && n.Right == -1 {
			return n.Value
		}
		if features[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
