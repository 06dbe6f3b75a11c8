// Package model loads serialized regression model artifacts and evaluates
// them. The artifact is a JSON export of a tuned random forest: metadata,
// quality metrics, an explicit feature-name manifest, and the forest itself.
//
// The manifest is the sync mechanism between this service and the training
// pipeline: an artifact whose feature names differ from [domain.FeatureNames]
// in value or order is rejected at load time rather than silently producing
// garbage predictions.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/airsight/pm25-forecast/internal/domain"
)

// DefaultArtifactPath is the conventional artifact file name, resolved
// relative to the process working directory.
const DefaultArtifactPath = "best_tuned_model.json"

// Metrics are the held-out evaluation scores recorded at training time.
type Metrics struct {
	MAE float64 `json:"mae"` // mean absolute error, µg/m³
	R2  float64 `json:"r2"`  // coefficient of determination
}

// Node is one decision node. Leaves have Left and Right set to -1 and carry
// the prediction in Value; internal nodes route to Left when
// features[Feature] <= Threshold, to Right otherwise.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a flat node array; index 0 is the root and children always point
// forward, so traversal terminates.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Artifact is the on-disk model format.
type Artifact struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Algorithm    string    `json:"algorithm"`
	TrainedAt    time.Time `json:"trained_at"`
	Metrics      Metrics   `json:"metrics"`
	FeatureNames []string  `json:"feature_names"`
	Trees        []Tree    `json:"trees"`
}

// Info is the caller-facing artifact metadata, exposed on the model endpoint
// and attached to prediction results.
type Info struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Algorithm string    `json:"algorithm"`
	TrainedAt time.Time `json:"trained_at"`
	Metrics   Metrics   `json:"metrics"`
	TreeCount int       `json:"tree_count"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("validate model artifact %q: %w", path, err)
	}
	return &a, nil
}

// Validate checks the feature manifest against the service's canonical order
// and verifies forest structure (non-empty, in-range forward-pointing nodes).
func (a *Artifact) Validate() error {
	if len(a.FeatureNames) != domain.FeatureCount {
		return fmt.Errorf("feature manifest has %d names, want %d", len(a.FeatureNames), domain.FeatureCount)
	}
	for i, name := range a.FeatureNames {
		if name != domain.FeatureNames[i] {
			return fmt.Errorf("feature manifest mismatch at position %d: artifact has %q, service expects %q",
				i, name, domain.FeatureNames[i])
		}
	}

	if len(a.Trees) == 0 {
		return errors.New("artifact contains no trees")
	}
	for ti, tree := range a.Trees {
		if err := validateTree(tree); err != nil {
			return fmt.Errorf("tree %d: %w", ti, err)
		}
	}
	return nil
}

func validateTree(tree Tree) error {
	if len(tree.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for ni, n := range tree.Nodes {
		leaf := n.Left == -1 && n.Right == -1
		if leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= domain.FeatureCount {
			return fmt.Errorf("node %d: feature index %d out of range", ni, n.Feature)
		}
		// Children must point forward so evaluation cannot loop.
		if n.Left <= ni || n.Left >= len(tree.Nodes) {
			return fmt.Errorf("node %d: left child %d out of range", ni, n.Left)
		}
		if n.Right <= ni || n.Right >= len(tree.Nodes) {
			return fmt.Errorf("node %d: right child %d out of range", ni, n.Right)
		}
	}
	return nil
}

// Info returns the metadata summary for this artifact.
func (a *Artifact) Info() Info {
	return Info{
		Name:      a.Name,
		Version:   a.Version,
		Algorithm: a.Algorithm,
		TrainedAt: a.TrainedAt,
		Metrics:   a.Metrics,
		TreeCount: len(a.Trees),
	}
}

// WriteArtifact serializes an artifact to disk, used by the genmodel tool and
// test fixtures.
func WriteArtifact(path string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid artifact: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}
