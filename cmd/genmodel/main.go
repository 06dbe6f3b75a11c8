// Command genmodel writes a mock model artifact for local development and
// test fixtures. The generated forest is deterministic for a given seed and
// leans on the lag features the way the real tuned model does, so mock
// predictions move plausibly with the inputs.
//
// Usage:
//
//	go run ./cmd/genmodel -out best_tuned_model.json -trees 25 -seed 1
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/airsight/pm25-forecast/internal/domain"
	"github.com/airsight/pm25-forecast/internal/model"
)

// featureRange bounds the thresholds the generator may pick per feature.
type featureRange struct {
	feature int
	min     float64
	max     float64
}

// splittable lists the features worth splitting on and their domains. The
// cyclic and flag features are left out; stump splits on them add noise
// without making the mock any more realistic.
var splittable = []featureRange{
	{4, -10, 30},   // temp_minus_dew
	{6, -20, 45},   // TEMP
	{7, 980, 1040}, // PRES
	{8, 0, 100},    // Iws
	{10, 0, 500},   // pm25_lag_24h
	{11, 0, 500},   // pm25_lag_168h
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", model.DefaultArtifactPath, "output path for the artifact")
	trees := flag.Int("trees", 25, "number of trees in the mock forest")
	seed := flag.Int64("seed", 1, "random seed; same seed yields the same artifact")
	flag.Parse()

	if *trees < 1 {
		return fmt.Errorf("-trees must be at least 1, got %d", *trees)
	}

	artifact := generate(*trees, *seed)
	if err := model.WriteArtifact(*out, artifact); err != nil {
		return err
	}

	log.Printf("wrote mock artifact: %s (%d trees, seed %d)", *out, *trees, *seed)
	return nil
}

func generate(trees int, seed int64) *model.Artifact {
	rng := rand.New(rand.NewSource(seed))

	forest := make([]model.Tree, 0, trees)
	for i := 0; i < trees; i++ {
		forest = append(forest, makeTree(rng))
	}

	return &model.Artifact{
		Name:         "best_tuned_model",
		Version:      fmt.Sprintf("mock-%d", seed),
		Algorithm:    "random_forest",
		TrainedAt:    time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC),
		Metrics:      model.Metrics{MAE: 45.6, R2: 0.522},
		FeatureNames: domain.FeatureNames[:],
		Trees:        forest,
	}
}

// makeTree builds a depth-two tree: a lag-feature root with weather-feature
// inner splits. Leaf values track the lag thresholds so higher recent
// pollution predicts higher concentrations, mimicking the real model's
// dominant signal.
func makeTree(rng *rand.Rand) model.Tree {
	lag := splittable[4+rng.Intn(2)] // pm25_lag_24h or pm25_lag_168h
	rootThreshold := lag.min + rng.Float64()*(lag.max-lag.min)*0.4 + 20

	left := splittable[rng.Intn(4)]
	right := splittable[rng.Intn(4)]

	// Leaves below the root threshold predict near it; leaves above scale up.
	lo := rootThreshold * (0.4 + rng.Float64()*0.5)
	hi := rootThreshold * (1.1 + rng.Float64()*1.5)
	jitter := func(v float64) float64 { return v * (0.85 + rng.Float64()*0.3) }

	return model.Tree{Nodes: []model.Node{
		{Feature: lag.feature, Threshold: rootThreshold, Left: 1, Right: 2},
		{Feature: left.feature, Threshold: midpoint(rng, left), Left: 3, Right: 4},
		{Feature: right.feature, Threshold: midpoint(rng, right), Left: 5, Right: 6},
		{Left: -1, Right: -1, Value: jitter(lo)},
		{Left: -1, Right: -1, Value: jitter(lo)},
		{Left: -1, Right: -1, Value: jitter(hi)},
		{Left: -1, Right: -1, Value: jitter(hi)},
	}}
}

func midpoint(rng *rand.Rand, fr featureRange) float64 {
	return fr.min + rng.Float64()*(fr.max-fr.min)
}
