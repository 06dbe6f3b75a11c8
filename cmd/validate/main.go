// Command validate smoke-tests a model artifact: it loads the file (which
// checks the feature manifest), runs a battery of representative inputs
// through the full encode→predict→categorize pipeline, and reports per-phase
// results. Exits non-zero on any failure so it can gate artifact rollouts.
//
// Usage:
//
//	go run ./cmd/validate -model best_tuned_model.json
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/airsight/pm25-forecast/internal/domain"
	"github.com/airsight/pm25-forecast/internal/model"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// samples covers the corners of the documented input space plus the
// reference noon-in-June case.
var samples = []struct {
	label string
	input domain.PredictionInput
}{
	{"reference noon June", domain.PredictionInput{Hour: 12, Month: 6, Temperature: 20, Pressure: 1013, WindSpeed: 5, DewPoint: 10, PM25Lag24h: 80, PM25Lag168h: 75}},
	{"cold winter night", domain.PredictionInput{Hour: 2, Month: 1, Temperature: -15, Pressure: 1035, WindSpeed: 2, DewPoint: -18, PM25Lag24h: 300, PM25Lag168h: 250}},
	{"clean summer morning", domain.PredictionInput{Hour: 7, Month: 7, Temperature: 24, Pressure: 1005, WindSpeed: 40, DewPoint: 15, IsWeekend: true, PM25Lag24h: 10, PM25Lag168h: 15}},
	{"range floor", domain.PredictionInput{Hour: 0, Month: 1, Temperature: -20, Pressure: 980, WindSpeed: 0, DewPoint: -20}},
	{"range ceiling", domain.PredictionInput{Hour: 23, Month: 12, Temperature: 45, Pressure: 1040, WindSpeed: 100, DewPoint: 30, IsWeekend: true, PM25Lag24h: 500, PM25Lag168h: 500}},
}

func main() {
	modelPath := flag.String("model", model.DefaultArtifactPath, "path to the model artifact")
	flag.Parse()

	if code := run(*modelPath); code != 0 {
		os.Exit(code)
	}
}

func run(modelPath string) int {
	fmt.Println("=== Model Artifact Validation ===")
	fmt.Println()

	artifact, err := model.LoadArtifact(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	info := artifact.Info()
	fmt.Printf("artifact: %s %s (%s, %d trees, MAE %.1f, R² %.3f)\n\n",
		info.Name, info.Version, info.Algorithm, info.TreeCount, info.Metrics.MAE, info.Metrics.R2)

	forest := model.NewForest(artifact)
	phases := []*phase{
		checkInputs(),
		checkPredictions(forest),
		checkDeterminism(forest),
	}

	failed := 0
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			failed++
		}
		fmt.Printf("[%s] %s\n", status, p.name)
		for _, e := range p.errors {
			fmt.Printf("       - %s\n", e)
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Println("all phases passed")
	return 0
}

// checkInputs verifies the sample battery itself is within documented ranges.
func checkInputs() *phase {
	p := &phase{name: "sample inputs valid"}
	for _, s := range samples {
		if err := s.input.Validate(); err != nil {
			p.errorf("%s: %v", s.label, err)
		}
	}
	return p
}

// checkPredictions runs every sample through the pipeline and verifies the
// output is finite, non-negative in practice, and categorizable.
func checkPredictions(forest *model.Forest) *phase {
	ctx := context.Background()
	p := &phase{name: "predictions finite and categorized"}

	for _, s := range samples {
		features := domain.EncodeFeatures(s.input)
		pm25, err := forest.Predict(ctx, features.Slice())
		if err != nil {
			p.errorf("%s: predict: %v", s.label, err)
			continue
		}
		if math.IsNaN(pm25) || math.IsInf(pm25, 0) {
			p.errorf("%s: non-finite prediction %v", s.label, pm25)
			continue
		}

		c := domain.Categorize(pm25)
		if c.Name == "" || c.Advisory == "" {
			p.errorf("%s: empty category for prediction %.2f", s.label, pm25)
		}
		fmt.Printf("  %-22s → %7.2f µg/m³  %s\n", s.label, pm25, c.Name)
	}
	return p
}

// checkDeterminism re-runs the battery and demands bit-identical results.
func checkDeterminism(forest *model.Forest) *phase {
	ctx := context.Background()
	p := &phase{name: "predictions deterministic"}

	for _, s := range samples {
		features := domain.EncodeFeatures(s.input).Slice()
		first, err1 := forest.Predict(ctx, features)
		second, err2 := forest.Predict(ctx, features)
		if err1 != nil || err2 != nil {
			p.errorf("%s: predict: %v / %v", s.label, err1, err2)
			continue
		}
		if first != second {
			p.errorf("%s: %v != %v", s.label, first, second)
		}
	}
	return p
}
