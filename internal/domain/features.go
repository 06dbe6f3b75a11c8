package domain

import "math"

// FeatureCount is the width of the model's input vector.
const FeatureCount = 12

// FeatureNames is the canonical feature manifest, in the exact order the
// trained model expects. Model artifacts must carry an identical list.
var FeatureNames = [FeatureCount]string{
	"hour_sin",
	"hour_cos",
	"month_sin",
	"month_cos",
	"temp_minus_dew",
	"time_slot",
	"TEMP",
	"PRES",
	"Iws",
	"is_weekend",
	"pm25_lag_24h",
	"pm25_lag_168h",
}

// Time slot codes produced by TimeSlot.
const (
	SlotMorning   = 0 // [5,12)
	SlotAfternoon = 1 // [12,17)
	SlotEvening   = 2 // [17,21)
	SlotNight     = 3 // [21,24) and [0,5)
)

// FeatureVector is the ordered 12-element encoding of a PredictionInput.
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a freshly allocated slice for predictor calls.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Map returns the vector keyed by feature name, used by the debug echo.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		m[name] = v[i]
	}
	return m
}

// EncodeFeatures derives the model's 12-feature vector from raw inputs.
// It assumes the input already passed Validate; the function itself is pure
// arithmetic with no I/O and no hidden state, so identical inputs always
// produce identical vectors.
func EncodeFeatures(in PredictionInput) FeatureVector {
	hourAngle := 2 * math.Pi * float64(in.Hour) / 24
	// The training pipeline indexes months from zero before the cyclic
	// transform, hence the (month−1).
	monthAngle := 2 * math.Pi * float64(in.Month-1) / 12

	weekend := 0.0
	if in.IsWeekend {
		weekend = 1.0
	}

	return FeatureVector{
		math.Sin(hourAngle),
		math.Cos(hourAngle),
		math.Sin(monthAngle),
		math.Cos(monthAngle),
		in.Temperature - in.DewPoint,
		float64(TimeSlot(in.Hour)),
		in.Temperature,
		in.Pressure,
		in.WindSpeed,
		weekend,
		in.PM25Lag24h,
		in.PM25Lag168h,
	}
}

// TimeSlot buckets an hour of day into morning/afternoon/evening/night.
// Intervals are half-open, evaluated in order, first match wins.
func TimeSlot(hour int) int {
	switch {
	case hour >= 5 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 17:
		return SlotAfternoon
	case hour >= 17 && hour < 21:
		return SlotEvening
	default:
		return SlotNight
	}
}
