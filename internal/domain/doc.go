// Package domain models PM2.5 air quality prediction inputs and the pure
// transformations applied to them.
//
// # Feature Encoding
//
// The trained regression model consumes a fixed-order vector of 12 features.
// The order is a hard contract with the training pipeline and is captured in
// [FeatureNames]; model artifacts carry the same manifest and are rejected at
// load time when it differs.
//
//	hour_sin        sin(2π·hour/24)       cyclic hour of day
//	hour_cos        cos(2π·hour/24)
//	month_sin       sin(2π·(month−1)/12)  cyclic calendar month, zero-based
//	month_cos       cos(2π·(month−1)/12)
//	temp_minus_dew  temperature − dew point (°C), a dryness proxy
//	time_slot       coarse hour bucket, see below
//	TEMP            raw temperature (°C)
//	PRES            raw pressure (hPa)
//	Iws             cumulated wind speed
//	is_weekend      1 for weekend, 0 otherwise
//	pm25_lag_24h    PM2.5 concentration 24 hours earlier (µg/m³)
//	pm25_lag_168h   PM2.5 concentration one week earlier (µg/m³)
//
// The (month−1) offset matches the training pipeline, which indexes months
// from zero before the cyclic transform. TEMP, PRES and Iws keep the column
// names of the Beijing air quality dataset the model was trained on.
//
// Time slot buckets (half-open intervals on hour):
//
//	[5,12)  → 0 morning
//	[12,17) → 1 afternoon
//	[17,21) → 2 evening
//	else    → 3 night (21–23 and 0–4)
//
// # Categorization
//
// Predicted concentrations map onto the five EPA-style PM2.5 buckets through
// an ordered threshold table (exclusive upper bounds, first match wins):
//
//	<12    Good                            severity 0
//	<35    Moderate                        severity 1
//	<55    Unhealthy for Sensitive Groups  severity 2
//	<150   Unhealthy                       severity 3
//	≥150   Hazardous                       severity 4
//
// Categorization is total over the real line; negative predictions fall into
// the lowest bucket.
//
// # Validation
//
// Input ranges are enforced at the service boundary via [PredictionInput.Validate].
// [EncodeFeatures] trusts its caller and performs no validation of its own, so
// the encoding stays a pure arithmetic function.
package domain
