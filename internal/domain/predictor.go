package domain

import "context"

// Predictor is the opaque trained regression model: feature vector in, scalar
// PM2.5 concentration out. Implementations must be safe for concurrent use
// and side-effect free so requests can share one instance read-only.
type Predictor interface {
	// Predict expects exactly FeatureCount features in FeatureNames order.
	Predict(ctx context.Context, features []float64) (float64, error)
}
