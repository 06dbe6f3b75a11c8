// Package predict composes the prediction pipeline: validate the raw input,
// encode it into the model's feature vector, run the predictor, and
// categorize the resulting concentration. Each call is request-scoped and
// atomic; nothing is mutated between invocations.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/airsight/pm25-forecast/internal/domain"
	"github.com/airsight/pm25-forecast/internal/model"
	"github.com/airsight/pm25-forecast/internal/observability"
)

// ErrPrediction wraps predictor call failures so handlers can distinguish
// them from validation and load errors.
var ErrPrediction = errors.New("prediction failed")

// Result is the full outcome of one prediction request.
type Result struct {
	PM25        float64            `json:"pm25"` // µg/m³
	Category    domain.Category    `json:"category"`
	TimingTip   string             `json:"timing_tip"`
	Features    map[string]float64 `json:"features,omitempty"` // debug echo, on request
	Model       model.Info         `json:"model"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// AuditRecord is the prediction audit payload handed to the publisher.
type AuditRecord struct {
	Input        domain.PredictionInput `json:"input"`
	PM25         float64                `json:"pm25"`
	Category     string                 `json:"category"`
	Severity     int                    `json:"severity"`
	ModelName    string                 `json:"model_name"`
	ModelVersion string                 `json:"model_version"`
	GeneratedAt  time.Time              `json:"generated_at"`
}

// AuditPublisher receives successful predictions for downstream consumers.
type AuditPublisher interface {
	PublishPrediction(ctx context.Context, rec AuditRecord) error
}

// PredictorSource yields the current predictor and its metadata. Implemented
// by model.Store; tests substitute a stub without touching global state.
type PredictorSource interface {
	Predictor() (domain.Predictor, model.Info, error)
}

// Service runs the encode→predict→categorize pipeline against the model
// store. The store is shared and read-only; the service holds no per-request
// state of its own.
type Service struct {
	store     PredictorSource
	publisher AuditPublisher // nil disables audit publishing
	logger    *slog.Logger
	metrics   *observability.Metrics

	// publishTimeout bounds the detached, best-effort audit publish.
	publishTimeout time.Duration
}

// New creates a prediction service. Pass a nil publisher to disable the
// audit stream.
func New(store PredictorSource, publisher AuditPublisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:          store,
		publisher:      publisher,
		logger:         logger,
		metrics:        metrics,
		publishTimeout: 5 * time.Second,
	}
}

// Predict runs one full pipeline cycle. includeFeatures echoes the encoded
// vector back in the result for debugging the feature contract.
//
// Error semantics: domain.ErrInvalidInput for range violations,
// model.ErrNotLoaded while no artifact is available, ErrPrediction for
// predictor call failures. Every failure is terminal for this request only;
// the caller may retry immediately with adjusted inputs.
func (s *Service) Predict(ctx context.Context, in domain.PredictionInput, includeFeatures bool) (Result, error) {
	start := time.Now()

	if err := in.Validate(); err != nil {
		s.metrics.PredictionErrors.WithLabelValues("invalid_input").Inc()
		return Result{}, err
	}

	predictor, info, err := s.store.Predictor()
	if err != nil {
		s.metrics.PredictionErrors.WithLabelValues("model_not_loaded").Inc()
		return Result{}, err
	}

	features := domain.EncodeFeatures(in)

	pm25, err := predictor.Predict(ctx, features.Slice())
	if err != nil {
		s.metrics.PredictionErrors.WithLabelValues("predictor").Inc()
		s.logger.Error("predictor call failed", "error", err)
		return Result{}, fmt.Errorf("%w: %v", ErrPrediction, err)
	}

	category := domain.Categorize(pm25)

	result := Result{
		PM25:        pm25,
		Category:    category,
		TimingTip:   domain.TimingTip(in.Hour),
		Model:       info,
		GeneratedAt: clock.Now().UTC(),
	}
	if includeFeatures {
		result.Features = features.Map()
	}

	s.metrics.PredictionsTotal.WithLabelValues(category.Name).Inc()
	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	s.publishAudit(in, result)

	return result, nil
}

// publishAudit hands the result to the audit publisher on a detached
// goroutine. Publishing is best-effort: failures are logged and counted but
// never surface to the caller.
func (s *Service) publishAudit(in domain.PredictionInput, res Result) {
	if s.publisher == nil {
		return
	}

	rec := AuditRecord{
		Input:        in,
		PM25:         res.PM25,
		Category:     res.Category.Name,
		Severity:     res.Category.Severity,
		ModelName:    res.Model.Name,
		ModelVersion: res.Model.Version,
		GeneratedAt:  res.GeneratedAt,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()

		if err := s.publisher.PublishPrediction(ctx, rec); err != nil {
			s.metrics.AuditPublishErrors.Inc()
			s.logger.Warn("audit publish failed", "error", err, "category", rec.Category)
			return
		}
		s.metrics.AuditPublished.Inc()
	}()
}
