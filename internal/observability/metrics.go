package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// prediction service.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // label: category
	PredictionErrors   *prometheus.CounterVec // label: reason={invalid_input,model_not_loaded,predictor}
	PredictionDuration prometheus.Histogram

	ModelLoaded  prometheus.Gauge
	ModelReloads *prometheus.CounterVec // label: outcome={success,error}

	// Audit publishing metrics.
	AuditPublished     prometheus.Counter
	AuditPublishErrors prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionErrors,
		m.PredictionDuration,
		m.ModelLoaded,
		m.ModelReloads,
		m.AuditPublished,
		m.AuditPublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25_forecast",
			Name:      "predictions_total",
			Help:      "Successful predictions by severity category.",
		}, []string{"category"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25_forecast",
			Name:      "prediction_errors_total",
			Help:      "Failed prediction requests by reason.",
		}, []string{"reason"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pm25_forecast",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a complete encode-predict-categorize cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pm25_forecast",
			Name:      "model_loaded",
			Help:      "1 when a model artifact is loaded, 0 otherwise.",
		}),
		ModelReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pm25_forecast",
			Name:      "model_reloads_total",
			Help:      "Explicit model reload attempts by outcome.",
		}, []string{"outcome"}),
		AuditPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pm25_forecast",
			Name:      "audit_published_total",
			Help:      "Prediction audit records published to the sink topic.",
		}),
		AuditPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pm25_forecast",
			Name:      "audit_publish_errors_total",
			Help:      "Audit publish failures (best-effort, never fail the request).",
		}),
	}
}
