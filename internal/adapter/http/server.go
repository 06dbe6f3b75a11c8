// Package http exposes the prediction pipeline over a JSON API plus the
// usual health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/airsight/pm25-forecast/internal/domain"
	"github.com/airsight/pm25-forecast/internal/model"
	"github.com/airsight/pm25-forecast/internal/observability"
	"github.com/airsight/pm25-forecast/internal/predict"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PredictionService runs one encode→predict→categorize cycle.
type PredictionService interface {
	Predict(ctx context.Context, in domain.PredictionInput, includeFeatures bool) (predict.Result, error)
}

// ModelAdmin exposes the model store's metadata and explicit reload action.
type ModelAdmin interface {
	Info() (model.Info, error)
	Reload() error
	Loaded() bool
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the prediction API and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	service    PredictionService
	admin      ModelAdmin
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the prediction API, model admin
// routes, and /healthz, /readyz, /metrics.
func NewServer(addr string, service PredictionService, admin ModelAdmin, ready ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		admin:   admin,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("POST /api/v1/predict", s.handlePredict)
	mux.HandleFunc("GET /api/v1/model", s.handleModelInfo)
	mux.HandleFunc("POST /api/v1/model/reload", s.handleModelReload)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// predictRequest is the POST /api/v1/predict body: the raw prediction input
// plus an optional debug echo of the encoded feature vector.
type predictRequest struct {
	domain.PredictionInput
	IncludeFeatures bool `json:"include_features"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	result, err := s.service.Predict(r.Context(), req.PredictionInput, req.IncludeFeatures)
	if err != nil {
		s.writePredictError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writePredictError maps pipeline errors onto status codes: range violations
// are the client's fault, a missing model means the service is degraded, and
// anything else is a prediction failure local to this request.
func (s *Server) writePredictError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("prediction request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleModelInfo(w http.ResponseWriter, _ *http.Request) {
	info, err := s.admin.Info()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleModelReload(w http.ResponseWriter, _ *http.Request) {
	if err := s.admin.Reload(); err != nil {
		s.metrics.ModelReloads.WithLabelValues("error").Inc()
		s.setModelGauge()
		s.logger.Error("model reload failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.metrics.ModelReloads.WithLabelValues("success").Inc()
	s.setModelGauge()

	info, err := s.admin.Info()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.logger.Info("model reloaded", "name", info.Name, "version", info.Version)
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) setModelGauge() {
	if s.admin.Loaded() {
		s.metrics.ModelLoaded.Set(1)
	} else {
		s.metrics.ModelLoaded.Set(0)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
