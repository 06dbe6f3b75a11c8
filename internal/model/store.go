package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/airsight/pm25-forecast/internal/domain"
)

// ErrNotLoaded is returned while no model artifact has been successfully
// loaded. Handlers map it to a 503.
var ErrNotLoaded = errors.New("model not loaded")

// Store owns the process-wide model lifecycle: loaded once at startup,
// read-only afterward, replaced only through an explicit Reload. It is
// injected into request handlers rather than cached in a package global so
// tests can substitute a stub predictor.
type Store struct {
	path      string
	cacheSize int
	logger    *slog.Logger

	mu        sync.RWMutex
	predictor domain.Predictor
	info      Info
	loadErr   error
}

// NewStore creates an empty store for the given artifact path. Call Load to
// populate it; a load failure leaves the store usable but not ready.
func NewStore(path string, cacheSize int, logger *slog.Logger) *Store {
	return &Store{
		path:      path,
		cacheSize: cacheSize,
		logger:    logger,
		loadErr:   ErrNotLoaded,
	}
}

// Load reads the artifact from disk and swaps it in. On failure the previous
// model (if any) is kept so an in-flight reload cannot take a healthy service
// down.
func (s *Store) Load() error {
	artifact, err := LoadArtifact(s.path)
	if err != nil {
		s.mu.Lock()
		if s.predictor == nil {
			s.loadErr = err
		}
		s.mu.Unlock()
		s.logger.Error("model load failed", "path", s.path, "error", err)
		return err
	}

	var predictor domain.Predictor = NewForest(artifact)
	if s.cacheSize > 0 {
		predictor = NewCachedPredictor(predictor, s.cacheSize)
	}

	s.mu.Lock()
	s.predictor = predictor
	s.info = artifact.Info()
	s.loadErr = nil
	s.mu.Unlock()

	s.logger.Info("model loaded",
		"path", s.path,
		"name", artifact.Name,
		"version", artifact.Version,
		"trees", len(artifact.Trees),
		"mae", artifact.Metrics.MAE,
		"r2", artifact.Metrics.R2,
	)
	return nil
}

// Reload re-reads the artifact. This is the only retry mechanism: failures at
// startup or here are never retried automatically.
func (s *Store) Reload() error {
	return s.Load()
}

// Predictor returns the loaded predictor and its metadata, or ErrNotLoaded
// (wrapping the original load error) when none is available.
func (s *Store) Predictor() (domain.Predictor, Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.predictor == nil {
		return nil, Info{}, s.notLoadedErr()
	}
	return s.predictor, s.info, nil
}

// Info returns artifact metadata for the model endpoint.
func (s *Store) Info() (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.predictor == nil {
		return Info{}, s.notLoadedErr()
	}
	return s.info, nil
}

// Loaded reports whether a model is currently available.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predictor != nil
}

// CheckReadiness satisfies the HTTP server's readiness contract: the service
// is ready once a model is loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.predictor == nil {
		return s.notLoadedErr()
	}
	return nil
}

// notLoadedErr wraps the underlying load failure, if any, so callers can
// still match ErrNotLoaded with errors.Is. Callers must hold at least a read
// lock.
func (s *Store) notLoadedErr() error {
	if s.loadErr != nil && !errors.Is(s.loadErr, ErrNotLoaded) {
		return fmt.Errorf("%w: %v", ErrNotLoaded, s.loadErr)
	}
	return ErrNotLoaded
}
