// Package service provides the dataset resolver that backs the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/trailfeed/internal/adapters/repository"
	"github.com/okian/trailfeed/internal/domain/dataset"
	"github.com/okian/trailfeed/pkg/logger"
	"github.com/okian/trailfeed/pkg/metrics"
)

// Resolution outcomes used as metric labels.
const (
	outcomeOK           = "ok"
	outcomeInvalidType  = "invalid_type"
	outcomeFileNotFound = "file_not_found"
	outcomeReadError    = "read_error"
)

const defaultRefreshInterval = 30 * time.Second

// Service resolves dataset kinds to file contents.
type Service struct {
	mu sync.RWMutex

	registry *dataset.Registry
	store    repository.Store

	refreshInterval time.Duration

	// Counters, updated without the lock.
	served atomic.Int64
	failed atomic.Int64

	// Last observed file state per kind, written by the refresher.
	files map[dataset.Kind]fileState

	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	logger logger.Logger
}

type fileState struct {
	available bool
	size      int64
	modTime   time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRegistry sets the dataset registry.
func WithRegistry(r *dataset.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithStore sets the store datasets are read from.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRefreshInterval sets how often dataset file gauges are refreshed.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without options it serves the default files
// from ./data through the local file system.
func New(opts ...Option) *Service {
	s := &Service{
		registry:        dataset.NewRegistry("data"),
		store:           repository.NewFileStore(),
		refreshInterval: defaultRefreshInterval,
		files:           make(map[dataset.Kind]fileState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start probes every registered dataset once and launches the background
// refresher. Missing files are logged, not fatal: they may be produced later
// by the cleaning pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dataset service...", logger.String("data_dir", s.registry.Dir()))

	for _, kind := range dataset.Kinds() {
		st := s.probe(ctx, kind)
		s.files[kind] = st
		if !st.available {
			path, _ := s.registry.Path(kind)
			s.logger.Warn(ctx, "dataset file not available", logger.String("dataset", kind.String()), logger.String("path", path))
		}
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.refreshLoop(ctx, s.stopCh, s.doneCh)

	s.started = true
	s.logger.Info(ctx, "dataset service started", logger.Duration("refresh_interval", s.refreshInterval))
	return nil
}

// Stop halts the refresher and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	done := s.doneCh
	s.started = false
	s.mu.Unlock()

	<-done
	s.logger.Info(context.Background(), "dataset service stopped")
}

// ResolveParam resolves the raw type parameter of a request. present is false
// when the request carried no type parameter at all, in which case the
// default dataset is served.
func (s *Service) ResolveParam(ctx context.Context, raw string, present bool) (dataset.Kind, []byte, error) {
	kind := dataset.Default
	if present {
		k, err := dataset.Parse(raw)
		if err != nil {
			s.record("", outcomeInvalidType, 0)
			return 0, nil, err
		}
		kind = k
	}
	data, err := s.Resolve(ctx, kind)
	return kind, data, err
}

// Resolve returns the current contents of the file registered for kind.
// Errors are ErrInvalidType, ErrFileNotFound or ErrRead from package dataset.
func (s *Service) Resolve(ctx context.Context, kind dataset.Kind) ([]byte, error) {
	path, err := s.registry.Path(kind)
	if err != nil {
		s.record("", outcomeInvalidType, 0)
		return nil, err
	}

	data, err := s.store.Read(ctx, path)
	switch {
	case err == nil:
		s.record(kind.String(), outcomeOK, len(data))
		return data, nil
	case errors.Is(err, repository.ErrNotFound):
		s.record(kind.String(), outcomeFileNotFound, 0)
		return nil, fmt.Errorf("%w: %s", dataset.ErrFileNotFound, kind)
	default:
		s.record(kind.String(), outcomeReadError, 0)
		s.log().Error(ctx, "dataset read failed", logger.String("dataset", kind.String()), logger.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", dataset.ErrRead, kind, err)
	}
}

func (s *Service) record(kind, outcome string, n int) {
	if kind == "" {
		kind = "unknown"
	}
	metrics.RecordResolution(kind, outcome)
	if outcome == outcomeOK {
		s.served.Add(1)
		metrics.RecordBytesServed(kind, n)
		return
	}
	s.failed.Add(1)
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

// probe stats the file for kind and publishes its state to metrics.
func (s *Service) probe(ctx context.Context, kind dataset.Kind) fileState {
	path, err := s.registry.Path(kind)
	if err != nil {
		return fileState{}
	}
	info, err := s.store.Stat(ctx, path)
	if err != nil {
		metrics.UpdateDatasetFile(kind.String(), false, 0, 0)
		return fileState{}
	}
	metrics.UpdateDatasetFile(kind.String(), true, info.Size, info.ModTime.Unix())
	return fileState{available: true, size: info.Size, modTime: info.ModTime}
}

// Refresh re-probes every dataset file and logs availability changes.
func (s *Service) Refresh(ctx context.Context) {
	for _, kind := range dataset.Kinds() {
		st := s.probe(ctx, kind)

		s.mu.Lock()
		prev, seen := s.files[kind]
		s.files[kind] = st
		s.mu.Unlock()

		if seen && prev.available != st.available {
			s.log().Info(ctx, "dataset availability changed",
				logger.String("dataset", kind.String()),
				logger.Bool("available", st.available),
			)
		}
	}
}

func (s *Service) refreshLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	datasets := make(map[string]interface{}, len(s.files))
	for _, kind := range dataset.Kinds() {
		st := s.files[kind]
		entry := map[string]interface{}{
			"available": st.available,
			"sizeBytes": st.size,
		}
		if st.available {
			entry["modifiedAt"] = st.modTime.UTC().Format(time.RFC3339)
		}
		datasets[kind.String()] = entry
	}

	return map[string]interface{}{
		"started":  s.started,
		"dataDir":  s.registry.Dir(),
		"served":   s.served.Load(),
		"failed":   s.failed.Load(),
		"datasets": datasets,
	}
}
