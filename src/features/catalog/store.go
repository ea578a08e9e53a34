package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/contre95/songstats/src/features/metrics"
	"github.com/contre95/songstats/src/music"
)

// Store owns the dataset the whole process queries. A nil dataset means absent.
type Store struct {
	loader music.DatasetLoader
	path   string

	mu      sync.Mutex
	loaded  bool
	lastErr error
	current atomic.Pointer[music.Dataset]
}

// NewStore creates a store that reads path with loader. Nothing is read until
// Load or EnsureLoaded is called.
func NewStore(loader music.DatasetLoader, path string) *Store {
	return &Store{loader: loader, path: path}
}

// Path returns the dataset location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the dataset, replacing the current one on success. On failure
// the store keeps whatever it held before and the error is returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Reload is the explicit replacement path used by the API and the file watcher.
func (s *Store) Reload(ctx context.Context) error {
	slog.Info("Reloading dataset", "path", s.path)
	return s.Load(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	ds, err := s.loader.Load(ctx, s.path)
	s.loaded = true
	s.lastErr = err
	if err != nil {
		result := "unavailable"
		if errors.Is(err, music.ErrMalformedDataset) {
			result = "malformed"
			slog.Error("Dataset is malformed, keeping previous state", "path", s.path, "error", err)
		} else {
			slog.Warn("Dataset unavailable, keeping previous state", "path", s.path, "error", err)
		}
		prev := s.current.Load()
		metrics.RecordDatasetLoad(result, prev.Len(), prev != nil)
		return err
	}
	s.current.Store(ds)
	metrics.RecordDatasetLoad("ok", ds.Len(), true)
	slog.Info("Dataset loaded", "path", s.path, "id", ds.ID, "tracks", ds.Len())
	return nil
}

// EnsureLoaded loads the dataset the first time it is called and returns the
// current dataset, which may be nil. Concurrent first callers trigger one load.
func (s *Store) EnsureLoaded(ctx context.Context) *music.Dataset {
	if ds := s.current.Load(); ds != nil {
		return ds
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		_ = s.loadLocked(ctx)
	}
	return s.current.Load()
}

// Dataset returns the current dataset without triggering a load.
func (s *Store) Dataset() *music.Dataset {
	return s.current.Load()
}

// LastError returns the error of the most recent load attempt, if any.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
