package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/contre95/songstats/src/features/config"
	"github.com/contre95/songstats/src/features/metrics"
	"github.com/contre95/songstats/src/music"
	"github.com/contre95/songstats/src/query"
)

// Service exposes the query families over the store's dataset.
type Service struct {
	store         *Store
	configManager *config.Manager
}

// NewService creates a new catalog service.
func NewService(store *Store, cfgManager *config.Manager) *Service {
	return &Service{store: store, configManager: cfgManager}
}

// DatasetInfo describes the dataset currently served.
type DatasetInfo struct {
	Available bool       `json:"available"`
	ID        string     `json:"id,omitempty"`
	Source    string     `json:"source"`
	Tracks    int        `json:"tracks"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// List returns the first api.list_limit tracks in storage order.
func (s *Service) List(ctx context.Context) []music.Track {
	slog.Debug("List service called")
	defer metrics.ObserveQuery("list")()
	tracks := query.Head(s.store.EnsureLoaded(ctx), s.configManager.Get().API.ListLimit)
	slog.Debug("List completed", "tracks", len(tracks))
	return tracks
}

// Stats returns the aggregate statistics, or nil when there is no dataset.
func (s *Service) Stats(ctx context.Context) *query.Summary {
	slog.Debug("Stats service called")
	defer metrics.ObserveQuery("stats")()
	return query.Summarize(s.store.EnsureLoaded(ctx), s.configManager.Get().API.TopArtists)
}

// Filter returns at most api.filter_limit tracks matching every set criterion.
func (s *Service) Filter(ctx context.Context, c query.Criteria) []music.Track {
	slog.Debug("Filter service called", "criteria", c)
	defer metrics.ObserveQuery("filter")()
	tracks := query.Filter(s.store.EnsureLoaded(ctx), c, s.configManager.Get().API.FilterLimit)
	slog.Debug("Filter completed", "matches", len(tracks))
	return tracks
}

// Distinct returns the unique values of field in first-seen order.
func (s *Service) Distinct(ctx context.Context, field query.Field) ([]string, error) {
	slog.Debug("Distinct service called", "field", field)
	defer metrics.ObserveQuery("distinct")()
	return query.Distinct(s.store.EnsureLoaded(ctx), field)
}

// GenreDistribution returns track counts per genre, largest first.
func (s *Service) GenreDistribution(ctx context.Context) query.Ranking {
	defer metrics.ObserveQuery("genres")()
	return query.GenreDistribution(s.store.EnsureLoaded(ctx))
}

// TopArtists returns the api.top_artists artists with the most tracks.
func (s *Service) TopArtists(ctx context.Context) query.Ranking {
	defer metrics.ObserveQuery("top_artists")()
	return query.TopArtists(s.store.EnsureLoaded(ctx), s.configManager.Get().API.TopArtists)
}

// Info describes the current dataset.
func (s *Service) Info(ctx context.Context) DatasetInfo {
	ds := s.store.EnsureLoaded(ctx)
	info := DatasetInfo{Source: s.store.Path()}
	if err := s.store.LastError(); err != nil {
		info.Error = err.Error()
	}
	if ds == nil {
		return info
	}
	loadedAt := ds.LoadedAt
	info.Available = true
	info.ID = ds.ID
	info.Tracks = ds.Len()
	info.LoadedAt = &loadedAt
	return info
}

// Reload rereads the dataset file and returns the resulting info.
func (s *Service) Reload(ctx context.Context) (DatasetInfo, error) {
	slog.Debug("Reload service called")
	err := s.store.Reload(ctx)
	info := s.Info(ctx)
	if err != nil {
		slog.Error("Reload failed", "error", err)
		return info, err
	}
	slog.Debug("Reload completed", "tracks", info.Tracks)
	return info, nil
}
