package metrics

import (
	"context"
	"log/slog"

	"github.com/contre95/songstats/src/music"
	"github.com/contre95/songstats/src/query"
)

// DatasetSource hands out the current dataset, loading it on first use.
type DatasetSource interface {
	EnsureLoaded(ctx context.Context) *music.Dataset
}

// Service builds chart-ready aggregates of the catalogue.
type Service struct {
	source     DatasetSource
	topArtists int
}

// NewService creates a new metrics service.
func NewService(source DatasetSource, topArtists int) *Service {
	if topArtists <= 0 {
		topArtists = query.DefaultTopArtists
	}
	return &Service{source: source, topArtists: topArtists}
}

// MetricsData holds all metrics for display.
type MetricsData struct {
	TotalTracks  int        `json:"total_tracks"`
	TotalArtists int        `json:"total_artists"`
	TotalGenres  int        `json:"total_genres"`
	Genres       *ChartData `json:"genres"`
	Artists      *ChartData `json:"artists"`
	Years        *ChartData `json:"years"`
	PlayTrend    *ChartData `json:"play_trend"`
}

// GetAllMetrics computes every chart series from the current dataset.
func (s *Service) GetAllMetrics(ctx context.Context) *MetricsData {
	slog.Debug("GetAllMetrics service called")
	defer ObserveQuery("metrics")()

	ds := s.source.EnsureLoaded(ctx)
	byYear := query.MeanByYear(ds, func(t *music.Track) float64 { return t.PlayCountMillions })
	data := &MetricsData{
		TotalTracks: ds.Len(),
		Genres:      GenreChartData(query.GenreDistribution(ds)),
		Artists:     ArtistChartData(query.TopArtists(ds, s.topArtists)),
		Years:       YearBarData(byYear),
		PlayTrend:   PlayTrendData(byYear),
	}
	if sum := query.Summarize(ds, s.topArtists); sum != nil {
		data.TotalArtists = sum.TotalArtists
		data.TotalGenres = sum.TotalGenres
	}
	slog.Debug("GetAllMetrics completed", "tracks", data.TotalTracks)
	return data
}
