// Package charts renders the static PNG charts of the catalogue.
package charts

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/contre95/songstats/src/features/config"
	"github.com/contre95/songstats/src/features/metrics"
	"github.com/contre95/songstats/src/infra/figure"
	"github.com/contre95/songstats/src/music"
	"github.com/contre95/songstats/src/query"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNoData is returned when there is no dataset to draw.
	ErrNoData = errors.New("no dataset loaded")
	// ErrUnknownChart is returned for a chart name that is not in the catalogue.
	ErrUnknownChart = errors.New("unknown chart")
)

// URLPrefix is where the rendered charts are served from.
const URLPrefix = "/static/charts"

const topArtistBars = 15

// DatasetSource hands out the current dataset, loading it on first use.
type DatasetSource interface {
	EnsureLoaded(ctx context.Context) *music.Dataset
}

type definition struct {
	name  string
	title string
	draw  func(ds *music.Dataset, size figure.Size) (image.Image, error)
}

var definitions = []definition{
	{"genre_distribution", "Genre distribution", drawGenres},
	{"year_distribution", "Release year distribution", drawYears},
	{"artist_songs", "Top 15 artists by songs", drawArtists},
	{"play_count_trend", "Average play count by year", drawPlayTrend},
	{"rating_vs_plays", "Rating vs play count", drawRatingVsPlays},
	{"duration_distribution", "Duration distribution", drawDurations},
	{"genre_heatmap", "Audio features by genre", drawHeatmap},
}

// Names lists the chart names in render order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for _, d := range definitions {
		names = append(names, d.name)
	}
	return names
}

func lookup(name string) (definition, bool) {
	i := slices.IndexFunc(definitions, func(d definition) bool { return d.name == name })
	if i < 0 {
		return definition{}, false
	}
	return definitions[i], true
}

// Chart describes one rendered (or renderable) chart.
type Chart struct {
	Name       string     `json:"name"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Thumbnail  string     `json:"thumbnail,omitempty"`
	Rendered   bool       `json:"rendered"`
	RenderedAt *time.Time `json:"rendered_at,omitempty"`
	path       string
}

// Path returns the PNG location on disk.
func (c Chart) Path() string {
	return c.path
}

// Service draws charts from the current dataset into the configured directory.
type Service struct {
	source        DatasetSource
	configManager *config.Manager
	mu            sync.Mutex
}

// NewService creates a new charts service.
func NewService(source DatasetSource, cfg *config.Manager) *Service {
	return &Service{source: source, configManager: cfg}
}

func (s *Service) describe(d definition) Chart {
	cfg := s.configManager.Get().Charts
	c := Chart{
		Name:  d.name,
		Title: d.title,
		URL:   URLPrefix + "/" + d.name + ".png",
		path:  filepath.Join(cfg.OutputDir, d.name+".png"),
	}
	if info, err := os.Stat(c.path); err == nil {
		mod := info.ModTime()
		c.Rendered = true
		c.RenderedAt = &mod
	}
	if cfg.Thumbnails {
		if _, err := os.Stat(thumbPath(c.path)); err == nil {
			c.Thumbnail = URLPrefix + "/" + d.name + "_thumb.png"
		}
	}
	return c
}

func thumbPath(path string) string {
	return path[:len(path)-len(".png")] + "_thumb.png"
}

// List returns every chart with its render status.
func (s *Service) List() []Chart {
	out := make([]Chart, 0, len(definitions))
	for _, d := range definitions {
		out = append(out, s.describe(d))
	}
	return out
}

// RenderAll draws every chart. progress, when not nil, is called after each chart.
func (s *Service) RenderAll(ctx context.Context, progress func(name string)) ([]Chart, error) {
	slog.Debug("RenderAll service called")
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := s.source.EnsureLoaded(ctx)
	if ds.Empty() {
		return nil, ErrNoData
	}
	out := make([]Chart, 0, len(definitions))
	for _, d := range definitions {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		c, err := s.render(ds, d)
		if err != nil {
			return out, err
		}
		out = append(out, c)
		if progress != nil {
			progress(d.name)
		}
	}
	slog.Info("Charts rendered", "count", len(out), "dataset", ds.ID)
	return out, nil
}

// Render draws a single chart by name.
func (s *Service) Render(ctx context.Context, name string) (Chart, error) {
	slog.Debug("Render service called", "chart", name)
	d, ok := lookup(name)
	if !ok {
		return Chart{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := s.source.EnsureLoaded(ctx)
	if ds.Empty() {
		return Chart{}, ErrNoData
	}
	return s.render(ds, d)
}

func (s *Service) render(ds *music.Dataset, d definition) (Chart, error) {
	cfg := s.configManager.Get().Charts
	c := s.describe(d)

	img, err := d.draw(ds, figure.Size{Width: cfg.Width, Height: cfg.Height})
	if err == nil {
		err = figure.WritePNG(c.path, img)
	}
	if err == nil && cfg.Thumbnails {
		err = figure.WritePNG(thumbPath(c.path), figure.Thumbnail(img, cfg.ThumbnailWidth))
	}
	metrics.RecordChart(d.name, err)
	if err != nil {
		slog.Error("Failed to render chart", "chart", d.name, "error", err)
		return c, fmt.Errorf("failed to render %s: %w", d.name, err)
	}
	return s.describe(d), nil
}

func drawGenres(ds *music.Dataset, size figure.Size) (image.Image, error) {
	var parts []figure.Slice
	for _, c := range query.GenreDistribution(ds) {
		parts = append(parts, figure.Slice{Label: c.Key, Value: float64(c.Value)})
	}
	return figure.Pie(size, "Genre distribution", parts), nil
}

func drawYears(ds *music.Dataset, size figure.Size) (image.Image, error) {
	return figure.Histogram{
		Title:     "Release year distribution",
		XLabel:    "Release year",
		YLabel:    "Songs",
		Values:    query.Column(ds, func(t *music.Track) float64 { return float64(t.ReleaseYear) }),
		Bins:      15,
		Color:     figure.SkyBlue,
		MeanLabel: func(m float64) string { return fmt.Sprintf("Mean year: %.1f", m) },
	}.Draw(size)
}

func drawArtists(ds *music.Dataset, size figure.Size) (image.Image, error) {
	top := query.TopArtists(ds, topArtistBars)
	values := make([]float64, 0, len(top))
	for _, c := range top {
		values = append(values, float64(c.Value))
	}
	return figure.Bars(size, "Top 15 artists by songs", "Artist", "Songs", top.Keys(), values)
}

func drawPlayTrend(ds *music.Dataset, size figure.Size) (image.Image, error) {
	var points []figure.Point
	for _, y := range query.MeanByYear(ds, func(t *music.Track) float64 { return t.PlayCountMillions }) {
		points = append(points, figure.Point{X: float64(y.Year), Y: y.Mean})
	}
	return figure.Line(size, "Average play count by year", "Release year", "Average plays (millions)", points, "%.1fM")
}

func drawRatingVsPlays(ds *music.Dataset, size figure.Size) (image.Image, error) {
	ratings := query.Column(ds, func(t *music.Track) float64 { return t.Rating })
	plays := query.Column(ds, func(t *music.Track) float64 { return t.PlayCountMillions })
	points := make([]figure.Point, len(ratings))
	for i := range ratings {
		points[i] = figure.Point{X: ratings[i], Y: plays[i]}
	}
	return figure.Scatter{
		Title:      "Rating vs play count",
		XLabel:     "Rating",
		YLabel:     "Plays (millions)",
		Points:     points,
		Values:     query.Column(ds, func(t *music.Track) float64 { return t.Energy }),
		ValueLabel: "Energy",
		Trend:      trend(ratings, plays),
	}.Draw(size)
}

// trend fits plays = a + b*rating by least squares. It returns nil when the
// ratings have no spread.
func trend(x, y []float64) *figure.Trend {
	if len(x) < 2 {
		return nil
	}
	a, b := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(b, 0) {
		return nil
	}
	return &figure.Trend{Intercept: a, Slope: b}
}

func drawDurations(ds *music.Dataset, size figure.Size) (image.Image, error) {
	return figure.Histogram{
		Title:     "Duration distribution",
		XLabel:    "Duration (minutes)",
		YLabel:    "Songs",
		Values:    query.Column(ds, func(t *music.Track) float64 { return t.DurationMinutes }),
		Bins:      20,
		Color:     figure.LightGreen,
		MeanLabel: func(m float64) string { return fmt.Sprintf("Mean: %.2f min", m) },
	}.Draw(size)
}

func drawHeatmap(ds *music.Dataset, size figure.Size) (image.Image, error) {
	m := query.FeatureMeansByGenre(ds)
	cols := make([]string, len(m.Features))
	for i, f := range m.Features {
		cols[i] = string(f)
	}
	return figure.Heatmap{
		Title:  "Audio features by genre",
		XLabel: "Feature",
		YLabel: "Genre",
		Rows:   m.Genres,
		Cols:   cols,
		Values: m.Values,
	}.Draw(size)
}
