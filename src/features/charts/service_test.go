package charts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/songstats/src/features/config"
	"github.com/contre95/songstats/src/features/generating"
	"github.com/contre95/songstats/src/music"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	ds *music.Dataset
}

func (s staticSource) EnsureLoaded(ctx context.Context) *music.Dataset {
	return s.ds
}

func newTestService(t *testing.T, ds *music.Dataset) (*Service, string) {
	t.Helper()
	cfg := config.Default()
	cfg.Charts.OutputDir = filepath.Join(t.TempDir(), "charts")
	cfg.Charts.Width, cfg.Charts.Height = 640, 400
	cfg.Charts.Thumbnails = true
	cfg.Charts.ThumbnailWidth = 320
	return NewService(staticSource{ds: ds}, config.NewManager(cfg)), cfg.Charts.OutputDir
}

func generated(t *testing.T) *music.Dataset {
	t.Helper()
	ds, err := generating.Generate(generating.Options{
		Songs:  120,
		Seed:   7,
		Window: music.YearWindow{From: 2010, To: 2024},
	}, nil)
	require.NoError(t, err)
	return ds
}

func TestRenderAllWritesEveryChart(t *testing.T) {
	svc, dir := newTestService(t, generated(t))

	var seen []string
	charts, err := svc.RenderAll(context.Background(), func(name string) { seen = append(seen, name) })
	require.NoError(t, err)
	assert.Equal(t, Names(), seen)
	require.Len(t, charts, 7)

	for _, c := range charts {
		assert.True(t, c.Rendered, c.Name)
		assert.Equal(t, URLPrefix+"/"+c.Name+".png", c.URL)
		assert.Equal(t, URLPrefix+"/"+c.Name+"_thumb.png", c.Thumbnail)
		assert.FileExists(t, filepath.Join(dir, c.Name+".png"))
		assert.FileExists(t, filepath.Join(dir, c.Name+"_thumb.png"))
	}
}

func TestRenderWithoutDataset(t *testing.T) {
	svc, dir := newTestService(t, nil)

	_, err := svc.RenderAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoData)
	_, err = svc.Render(context.Background(), "genre_heatmap")
	assert.ErrorIs(t, err, ErrNoData)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
	for _, c := range svc.List() {
		assert.False(t, c.Rendered)
	}
}

func TestRenderUnknownChart(t *testing.T) {
	svc, _ := newTestService(t, generated(t))
	_, err := svc.Render(context.Background(), "waveform")
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestTrendLine(t *testing.T) {
	tr := trend([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.NotNil(t, tr)
	assert.InDelta(t, 1.0, tr.Intercept, 1e-9)
	assert.InDelta(t, 2.0, tr.Slope, 1e-9)

	assert.Nil(t, trend([]float64{5, 5, 5}, []float64{1, 2, 3}))
	assert.Nil(t, trend([]float64{5}, []float64{1}))
}

func TestChartRoutes(t *testing.T) {
	svc, dir := newTestService(t, generated(t))
	app := fiber.New()
	RegisterRoutes(app, svc, dir)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/charts/render", nil), 30_000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/charts", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var listing struct {
		Charts []Chart `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	require.Len(t, listing.Charts, 7)
	assert.Equal(t, "genre_distribution", listing.Charts[0].Name)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, listing.Charts[0].URL, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}

func TestRenderRouteWithoutDataset(t *testing.T) {
	svc, dir := newTestService(t, nil)
	app := fiber.New()
	RegisterRoutes(app, svc, dir)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/charts/render", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
