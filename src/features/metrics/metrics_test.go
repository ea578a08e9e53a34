package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contre95/songstats/src/music"
	"github.com/contre95/songstats/src/query"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	ds *music.Dataset
}

func (f fixedSource) EnsureLoaded(ctx context.Context) *music.Dataset {
	return f.ds
}

func track(id int, genre music.Genre, artist string, year, plays int) music.Track {
	t := music.Track{
		ID: id, Title: "t", Artist: artist, Album: "a", Genre: genre,
		ReleaseYear: year, PlayCount: plays, Duration: 200, Rating: 7,
	}
	t.Derive()
	return t
}

func TestGetAllMetrics(t *testing.T) {
	ds := music.NewDataset("test", []music.Track{
		track(1, music.GenrePop, "A", 2020, 2_000_000),
		track(2, music.GenreRock, "B", 2020, 4_000_000),
		track(3, music.GenrePop, "A", 2022, 1_000_000),
	})
	data := NewService(fixedSource{ds: ds}, 0).GetAllMetrics(context.Background())

	assert.Equal(t, 3, data.TotalTracks)
	assert.Equal(t, 2, data.TotalArtists)
	assert.Equal(t, 2, data.TotalGenres)
	assert.Equal(t, []string{"Pop", "Rock"}, data.Genres.Labels)
	assert.Equal(t, []float64{2, 1}, data.Genres.Datasets[0].Data)
	assert.Equal(t, []string{"2020", "2022"}, data.Years.Labels)
	assert.Equal(t, []float64{2, 1}, data.Years.Datasets[0].Data)
	assert.Equal(t, []float64{3, 1}, data.PlayTrend.Datasets[0].Data)
}

func TestGetAllMetricsWithoutDataset(t *testing.T) {
	data := NewService(fixedSource{}, 10).GetAllMetrics(context.Background())
	assert.Zero(t, data.TotalTracks)
	assert.Empty(t, data.Genres.Labels)
	assert.Empty(t, data.PlayTrend.Labels)
}

func TestRankingChartCyclesPalette(t *testing.T) {
	r := query.Ranking{}
	for i := 0; i < len(colorPalette)+2; i++ {
		r = append(r, query.Count{Key: string(rune('a' + i)), Value: i})
	}
	chart := ArtistChartData(r)
	colors := chart.Datasets[0].BackgroundColor
	require.Len(t, colors, len(r))
	assert.Equal(t, colors[0], colors[len(colorPalette)])
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(queryRejected.WithLabelValues("filter"))
	RejectQuery("filter")
	assert.Equal(t, before+1, testutil.ToFloat64(queryRejected.WithLabelValues("filter")))

	RecordDatasetLoad("ok", 42, true)
	assert.Equal(t, 42.0, testutil.ToFloat64(datasetTracks))
	assert.Equal(t, 1.0, testutil.ToFloat64(datasetAvailable))

	failed := testutil.ToFloat64(chartsRendered.WithLabelValues("genre_heatmap", "error"))
	RecordChart("genre_heatmap", errors.New("disk full"))
	assert.Equal(t, failed+1, testutil.ToFloat64(chartsRendered.WithLabelValues("genre_heatmap", "error")))
}

func TestMiddlewareCountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/items/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	counter := httpRequests.WithLabelValues(http.MethodGet, "/api/items/:id", "200")
	before := testutil.ToFloat64(counter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/items/7", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
