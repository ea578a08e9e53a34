package generating

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/contre95/songstats/src/infra/dataset"
	"github.com/contre95/songstats/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var window = music.YearWindow{From: 2010, To: 2024}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(Options{Songs: 50, Seed: 42, Window: window}, nil)
	require.NoError(t, err)
	b, err := Generate(Options{Songs: 50, Seed: 42, Window: window}, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Tracks, b.Tracks)

	c, err := Generate(Options{Songs: 50, Seed: 7, Window: window}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Tracks, c.Tracks)
}

func TestGeneratedTracksHoldInvariants(t *testing.T) {
	calls := 0
	ds, err := Generate(Options{Songs: 200, Seed: 42, Window: window}, func() { calls++ })
	require.NoError(t, err)
	require.Equal(t, 200, ds.Len())
	assert.Equal(t, 200, calls)
	require.NoError(t, ds.Validate(window))

	for i, tr := range ds.Tracks {
		assert.Equal(t, i+1, tr.ID)
		assert.LessOrEqual(t, tr.PlayCount, MaxPlayCount)
		assert.GreaterOrEqual(t, tr.Duration, 120)
		assert.LessOrEqual(t, tr.Duration, 360)
		if pool, ok := artistPools[tr.Genre]; ok {
			assert.True(t, slices.Contains(pool, tr.Artist), "%s is not a %s artist", tr.Artist, tr.Genre)
		} else {
			assert.True(t, slices.Contains(artists, tr.Artist))
		}
	}
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	_, err := Generate(Options{Songs: 0, Seed: 1, Window: window}, nil)
	assert.Error(t, err)
	_, err = Generate(Options{Songs: 10, Seed: 1, Window: music.YearWindow{From: 2024, To: 2010}}, nil)
	assert.Error(t, err)
}

func TestRunWritesDatasetAndMirror(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "songs.csv")
	dbPath := filepath.Join(dir, "songs.db")

	svc := NewService(dataset.NewCSVStore(window), dataset.NewSQLiteStore(window))
	generated, err := svc.Run(context.Background(), Options{Songs: 30, Seed: 42, Window: window}, csvPath, dbPath, nil)
	require.NoError(t, err)

	fromCSV, err := dataset.NewCSVStore(window).Load(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, generated.Tracks, fromCSV.Tracks)

	fromDB, err := dataset.NewSQLiteStore(window).Load(context.Background(), dbPath)
	require.NoError(t, err)
	assert.Equal(t, generated.Tracks, fromDB.Tracks)
}

func TestBasicStatistics(t *testing.T) {
	ds, err := Generate(Options{Songs: 120, Seed: 42, Window: window}, nil)
	require.NoError(t, err)
	st := BasicStatistics(ds)

	assert.Equal(t, 120, st.Songs)
	total := 0
	for _, s := range st.Shares {
		total += s.Count
	}
	assert.Equal(t, 120, total)
	assert.Len(t, st.Genres, len(st.Shares))
	assert.GreaterOrEqual(t, st.YearMin, window.From)
	assert.LessOrEqual(t, st.YearMax, window.To)

	var buf bytes.Buffer
	st.Print(&buf)
	assert.Contains(t, buf.String(), "Songs:       120")

	assert.Equal(t, 0, BasicStatistics(nil).Songs)
}
