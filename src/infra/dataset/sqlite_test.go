package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/contre95/songstats/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(testWindow)
	path := filepath.Join(t.TempDir(), "songs.db")
	want := sampleDataset()

	require.NoError(t, store.Write(ctx, path, want))
	// a second write replaces rows instead of appending
	require.NoError(t, store.Write(ctx, path, want))

	got, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, want.Tracks, got.Tracks)
}

func TestSQLiteLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	_, err := NewSQLiteStore(testWindow).Load(context.Background(), path)
	assert.ErrorIs(t, err, music.ErrDatasetUnavailable)
	assert.NoFileExists(t, path)
}

func TestSQLiteLoadRejectsOutOfWindow(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "songs.db")
	require.NoError(t, NewSQLiteStore(music.YearWindow{}).Write(ctx, path, sampleDataset()))

	_, err := NewSQLiteStore(music.YearWindow{From: 2016, To: 2024}).Load(ctx, path)
	assert.ErrorIs(t, err, music.ErrMalformedDataset)
}
