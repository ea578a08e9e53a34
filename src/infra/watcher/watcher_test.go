package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) <-chan FileEvent {
	t.Helper()
	events := make(chan FileEvent, 4)
	w, err := NewWatcher(events, 50*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		w.Stop()
	})
	require.NoError(t, w.Start(ctx, path))
	return events
}

func TestBurstOfWritesEmitsOneEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.csv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))
	events := startWatcher(t, path)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))
	}

	select {
	case ev := <-events:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, ev.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("no event after writing the watched file")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected second event %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestOtherFilesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.csv")
	events := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(make(chan FileEvent, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	require.NoError(t, w.Start(context.Background(), filepath.Join(t.TempDir(), "songs.csv")))
	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop()
	})
}

func TestConcurrentStop(t *testing.T) {
	w, err := NewWatcher(make(chan FileEvent, 1), 10*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), filepath.Join(t.TempDir(), "songs.csv")))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	wg.Wait()
}
