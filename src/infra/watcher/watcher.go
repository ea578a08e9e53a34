// Package watcher reports changes to a single file, debounced.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when no debounce interval is configured.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors one file and emits an event once it stops changing.
// The parent directory is watched so files replaced by rename are still seen.
type Watcher struct {
	watcher       *fsnotify.Watcher
	target        string
	debounce      time.Duration
	debounceTimer *time.Timer
	lastType      FileEventType
	debounceMutex sync.Mutex
	stopOnce      sync.Once
	stopChan      chan struct{}
	eventChan     chan<- FileEvent
}

// NewWatcher creates a new file system watcher
func NewWatcher(eventChan chan<- FileEvent, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:   watcher,
		debounce:  debounce,
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching path for changes
func (w *Watcher) Start(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.target = abs
	slog.Info("Starting file watcher", "path", abs)

	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	go w.watchLoop(ctx)

	slog.Info("File watcher started successfully")
	return nil
}

// Stop stops the file watcher
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		slog.Info("Stopping file watcher")
		close(w.stopChan)

		w.debounceMutex.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
			w.debounceTimer = nil
		}
		w.debounceMutex.Unlock()

		w.watcher.Close()
	})
}

// watchLoop processes file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				slog.Error("File watcher error", "error", err)
			}

		case <-w.stopChan:
			return

		case <-ctx.Done():
			w.Stop()
			return
		}
	}
}

// handleEvent restarts the debounce timer for events on the target file
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.target {
		return
	}
	kind, ok := eventType(event.Op)
	if !ok {
		return
	}
	slog.Debug("Detected dataset change", "file", event.Name, "op", event.Op.String())

	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()

	w.lastType = kind
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, w.emitDebounceEvent)
}

// emitDebounceEvent emits a file event after debounce period
func (w *Watcher) emitDebounceEvent() {
	w.debounceMutex.Lock()
	kind := w.lastType
	w.debounceMutex.Unlock()

	event := FileEvent{
		Path:      w.target,
		EventType: kind,
		Timestamp: time.Now(),
	}

	select {
	case w.eventChan <- event:
		slog.Info("Emitted file event after debounce", "path", event.Path, "type", event.EventType)
	default:
		slog.Warn("Event channel full, dropping file event", "path", event.Path)
	}
}
