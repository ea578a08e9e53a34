package catalog

import (
	"context"
	"log/slog"

	"github.com/contre95/songstats/src/infra/watcher"
	"github.com/contre95/songstats/src/music"
)

// ReloadOnChange reloads the store for each watcher event until ctx is done
// or events is closed. after, when not nil, runs after every successful reload.
func (s *Store) ReloadOnChange(ctx context.Context, events <-chan watcher.FileEvent, after func(ctx context.Context, ds *music.Dataset)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.EventType == watcher.FileRemoved {
				slog.Warn("Dataset file removed, keeping the loaded dataset", "path", ev.Path)
				continue
			}
			if err := s.Reload(ctx); err != nil {
				continue
			}
			if after != nil {
				after(ctx, s.Dataset())
			}
		}
	}
}
