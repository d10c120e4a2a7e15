package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Watch when the cached snapshot changes on disk, for
// example because another tempo process pulled fresh data.
type Event struct {
	Key string
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel to avoid losing bursts; isolated events are dropped
// rather than blocking the watcher.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cache: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "cache: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(s.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("cache: watch %s: %w", s.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer lags; the next change will trigger
				// a fresh read anyway.
			}
		}

		// Coalesce bursts: SaveSnapshot writes several keys back to back and
		// the consumer only needs one redraw.
		var pending map[string]struct{}
		var flush <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case <-flush:
				for key := range pending {
					send(Event{Key: key})
				}
				pending = nil
				flush = nil
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				send(Event{})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if pending == nil {
					pending = map[string]struct{}{}
					flush = time.After(100 * time.Millisecond)
				}
				pending[filepath.Base(evt.Name)] = struct{}{}
			}
		}
	}()

	return events, nil
}
