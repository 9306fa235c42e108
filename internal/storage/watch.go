package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// coalesceDelay groups bursts of filesystem writes into one event.
const coalesceDelay = 100 * time.Millisecond

// WatchDir streams an EventChanged for every burst of changes under dir
// until ctx is cancelled. Temp files (".tmp-*") are ignored. The channel is
// closed when ctx is done or the watcher fails.
func WatchDir(ctx context.Context, dir string, log *zap.Logger) (<-chan Event, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: ensure watch dir: %v", ErrStorage, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: create watcher: %v", ErrStorage, err)
	}

	dirs, err := collectDirs(dir)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("%w: enumerate directories: %v", ErrStorage, err)
	}
	watched := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("%w: watch %s: %v", ErrStorage, d, err)
		}
		watched[d] = struct{}{}
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Warn("watcher close", zap.Error(err))
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer busy; it reloads everything on the next event anyway.
			}
		}
		throttle := newEventThrottle(coalesceDelay, send)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", zap.Error(err))
				throttle.Enqueue(Event{Type: EventChanged, Path: dir})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if strings.HasPrefix(filepath.Base(evt.Name), ".tmp-") {
					continue
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						sub, err := collectDirs(evt.Name)
						if err != nil {
							log.Warn("enumerate new directory", zap.String("dir", evt.Name), zap.Error(err))
						}
						for _, d := range sub {
							if _, found := watched[d]; found {
								continue
							}
							if err := watcher.Add(d); err != nil {
								log.Warn("watch new directory", zap.String("dir", d), zap.Error(err))
								continue
							}
							watched[d] = struct{}{}
						}
					}
				}
				log.Debug("storage change", zap.String("path", evt.Name), zap.String("op", evt.Op.String()))
				throttle.Enqueue(Event{Type: EventChanged, Path: evt.Name})
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns every directory under it, base included.
func collectDirs(base string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, filepath.Clean(path))
		}
		return nil
	})
	return dirs, err
}

// eventThrottle coalesces rapid notifications so consumers reload once per
// burst instead of once per write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	stopped bool
	delay   time.Duration
	send    func(Event)
}

func newEventThrottle(delay time.Duration, send func(Event)) *eventThrottle {
	return &eventThrottle{delay: delay, send: send}
}

func (t *eventThrottle) Enqueue(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending = &ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, t.flush)
	}
}

// flush sends under the lock so nothing is sent once Stop has returned.
func (t *eventThrottle) flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	ev := t.pending
	t.pending = nil
	t.timer = nil
	if ev != nil && !t.stopped {
		t.send(*ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
