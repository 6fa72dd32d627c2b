package kv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher signals when the files backing a store change on disk, e.g. when a
// `sankalp mark` in another terminal updates state under a running TUI.
// Bursts of events are coalesced into one signal.
type Watcher struct {
	watcher  *fsnotify.Watcher
	match    func(name string) bool
	debounce time.Duration
	changes  chan struct{}
	logger   zerolog.Logger
}

// NewWatcher watches dir for writes to files whose base name satisfies match.
// Hidden files (temp files from FileStore) are always ignored.
func NewWatcher(dir string, match func(name string) bool, logger zerolog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if match == nil {
		match = func(string) bool { return true }
	}
	return &Watcher{
		watcher:  w,
		match:    match,
		debounce: defaultDebounce,
		changes:  make(chan struct{}, 1),
		logger:   logger,
	}, nil
}

// MatchPrefix accepts files whose base name starts with prefix (covers
// sqlite's -wal and -journal siblings).
func MatchPrefix(prefix string) func(string) bool {
	return func(name string) bool { return strings.HasPrefix(name, prefix) }
}

func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Run pumps fsnotify events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	var mu sync.Mutex
	var timer *time.Timer
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case w.changes <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			base := filepath.Base(ev.Name)
			if strings.HasPrefix(base, ".") || !w.match(base) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("state watcher error")
		}
	}
}
