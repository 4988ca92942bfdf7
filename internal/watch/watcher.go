// Package watch reloads a layout file when it changes on disk.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/fsnotify/fsnotify"
)

// DebounceDelay coalesces the bursts of events editors produce on save.
const DebounceDelay = 100 * time.Millisecond

// ReloadEvent carries a freshly loaded layout, or the error loading it.
type ReloadEvent struct {
	Path   string
	Layout config.Layout
	Err    error
}

// Watcher watches one layout file for changes
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	changes chan ReloadEvent
	done    chan struct{}

	mu            sync.Mutex
	debounceTimer *time.Timer
	stopped       bool
}

// NewWatcher creates a watcher for the layout file at path. The file does
// not need to exist yet; its directory does.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve layout path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		path:    abs,
		watcher: fsWatcher,
		logger:  logger,
		changes: make(chan ReloadEvent, 1),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the layout file's directory. Editors often replace
// files instead of writing them in place, so the directory is watched rather
// than the file.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher and closes Changes. It is safe to call more than
// once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.done)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.watcher.Close()
	close(w.changes)
}

// Changes returns the channel of reload notifications. Only the latest
// undelivered event is kept.
func (w *Watcher) Changes() <-chan ReloadEvent {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// watch is the main event loop
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			w.logger.Warn("watch: fsnotify error", "error", err)
		}
	}
}

// schedule resets the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(DebounceDelay, w.reload)
}

// reload loads the file and publishes the result after the debounce delay.
func (w *Watcher) reload() {
	layout, err := config.LoadLayout(w.path)
	ev := ReloadEvent{Path: w.path, Layout: layout, Err: err}
	if err != nil {
		w.logger.Warn("watch: layout reload failed", "path", w.path, "error", err)
	} else {
		w.logger.Debug("watch: layout reloaded", "path", w.path, "panels", len(layout.Panels))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	// Drop an undelivered older event so the newest always fits.
	select {
	case <-w.changes:
	default:
	}
	w.changes <- ev
}
