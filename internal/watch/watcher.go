// Package watch monitors workspace directories for file changes and feeds
// settled events into the hook pipeline. Events are debounced so rapid
// editor saves trigger one pipeline run, not one per write.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tasklink/internal/hook"
	"tasklink/internal/logging"
	"tasklink/internal/types"
)

// maxContentBytes caps how much file content is read for extraction.
// Larger files are matched on path keywords only.
const maxContentBytes = 512 * 1024

// Stats tracks watcher activity for diagnostics.
type Stats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	RunsTriggered int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
	LastEventType types.ChangeType
}

// Watcher watches directories and runs the hook pipeline for settled
// events.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	runner      *hook.Runner
	roots       []string
	ignores     []string
	debounceMap map[string]debouncedEvent
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

type debouncedEvent struct {
	change types.ChangeType
	at     time.Time
}

// New creates a watcher over the given roots. A zero debounce uses 500ms,
// enough to let editors finish their write-rename dance.
func New(runner *hook.Runner, roots, ignores []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		watcher:     fsw,
		runner:      runner,
		roots:       roots,
		ignores:     ignores,
		debounceMap: make(map[string]debouncedEvent),
		debounceDur: debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, root := range w.roots {
		if err := w.addRecursive(root); err != nil {
			logging.Get(logging.CategoryWatch).Warn("failed to watch %s: %v", root, err)
		}
	}
	logging.Watch("watching %d roots", len(w.roots))

	go w.run(ctx)
	return nil
}

// addRecursive registers root and all non-ignored subdirectories.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			logging.WatchDebug("cannot watch %s: %v", path, err)
		}
		return nil
	})
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.WatchError("error closing watcher: %v", err)
	}
	logging.Watch("stopped")
}

// run is the main event loop.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Watch("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.WatchError("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-debounceTicker.C:
			w.processDebouncedEvents(ctx)
		}
	}
}

// handleEvent records a filesystem event for debounced processing.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.ignored(event.Name) {
		return
	}

	var change types.ChangeType
	switch {
	case event.Op&fsnotify.Create != 0:
		change = types.ChangeCreate
	case event.Op&fsnotify.Write != 0:
		change = types.ChangeModify
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		change = types.ChangeDelete
	default:
		return // Ignore chmod etc.
	}

	// New directories need watching too.
	if change == types.ChangeCreate {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err == nil {
				logging.WatchDebug("watching new directory %s", event.Name)
			}
			return
		}
	}

	logging.WatchDebug("%s event for %s", change, event.Name)

	w.mu.Lock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = change
	switch change {
	case types.ChangeCreate:
		w.stats.FilesCreated++
	case types.ChangeModify:
		w.stats.FilesModified++
	case types.ChangeDelete:
		w.stats.FilesDeleted++
	}

	// Later events for the same path overwrite earlier ones; the last
	// change type within the debounce window wins.
	w.debounceMap[event.Name] = debouncedEvent{change: change, at: time.Now()}
	w.mu.Unlock()
}

// processDebouncedEvents runs the pipeline for events past the debounce
// window.
func (w *Watcher) processDebouncedEvents(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	type settled struct {
		path   string
		change types.ChangeType
	}
	var toProcess []settled
	for path, ev := range w.debounceMap {
		if now.Sub(ev.at) >= w.debounceDur {
			toProcess = append(toProcess, settled{path: path, change: ev.change})
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, ev := range toProcess {
		w.dispatch(ctx, ev.path, ev.change)
	}
}

// dispatch reads the file (when it still exists) and runs the pipeline.
func (w *Watcher) dispatch(ctx context.Context, path string, change types.ChangeType) {
	var content string
	if change != types.ChangeDelete {
		info, err := os.Stat(path)
		if err != nil {
			// Deleted between event and dispatch.
			change = types.ChangeDelete
		} else if info.IsDir() {
			return
		} else if info.Size() <= maxContentBytes {
			if data, err := os.ReadFile(path); err == nil {
				content = string(data)
			}
		}
	}

	w.mu.Lock()
	w.stats.RunsTriggered++
	w.mu.Unlock()

	res, err := w.runner.Run(ctx, hook.Event{Change: change, Path: path, Content: content})
	if err != nil {
		logging.WatchError("pipeline failed for %s: %v", path, err)
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return
	}
	if res.Suggested != nil {
		logging.Watch("%s: task %s suggestion %s -> %s (applied=%v)",
			filepath.Base(path), res.Suggested.TaskID, res.Suggested.From, res.Suggested.To, res.Applied)
	}
}

// ignored reports whether a path matches any ignore pattern. Patterns match
// whole path segments.
func (w *Watcher) ignored(path string) bool {
	norm := filepath.ToSlash(path)
	for _, segment := range strings.Split(norm, "/") {
		for _, pattern := range w.ignores {
			if segment == pattern {
				return true
			}
		}
	}
	return false
}

// GetStats returns a copy of the current watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// IsWatching returns true if the watcher is currently running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}
