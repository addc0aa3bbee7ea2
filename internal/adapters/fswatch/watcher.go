// Package fswatch triggers a callback when the data directory changes.
package fswatch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/okian/statusboard/pkg/logger"
	"github.com/okian/statusboard/pkg/metrics"
)

const defaultDebounce = 500 * time.Millisecond

// ErrNoCallback is returned when a watcher is built without a change callback.
var ErrNoCallback = errors.New("fswatch: change callback is required")

// ChangeFunc is called once per debounced burst of changes.
type ChangeFunc func(ctx context.Context) error

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Triggers      int
	Errors        int
	LastEventPath string
	LastEventType string
	LastEventTime time.Time
}

// Watcher watches one directory for data file changes.
type Watcher struct {
	dir      string
	parent   string
	suffix   string
	debounce time.Duration
	onChange ChangeFunc
	logger   logger.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	stats   Stats
}

// New creates a watcher for dir that calls onChange after each burst of
// create, write, remove or rename events on matching files.
func New(dir string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, ErrNoCallback
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("fswatch: resolve %s: %w", dir, err)
	}
	w := &Watcher{
		dir:      filepath.Clean(abs),
		parent:   filepath.Dir(filepath.Clean(abs)),
		suffix:   ".json",
		debounce: defaultDebounce,
		onChange: onChange,
		logger:   logger.Get().Named("fswatch"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It is non-blocking; a missing directory is not an
// error, its parent is watched until the directory appears.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fswatch: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		w.logger.Warn(ctx, "data directory not watchable yet", logger.String("dir", w.dir), logger.Error(err))
	}
	// The parent lets us notice the directory being created, removed or renamed.
	if err := fw.Add(w.parent); err != nil {
		w.logger.Warn(ctx, "parent directory not watchable", logger.String("dir", w.parent), logger.Error(err))
	}

	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run(ctx, fw, w.stopCh, w.doneCh)

	w.logger.Info(ctx, "watching data directory", logger.String("dir", w.dir), logger.Duration("debounce", w.debounce))
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	fw, stopCh, doneCh := w.watcher, w.stopCh, w.doneCh
	w.mu.Unlock()

	close(stopCh)
	<-doneCh
	if err := fw.Close(); err != nil {
		w.logger.Error(context.Background(), "closing watcher", logger.Error(err))
	}
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.handleEvent(ctx, fw, event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error(ctx, "watcher error", logger.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-fire:
			fire = nil
			w.trigger(ctx)
		}
	}
}

// handleEvent reports whether event should schedule a reload.
func (w *Watcher) handleEvent(ctx context.Context, fw *fsnotify.Watcher, event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	op := opName(event.Op)
	if op == "" {
		return false
	}

	switch {
	case name == w.dir:
		if event.Op&fsnotify.Create != 0 {
			if err := fw.Add(w.dir); err != nil {
				w.logger.Warn(ctx, "data directory appeared but cannot be watched", logger.Error(err))
			}
		}
	case filepath.Dir(name) == w.dir && strings.HasSuffix(name, w.suffix):
	default:
		return false
	}

	w.logger.Debug(ctx, "data change", logger.String("path", name), logger.String("op", op))
	metrics.RecordWatchEvent(op)
	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventPath = name
	w.stats.LastEventType = op
	w.stats.LastEventTime = time.Now()
	w.mu.Unlock()
	return true
}

func (w *Watcher) trigger(ctx context.Context) {
	w.mu.Lock()
	w.stats.Triggers++
	w.mu.Unlock()
	if err := w.onChange(ctx); err != nil {
		w.logger.Error(ctx, "reload after change failed", logger.Error(err))
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
	}
}

func opName(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	default:
		return ""
	}
}
