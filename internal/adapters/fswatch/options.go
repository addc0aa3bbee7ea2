package fswatch

import (
	"time"

	"github.com/okian/statusboard/pkg/logger"
)

// Option applies a configuration option to the Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits after the last event of a burst.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets a custom logger for the watcher.
func WithLogger(l logger.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSuffix changes which file names count as data files.
func WithSuffix(suffix string) Option {
	return func(w *Watcher) {
		if suffix != "" {
			w.suffix = suffix
		}
	}
}
