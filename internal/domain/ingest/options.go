// Package ingest turns a directory of rating files into validated model responses.
package ingest

import "github.com/okian/statusboard/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets a custom logger for the loader.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithConcurrency bounds how many files are read and parsed at once.
func WithConcurrency(n int) Option {
	return func(ld *Loader) {
		if n > 0 {
			ld.concurrency = n
		}
	}
}

// WithRatingPolicy selects how out-of-range ratings are handled.
func WithRatingPolicy(p RatingPolicy) Option {
	return func(ld *Loader) {
		if parsed, err := ParseRatingPolicy(string(p)); err == nil {
			ld.policy = parsed
		}
	}
}
