package service

import (
	"time"

	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDataDir sets the directory the service loads from.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithLoadConcurrency bounds parallel file parsing.
func WithLoadConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.loadConcurrency = n
		}
	}
}

// WithRatingPolicy selects how out-of-range ratings are handled.
func WithRatingPolicy(p ingest.RatingPolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.policy = p
		}
	}
}

// WithWatch enables reloading on data directory changes.
func WithWatch(enabled bool, debounce time.Duration) Option {
	return func(s *Service) {
		s.watchEnabled = enabled
		if debounce > 0 {
			s.watchDebounce = debounce
		}
	}
}

// WithModelNames adds display name overrides for model identifiers.
func WithModelNames(names map[string]string) Option {
	return func(s *Service) {
		s.modelNames = make(map[string]string, len(names))
		for id, name := range names {
			if name != "" {
				s.modelNames[id] = name
			}
		}
	}
}

// WithSystemMetricsInterval sets how often runtime gauges are sampled; zero disables it.
func WithSystemMetricsInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.systemMetricsInterval = d
		}
	}
}
