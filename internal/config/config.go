// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and STATUSBOARD_* environment variables on top.
// - Errors are wrapped with ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, receives a JSON copy of every log record.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address. Loopback by default.
	Addr string `koanf:"addr"`

	// DataDir is the directory holding <model>_<temperature>.json files.
	DataDir string `koanf:"data_dir"`

	// LoadConcurrency bounds how many files are parsed at once.
	LoadConcurrency int `koanf:"load_concurrency"`

	// RatingPolicy is reject, clamp or pass.
	RatingPolicy string `koanf:"rating_policy"`

	// WatchEnabled reloads the snapshot when data files change.
	WatchEnabled bool `koanf:"watch_enabled"`

	// WatchDebounce is the quiet period before a change triggers a reload.
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// AllowedOrigins enables CORS for the listed origins. Empty disables CORS.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// ModelNames overrides or extends the built-in display names.
	ModelNames map[string]string `koanf:"model_names"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            "127.0.0.1:9080",
		DataDir:         "data",
		LoadConcurrency: runtime.NumCPU(),
		RatingPolicy:    string(ingest.PolicyReject),
		WatchEnabled:    true,
		WatchDebounce:   500 * time.Millisecond,
		ModelNames:      map[string]string{},
		ShutdownTimeout: 30 * time.Second,
	}
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.LoadConcurrency <= 0 {
		return fmt.Errorf("%w: load_concurrency must be positive, got %d", ErrInvalidConfig, c.LoadConcurrency)
	}
	if _, err := ingest.ParseRatingPolicy(c.RatingPolicy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("%w: watch_debounce must be positive", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Policy returns the parsed rating policy. Call Validate first.
func (c *Config) Policy() ingest.RatingPolicy {
	p, _ := ingest.ParseRatingPolicy(c.RatingPolicy)
	return p
}
