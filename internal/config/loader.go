package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment contract.
const (
	EnvPrefix     = "STATUSBOARD_"
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// LoadOption adjusts how Load finds its sources.
type LoadOption func(*loadSettings)

type loadSettings struct {
	file string
}

// WithFile reads YAML from path instead of $STATUSBOARD_CONFIG.
func WithFile(path string) LoadOption {
	return func(s *loadSettings) { s.file = path }
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from WithFile or STATUSBOARD_CONFIG
//  3. env (prefix STATUSBOARD_)
func Load(_ context.Context, opts ...LoadOption) (*Config, error) {
	s := loadSettings{file: os.Getenv(EnvConfigFile)}
	for _, opt := range opts {
		opt(&s)
	}

	k := koanf.New(".")

	if s.file != "" {
		if err := k.Load(file.Provider(s.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, s.file, err)
		}
	}

	// STATUSBOARD_DATA_DIR -> data_dir (flat keys, underscores preserved).
	envProvider := env.ProviderWithValue(EnvPrefix, ".", envValue)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// The config file path is not itself a setting.
	k.Delete("config")

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// listKeys are slice settings given as comma-separated env values.
var listKeys = map[string]bool{
	"allowed_origins": true,
}

func envValue(key, value string) (string, any) {
	key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
	if !listKeys[key] {
		return key, value
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}
