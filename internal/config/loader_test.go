package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/statusboard/internal/config"
	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:9080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.WatchEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("STATUSBOARD_ADDR", ":8080")
			_ = os.Setenv("STATUSBOARD_DATA_DIR", "/srv/ratings")
			_ = os.Setenv("STATUSBOARD_LOAD_CONCURRENCY", "3")
			_ = os.Setenv("STATUSBOARD_RATING_POLICY", "clamp")
			_ = os.Setenv("STATUSBOARD_WATCH_ENABLED", "false")
			_ = os.Setenv("STATUSBOARD_WATCH_DEBOUNCE", "250ms")
			_ = os.Setenv("STATUSBOARD_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/ratings")
				convey.So(cfg.LoadConcurrency, convey.ShouldEqual, 3)
				convey.So(cfg.Policy(), convey.ShouldEqual, ingest.PolicyClamp)
				convey.So(cfg.WatchEnabled, convey.ShouldBeFalse)
				convey.So(cfg.WatchDebounce, convey.ShouldEqual, 250*time.Millisecond)
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"http://localhost:3000", "http://127.0.0.1:3000"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
data_dir: ./fixtures
log_level: debug
rating_policy: pass
watch_debounce: 2s
model_names:
  my-model: My Model
`)
			_ = os.Setenv("STATUSBOARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "./fixtures")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Policy(), convey.ShouldEqual, ingest.PolicyPass)
				convey.So(cfg.WatchDebounce, convey.ShouldEqual, 2*time.Second)
				convey.So(cfg.ModelNames["my-model"], convey.ShouldEqual, "My Model")
				convey.So(cfg.WatchEnabled, convey.ShouldBeTrue) // From defaults
			})
		})

		convey.Convey("When the file is passed explicitly", func() {
			tmpFile := createTempConfigFile(t, "data_dir: explicit\n")

			cfg, err := config.Load(ctx, config.WithFile(tmpFile))

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.DataDir, convey.ShouldEqual, "explicit")
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "addr: \":9090\"\ndata_dir: from-file\n")
			_ = os.Setenv("STATUSBOARD_CONFIG", tmpFile)
			_ = os.Setenv("STATUSBOARD_ADDR", ":8080") // This should override the file

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")        // Overridden by env
				convey.So(cfg.DataDir, convey.ShouldEqual, "from-file") // From file
			})
		})

		convey.Convey("When allowed origins come from both file and environment", func() {
			tmpFile := createTempConfigFile(t, "allowed_origins:\n  - http://file:1\n")
			_ = os.Setenv("STATUSBOARD_ALLOWED_ORIGINS", " http://a:1 ,,http://b:2")

			cfg, err := config.Load(ctx, config.WithFile(tmpFile))

			convey.Convey("Then the env list is split on commas and replaces the file list", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"http://a:1", "http://b:2"})
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("STATUSBOARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("STATUSBOARD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			cfg, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("STATUSBOARD_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("STATUSBOARD_LOAD_CONCURRENCY", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with an unknown rating policy", func() {
			_ = os.Setenv("STATUSBOARD_RATING_POLICY", "ignore")

			_, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, ingest.ErrInvalidPolicy), convey.ShouldBeTrue)
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, config.EnvPrefix) {
			_ = os.Unsetenv(key)
		}
	}
}
