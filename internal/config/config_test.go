package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/statusboard/internal/config"
	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:9080")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.LoadConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.Policy(), convey.ShouldEqual, ingest.PolicyReject)
			convey.So(cfg.WatchEnabled, convey.ShouldBeTrue)
			convey.So(cfg.WatchDebounce, convey.ShouldEqual, 500*time.Millisecond)
			convey.So(cfg.AllowedOrigins, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with a single bad field", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":        func(c *config.Config) { c.Addr = " " },
			"empty data dir":    func(c *config.Config) { c.DataDir = "" },
			"zero concurrency":  func(c *config.Config) { c.LoadConcurrency = 0 },
			"unknown policy":    func(c *config.Config) { c.RatingPolicy = "ignore" },
			"unknown log level": func(c *config.Config) { c.LogLevel = "loud" },
			"zero debounce":     func(c *config.Config) { c.WatchDebounce = 0 },
			"negative shutdown": func(c *config.Config) { c.ShutdownTimeout = -time.Second },
		}
		for name, mutate := range cases {
			convey.Convey("When the config has "+name, func() {
				cfg := config.New()
				mutate(cfg)

				convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
