package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/internal/domain/alignment"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Seed, convey.ShouldEqual, 42)
			convey.So(cfg.StartYear, convey.ShouldEqual, 1998)
			convey.So(cfg.EndYear, convey.ShouldEqual, 2023)
			convey.So(cfg.DatasetPath, convey.ShouldBeEmpty)
			convey.So(cfg.Weights(), convey.ShouldResemble, alignment.DefaultWeights())
			convey.So(cfg.Thresholds(), convey.ShouldResemble, alignment.DefaultThresholds())
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with bad values", t, func() {
		cases := map[string]func(c *config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = " " },
			"unknown level":      func(c *config.Config) { c.LogLevel = "chatty" },
			"unknown format":     func(c *config.Config) { c.LogFormat = "xml" },
			"reversed years":     func(c *config.Config) { c.StartYear, c.EndYear = 2020, 2010 },
			"huge year span":     func(c *config.Config) { c.StartYear, c.EndYear = 1, 2_000_000_000 },
			"zero refresh":       func(c *config.Config) { c.MetricsRefreshInterval = 0 },
			"negative weight":    func(c *config.Config) { c.WeightSeizing = -0.1 },
			"inverted threshold": func(c *config.Config) { c.ThresholdStrong, c.ThresholdModerate = 50, 60 },
		}

		for name, mutate := range cases {
			name, mutate := name, mutate
			convey.Convey("When the config has "+name, func() {
				cfg := config.New()
				mutate(cfg)

				convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
					err := cfg.Validate()
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}

		convey.Convey("When the year span is exactly the limit", func() {
			cfg := config.New()
			cfg.StartYear, cfg.EndYear = 1001, 1000+config.MaxYearSpan

			convey.Convey("Then it should be accepted", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When weights do not sum to one", func() {
			cfg := config.New()
			cfg.WeightSensing, cfg.WeightSeizing, cfg.WeightConfiguring = 1, 1, 1

			convey.Convey("Then it should still be accepted", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
