package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/radar/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.WeightConfiguring, convey.ShouldEqual, 0.4)
				convey.So(cfg.ThresholdStrong, convey.ShouldEqual, 75.0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RADAR_ADDR", ":8080")
			_ = os.Setenv("RADAR_SEED", "7")
			_ = os.Setenv("RADAR_START_YEAR", "2000")
			_ = os.Setenv("RADAR_END_YEAR", "2010")
			_ = os.Setenv("RADAR_WEIGHT_SENSING", "0.5")
			_ = os.Setenv("RADAR_THRESHOLD_MODERATE", "55")
			_ = os.Setenv("RADAR_METRICS_ENABLED", "false")
			_ = os.Setenv("RADAR_METRICS_REFRESH_INTERVAL", "45s")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Seed, convey.ShouldEqual, 7)
				convey.So(cfg.StartYear, convey.ShouldEqual, 2000)
				convey.So(cfg.EndYear, convey.ShouldEqual, 2010)
				convey.So(cfg.WeightSensing, convey.ShouldEqual, 0.5)
				convey.So(cfg.ThresholdModerate, convey.ShouldEqual, 55.0)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 45*time.Second)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# dataset settings
addr: ":9090"  # inline comment
dataset_path: /data/metrics.csv
dataset_watch: true
weight_sensing: 0.2
weight_seizing: 0.2
weight_configuring: 0.6
threshold_strong: 80
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("RADAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/metrics.csv")
				convey.So(cfg.DatasetWatch, convey.ShouldBeTrue)
				convey.So(cfg.WeightConfiguring, convey.ShouldEqual, 0.6)
				convey.So(cfg.ThresholdStrong, convey.ShouldEqual, 80.0)
				convey.So(cfg.ThresholdModerate, convey.ShouldEqual, 60.0)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "addr: \":9090\"\nseed: 11\n")
			_ = os.Setenv("RADAR_CONFIG", tmpFile)
			_ = os.Setenv("RADAR_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080") // env
				convey.So(cfg.Seed, convey.ShouldEqual, 11)      // file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("RADAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("RADAR_CONFIG", "/non/existent/radar.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("RADAR_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("RADAR_SEED", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with negative weights", func() {
			_ = os.Setenv("RADAR_WEIGHT_CONFIGURING", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should reject it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigLoaderDotEnv(t *testing.T) {
	convey.Convey("Given a .env file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "radar.env")
		content := "RADAR_ADDR=:7070\nRADAR_LOG_LEVEL=debug\n"
		convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)

		convey.Convey("When it is referenced by RADAR_ENV_FILE", func() {
			_ = os.Setenv("RADAR_ENV_FILE", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the same key is already in the environment", func() {
			_ = os.Setenv("RADAR_ENV_FILE", path)
			_ = os.Setenv("RADAR_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the environment should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the referenced file is missing", func() {
			_ = os.Setenv("RADAR_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fall back to defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			})
		})

		convey.Convey("When the referenced file is malformed", func() {
			bad := filepath.Join(t.TempDir(), "bad.env")
			convey.So(os.WriteFile(bad, []byte("not a valid line\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("RADAR_ENV_FILE", bad)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail with a dotenv error", func() {
				convey.So(errors.Is(err, config.ErrDotEnv), convey.ShouldBeTrue)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RADAR_CONFIG",
		"RADAR_ENV_FILE",
		"RADAR_ADDR",
		"RADAR_LOG_LEVEL",
		"RADAR_SEED",
		"RADAR_START_YEAR",
		"RADAR_END_YEAR",
		"RADAR_WEIGHT_SENSING",
		"RADAR_WEIGHT_CONFIGURING",
		"RADAR_THRESHOLD_MODERATE",
		"RADAR_METRICS_ENABLED",
		"RADAR_METRICS_REFRESH_INTERVAL",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "radar-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
