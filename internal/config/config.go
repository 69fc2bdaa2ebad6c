// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keys are flat and match the koanf tags on Config.
// - New() returns defaults; Load layers a file and the environment on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/radar/internal/domain/alignment"
	"github.com/okian/radar/internal/domain/generator"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Seed drives the synthetic dataset when no file is configured.
	Seed int64 `koanf:"seed"`

	// StartYear and EndYear bound the synthetic series, inclusive.
	StartYear int `koanf:"start_year"`
	EndYear   int `koanf:"end_year"`

	// DatasetPath points at a JSON, YAML or CSV dataset. Empty means synthetic.
	DatasetPath string `koanf:"dataset_path"`

	// DatasetWatch reloads the dataset when the file changes.
	DatasetWatch bool `koanf:"dataset_watch"`

	// Capability weights for the alignment index.
	WeightSensing     float64 `koanf:"weight_sensing"`
	WeightSeizing     float64 `koanf:"weight_seizing"`
	WeightConfiguring float64 `koanf:"weight_configuring"`

	// Inclusive lower bounds of the Strong and Moderate tiers.
	ThresholdStrong   float64 `koanf:"threshold_strong"`
	ThresholdModerate float64 `koanf:"threshold_moderate"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsRefreshInterval is how often system gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`
}

// New creates a Config populated with defaults.
func New() *Config {
	w := alignment.DefaultWeights()
	t := alignment.DefaultThresholds()
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		Seed:              generator.DefaultSeed,
		StartYear:         generator.DefaultStartYear,
		EndYear:           generator.DefaultEndYear,
		WeightSensing:     w.Sensing,
		WeightSeizing:     w.Seizing,
		WeightConfiguring: w.Configuring,
		ThresholdStrong:   t.Strong,
		ThresholdModerate: t.Moderate,

		MetricsEnabled:         true,
		MetricsRefreshInterval: defaultMetricsRefreshInterval,
	}
}

// Weights returns the configured capability weights.
func (c *Config) Weights() alignment.Weights {
	return alignment.Weights{
		Sensing:     c.WeightSensing,
		Seizing:     c.WeightSeizing,
		Configuring: c.WeightConfiguring,
	}
}

// Thresholds returns the configured classification bounds.
func (c *Config) Thresholds() alignment.Thresholds {
	return alignment.Thresholds{Strong: c.ThresholdStrong, Moderate: c.ThresholdModerate}
}

const defaultMetricsRefreshInterval = 10 * time.Second

// MaxYearSpan bounds how many years the generator may be asked to produce.
const MaxYearSpan = 1000

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.StartYear <= 0 || c.EndYear < c.StartYear {
		return fmt.Errorf("%w: year range %d..%d", ErrInvalidConfig, c.StartYear, c.EndYear)
	}
	if c.EndYear-c.StartYear+1 > MaxYearSpan {
		return fmt.Errorf("%w: year range %d..%d spans more than %d years", ErrInvalidConfig, c.StartYear, c.EndYear, MaxYearSpan)
	}
	if c.MetricsRefreshInterval <= 0 {
		return fmt.Errorf("%w: metrics_refresh_interval must be positive, got %s", ErrInvalidConfig, c.MetricsRefreshInterval)
	}
	if err := c.Weights().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
