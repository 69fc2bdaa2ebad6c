package service

import (
	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/internal/domain/alignment"
	"github.com/okian/radar/internal/domain/generator"
	"github.com/okian/radar/pkg/metrics"
)

// SourceFromConfig returns the dataset file when one is configured and the
// seeded synthetic series otherwise.
func SourceFromConfig(cfg *config.Config) generator.Source {
	if cfg.DatasetPath != "" {
		return dataset.NewFile(cfg.DatasetPath)
	}
	return generator.NewSynthetic(
		generator.WithSeed(cfg.Seed),
		generator.WithYears(cfg.StartYear, cfg.EndYear),
	)
}

// CalculatorFromConfig builds a calculator with the configured weights and
// thresholds.
func CalculatorFromConfig(cfg *config.Config) *alignment.Calculator {
	return alignment.NewCalculator(
		alignment.WithWeights(cfg.Weights()),
		alignment.WithThresholds(cfg.Thresholds()),
	)
}

// OptionsFromConfig maps a validated Config onto service options.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithSource(SourceFromConfig(cfg)),
		WithCalculator(CalculatorFromConfig(cfg)),
	}
}

// MetricsOptionsFromConfig maps the metrics keys onto manager options and
// labels every series with the kind of dataset being served.
func MetricsOptionsFromConfig(cfg *config.Config) []metrics.Option {
	source := "synthetic"
	if cfg.DatasetPath != "" {
		source = "file"
	}
	return []metrics.Option{
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
		metrics.WithConstLabel("dataset", source),
	}
}
