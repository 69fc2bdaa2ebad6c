// Package probe cross-checks a running radar service against a local
// alignment calculator.
package probe

import (
	"errors"
	"time"

	"github.com/okian/radar/internal/domain/alignment"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultWorkers = 4
	DefaultTimeout = 5 * time.Second
)

// ErrMismatch is returned when the service disagrees with the local calculator.
var ErrMismatch = errors.New("alignment mismatch")

// ErrUnhealthy is returned when the health check fails.
var ErrUnhealthy = errors.New("service unhealthy")

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string                // Base URL of the service
	Workers    int                   // Number of concurrent year fetches
	Timeout    time.Duration         // HTTP request timeout
	Calculator *alignment.Calculator // Local reference calculator
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Calculator == nil {
		c.Calculator = alignment.NewCalculator()
	}
	return c
}

// Mismatch describes one year where the service and the local result differ.
type Mismatch struct {
	Year   int
	Remote float64
	Local  float64
	// Status names, kept as strings so unknown remote values survive.
	RemoteStatus string
	LocalStatus  string
}

// Stats holds probe statistics.
type Stats struct {
	Years      int
	Checked    int
	Matched    int
	Mismatched int
	Failed     int
	Mismatches []Mismatch
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
