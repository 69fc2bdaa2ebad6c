package probe

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/radar/pkg/logger"
)

// Run checks service health, then fetches every loaded year's record and
// alignment concurrently and recomputes the alignment locally. It returns
// ErrMismatch when any year disagrees and the fetch error when any year
// could not be retrieved.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	cfg = cfg.withDefaults()
	stats := Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting radar probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return finish(ctx, stats), err
	}

	// Step 2: List years
	years, err := client.years(ctx)
	if err != nil {
		return finish(ctx, stats), fmt.Errorf("year listing failed: %w", err)
	}
	stats.Years = len(years)

	// Step 3: Verify every year
	if err := verifyYears(ctx, cfg, client, years, &stats); err != nil {
		return finish(ctx, stats), err
	}

	stats = finish(ctx, stats)
	if stats.Mismatched > 0 {
		return stats, fmt.Errorf("%w: %d of %d years", ErrMismatch, stats.Mismatched, stats.Checked)
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient) error {
	code, _, err := client.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	// Any 200 is healthy; the endpoint serves Prometheus metrics.
	if code != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, code)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// verifyYears fans out over years with at most cfg.Workers requests in flight.
func verifyYears(ctx context.Context, cfg Config, client *httpClient, years []int, stats *Stats) error {
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for _, year := range years {
		g.Go(func() error {
			m, err := verifyYear(gCtx, cfg, client, year)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				return fmt.Errorf("year %d: %w", year, err)
			}
			stats.Checked++
			if m != nil {
				stats.Mismatched++
				stats.Mismatches = append(stats.Mismatches, *m)
				return nil
			}
			stats.Matched++
			return nil
		})
	}
	err := g.Wait()
	sort.Slice(stats.Mismatches, func(i, j int) bool {
		return stats.Mismatches[i].Year < stats.Mismatches[j].Year
	})
	return err
}

// verifyYear returns a non-nil Mismatch when the remote result differs.
func verifyYear(ctx context.Context, cfg Config, client *httpClient, year int) (*Mismatch, error) {
	rec, err := client.record(ctx, year)
	if err != nil {
		return nil, err
	}
	remote, err := client.alignment(ctx, year)
	if err != nil {
		return nil, err
	}
	local := cfg.Calculator.Compute(rec)
	if remote.Score == local.Score && remote.Status == local.Status.String() {
		return nil, nil
	}
	logger.Get().Warn(ctx, "alignment mismatch",
		logger.Int("year", year),
		logger.Float64("remote", remote.Score),
		logger.Float64("local", local.Score),
		logger.String("remoteStatus", remote.Status),
		logger.String("localStatus", local.Status.String()))
	return &Mismatch{
		Year:         year,
		Remote:       remote.Score,
		Local:        local.Score,
		RemoteStatus: remote.Status,
		LocalStatus:  local.Status.String(),
	}, nil
}

// finish stamps the end time and logs the final statistics.
func finish(ctx context.Context, stats Stats) Stats {
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Get().Info(ctx, "final statistics",
		logger.Int("years", stats.Years),
		logger.Int("checked", stats.Checked),
		logger.Int("matched", stats.Matched),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()))
	return stats
}
