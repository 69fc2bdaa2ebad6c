package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/internal/adapters/http/api"
	"github.com/okian/radar/internal/adapters/http/site"
	"github.com/okian/radar/internal/adapters/http/swagger"
	service "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// The service exports its own system gauges on a custom registry.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// The logger may not be configured yet.
		fmt.Fprintln(os.Stderr, "radar: "+err.Error())
		stop()
		os.Exit(1)
	}
}

// run loads configuration, starts the service and serves HTTP until ctx is done.
func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := initLogging(cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Recording anything first would lock in the defaults.
	if err := metrics.Configure(service.MetricsOptionsFromConfig(cfg)...); err != nil {
		log.Warn(ctx, "metrics options ignored", logger.Error(err))
	}

	svc := service.New(append(service.OptionsFromConfig(cfg), service.WithLogger(log))...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx, metrics.RefreshInterval())

	if cfg.DatasetWatch && cfg.DatasetPath != "" {
		go watchDataset(ctx, cfg.DatasetPath, svc, log)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// initLogging applies the configured format and level. An invalid level
// falls back to info.
func initLogging(cfg *config.Config) error {
	var err error
	if strings.EqualFold(cfg.LogFormat, "json") {
		err = logger.InitJSON(os.Stdout)
	} else {
		err = logger.Init()
	}
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(context.Background(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// newHandler mounts the API, the docs and the landing page on one mux and
// tags every request with an ID.
func newHandler(ctx context.Context, svc *service.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Business API routes backed by the service.
	api.NewServer(svc, svc, api.WithLogger(log)).Register(ctx, mux)

	// ReDoc and the raw OpenAPI document.
	swagger.Register(ctx, mux)

	// Landing page on "/".
	site.Register(ctx, mux)

	return api.RequestIDMiddleware(mux)
}

// watchDataset reloads the service whenever the dataset file changes. A
// failed reload keeps the previous dataset.
func watchDataset(ctx context.Context, path string, svc *service.Service, log logger.Logger) {
	err := dataset.Watch(ctx, path, dataset.DefaultDebounce, func(ctx context.Context) {
		if err := svc.Reload(ctx); err != nil {
			log.Error(ctx, "dataset reload failed", logger.String("path", path), logger.Error(err))
			return
		}
		log.Info(ctx, "dataset reloaded", logger.String("path", path), logger.Int("years", len(svc.Years(ctx))))
	})
	if err != nil {
		log.Error(ctx, "dataset watch stopped", logger.Error(err))
	}
}

// startSystemMetricsUpdater refreshes system gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average GC pause
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
