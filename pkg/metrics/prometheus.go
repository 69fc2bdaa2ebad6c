// Package metrics provides Prometheus metrics for the radar service.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the radar service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Alignment
	alignmentComputations *prometheus.CounterVec
	alignmentLastScore    prometheus.Gauge
	viewsRendered         prometheus.Counter

	// Dataset
	datasetRecords  prometheus.Gauge
	datasetRejected prometheus.Counter
	datasetLoads    *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// ErrAlreadyConfigured is returned by Configure once the global manager exists.
var ErrAlreadyConfigured = errors.New("metrics: global manager already initialized")

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Global metrics manager, built on first use.
var globalManager = &lazyManager{registry: customRegistry} //nolint:gochecknoglobals // intentional global for singleton metrics manager

// lazyManager builds its Manager once, either from Configure or from the
// first recording call with defaults.
type lazyManager struct {
	once     sync.Once
	registry prometheus.Registerer
	m        *Manager
}

func (l *lazyManager) build(opts []Option) {
	l.m = NewManager(append([]Option{WithPrometheusRegistry(l.registry)}, opts...)...)
}

func (l *lazyManager) configure(opts ...Option) error {
	applied := false
	l.once.Do(func() {
		l.build(opts)
		applied = true
	})
	if !applied {
		return ErrAlreadyConfigured
	}
	return nil
}

func (l *lazyManager) get() *Manager {
	l.once.Do(func() { l.build(nil) })
	return l.m
}

// Configure builds the global manager with opts. It must run before any
// metric is recorded; afterwards it returns ErrAlreadyConfigured and the
// existing manager stays in place.
func Configure(opts ...Option) error { return globalManager.configure(opts...) }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "radar",
		subsystem:        "alignment",
		histogramBuckets: DefaultLatencyBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauges fed by pollers should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) name(n string) string {
	return m.metricPrefix + n
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.alignmentComputations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("computations_total"),
		Help:        "Alignment index computations by resulting status",
		ConstLabels: labels,
	}, []string{"status"})

	m.alignmentLastScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("last_score"),
		Help:        "Most recently computed alignment score",
		ConstLabels: labels,
	})

	m.viewsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("views_rendered_total"),
		Help:        "Dashboard views built for the presentation layer",
		ConstLabels: labels,
	})

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        m.name("records"),
		Help:        "Number of yearly records currently loaded",
		ConstLabels: labels,
	})

	m.datasetRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        m.name("rejected_records_total"),
		Help:        "Records rejected at the loading boundary as invalid input",
		ConstLabels: labels,
	})

	m.datasetLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "dataset",
		Name:        m.name("loads_total"),
		Help:        "Dataset loads by source kind and outcome",
		ConstLabels: labels,
	}, []string{"source", "outcome"})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "store",
		Name:        m.name("operation_latency_milliseconds"),
		Help:        "Store operation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"operation"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        m.name("requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        m.name("request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        m.name("by_type_total"),
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        m.name("by_endpoint_total"),
		Help:        "Errors by HTTP endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        m.name("latency_milliseconds"),
		Help:        "Latency of failed operations in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("memory_usage_bytes"),
		Help:        "Allocated heap bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("gc_pause_time_milliseconds"),
		Help:        "Average GC pause in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// RecordAlignment counts a computation and tracks its score.
func (m *Manager) RecordAlignment(status string, score float64) {
	if !m.enabled {
		return
	}
	m.alignmentComputations.WithLabelValues(status).Inc()
	m.alignmentLastScore.Set(score)
}

// RecordViewRendered counts a dashboard view build.
func (m *Manager) RecordViewRendered() {
	if m.enabled {
		m.viewsRendered.Inc()
	}
}

// UpdateDatasetRecords sets the loaded record gauge.
func (m *Manager) UpdateDatasetRecords(count int) {
	if m.enabled {
		m.datasetRecords.Set(float64(count))
	}
}

// RecordRejectedRecords adds boundary validation failures.
func (m *Manager) RecordRejectedRecords(count int) {
	if m.enabled && count > 0 {
		m.datasetRejected.Add(float64(count))
	}
}

// RecordDatasetLoad counts a load attempt.
func (m *Manager) RecordDatasetLoad(source, outcome string) {
	if m.enabled {
		m.datasetLoads.WithLabelValues(source, outcome).Inc()
	}
}

// RecordStoreLatency observes a store operation.
func (m *Manager) RecordStoreLatency(operation string, latencyMs float64) {
	if m.enabled {
		m.storeLatency.WithLabelValues(operation).Observe(latencyMs)
	}
}

// RecordHTTPRequest counts a request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes a request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByType counts an error by type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if m.enabled {
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint counts an error by endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency observes the latency of a failed operation.
func (m *Manager) RecordErrorLatency(component, errorType string, latencyMs float64) {
	if m.enabled {
		m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes the average GC pause.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// Package-level helpers delegate to the global manager.

// RecordAlignment counts a computation on the global manager.
func RecordAlignment(status string, score float64) { globalManager.get().RecordAlignment(status, score) }

// RecordViewRendered counts a view build on the global manager.
func RecordViewRendered() { globalManager.get().RecordViewRendered() }

// UpdateDatasetRecords sets the loaded record gauge on the global manager.
func UpdateDatasetRecords(count int) { globalManager.get().UpdateDatasetRecords(count) }

// RecordRejectedRecords adds validation failures on the global manager.
func RecordRejectedRecords(count int) { globalManager.get().RecordRejectedRecords(count) }

// RecordDatasetLoad counts a load attempt on the global manager.
func RecordDatasetLoad(source, outcome string) { globalManager.get().RecordDatasetLoad(source, outcome) }

// RecordStoreLatency observes a store operation on the global manager.
func RecordStoreLatency(operation string, latencyMs float64) {
	globalManager.get().RecordStoreLatency(operation, latencyMs)
}

// RecordHTTPRequest counts a request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.get().RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration observes a request on the global manager.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.get().RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByType counts an error on the global manager.
func RecordErrorByType(errorType, severity string) { globalManager.get().RecordErrorByType(errorType, severity) }

// RecordErrorByEndpoint counts an endpoint error on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.get().RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorLatency observes a failed operation on the global manager.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.get().RecordErrorLatency(component, errorType, latencyMs)
}

// UpdateSystemMemoryUsage sets heap bytes on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.get().UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge on the global manager.
func UpdateSystemGoroutineCount(count int) { globalManager.get().UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime observes GC pause on the global manager.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.get().RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom registry served on /healthz.
// Gathering before any recording still sees every collector.
func GetRegistry() *prometheus.Registry {
	globalManager.get()
	return customRegistry
}

// RefreshInterval returns how often periodic gauges should be refreshed.
func RefreshInterval() time.Duration { return globalManager.get().RefreshInterval() }
