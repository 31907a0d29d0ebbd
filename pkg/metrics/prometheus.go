// Package metrics provides Prometheus metrics for the minerboard dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeFetchFailed  = "fetch_failed"
	OutcomeShapeFailed  = "shape_failed"
	OutcomeTransportErr = "transport_error"
	OutcomeBadStatus    = "bad_status"
	OutcomeBadBody      = "bad_body"
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Run pipeline
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	lastRows    prometheus.Gauge
	lastTotals  *prometheus.GaugeVec

	// Upstream source
	fetches        *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	fetchBodyBytes prometheus.Histogram

	// Charts
	chartRenderErrors prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "minerboard",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Dashboard runs (fetch -> render passes) by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Wall time of a complete dashboard run in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.lastRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "leaderboard_rows",
		Help:        "Number of leaderboard rows in the last successful run",
		ConstLabels: labels,
	})

	m.lastTotals = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "leaderboard_total",
		Help:        "Column totals shown in the last successful run",
		ConstLabels: labels,
	}, []string{"column"})

	m.fetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_fetches_total",
		Help:        "Requests made to the leaderboard source by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_fetch_duration_milliseconds",
		Help:        "Latency of leaderboard source requests in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.fetchBodyBytes = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_body_bytes",
		Help:        "Size of leaderboard source response bodies",
		Buckets:     prometheus.ExponentialBuckets(256, 4, 8),
		ConstLabels: labels,
	})

	m.chartRenderErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "chart_render_errors_total",
		Help:        "Charts that failed to render",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Current heap allocation in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutine_count",
		Help:        "Current number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// RecordRun counts a finished run and its duration.
func (m *Manager) RecordRun(outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(durationMs)
}

// UpdateLeaderboard publishes the row count and column totals of a successful run.
func (m *Manager) UpdateLeaderboard(rows int, totals map[string]float64) {
	if !m.enabled {
		return
	}
	m.lastRows.Set(float64(rows))
	for column, v := range totals {
		m.lastTotals.WithLabelValues(column).Set(v)
	}
}

// RecordFetch counts a source request.
func (m *Manager) RecordFetch(outcome string, durationMs float64, bodyBytes int) {
	if !m.enabled {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(durationMs)
	if bodyBytes > 0 {
		m.fetchBodyBytes.Observe(float64(bodyBytes))
	}
}

// RecordChartRenderError counts a chart that could not be drawn.
func (m *Manager) RecordChartRenderError() {
	if !m.enabled {
		return
	}
	m.chartRenderErrors.Inc()
}

// RecordHTTPRequest counts an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystem publishes runtime gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Package-level helpers delegate to the global manager.

// RecordRun records a finished run on the global manager.
func RecordRun(outcome string, durationMs float64) { globalManager.RecordRun(outcome, durationMs) }

// UpdateLeaderboard records the last successful run on the global manager.
func UpdateLeaderboard(rows int, totals map[string]float64) {
	globalManager.UpdateLeaderboard(rows, totals)
}

// RecordFetch records a source request on the global manager.
func RecordFetch(outcome string, durationMs float64, bodyBytes int) {
	globalManager.RecordFetch(outcome, durationMs, bodyBytes)
}

// RecordChartRenderError records a chart failure on the global manager.
func RecordChartRenderError() { globalManager.RecordChartRenderError() }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// UpdateSystem records runtime gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memBytes, goroutines, avgGCPauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
