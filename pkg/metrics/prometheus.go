// Package metrics provides Prometheus metrics for the combine roster service.
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

// Manager manages all Prometheus metrics for the combine service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Import Pipeline Metrics - What really matters for bulk roster imports
	importsStarted   prometheus.Counter
	importsCommitted prometheus.Counter
	importsFailed    prometheus.Counter
	importDuration   prometheus.Histogram
	rowsCreated      prometheus.Counter
	rowsUpdated      prometheus.Counter
	rowsRejected     *prometheus.CounterVec
	scoresWritten    *prometheus.CounterVec
	mappingsProposed prometheus.Counter

	// Ranking Metrics
	rankingsComputed prometheus.Counter
	rankingDuration  prometheus.Histogram

	// Store Metrics - Participant store health
	storeBatchSize    prometheus.Histogram
	storeBatchErrors  prometheus.Counter
	storeQueryLatency prometheus.Histogram
	totalParticipants prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "combine",
		subsystem:        "roster",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Import Pipeline Metrics
	m.importsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "imports_started_total",
		Help:      "Total number of import calls accepted for processing",
	})

	m.importsCommitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "imports_committed_total",
		Help:      "Total number of imports whose write batch committed",
	})

	m.importsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "imports_failed_total",
		Help:      "Total number of imports aborted by a write batch failure",
	})

	m.importDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "import_duration_milliseconds",
		Help:      "End-to-end import call duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rowsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_created_total",
		Help:      "Total number of imported rows that created a new participant",
	})

	m.rowsUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_updated_total",
		Help:      "Total number of imported rows merged into an existing participant",
	})

	m.rowsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rows_rejected_total",
			Help:      "Total number of rejected rows by rejection reason",
		},
		[]string{"reason"},
	)

	m.scoresWritten = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "scores_written_total",
			Help:      "Total number of drill scores written by drill key",
		},
		[]string{"drill"},
	)

	m.mappingsProposed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mappings_proposed_total",
		Help:      "Total number of header mapping dry runs served",
	})

	// Ranking Metrics
	m.rankingsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_computed_total",
		Help:      "Total number of ranking recomputations",
	})

	m.rankingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_duration_milliseconds",
		Help:      "Ranking recomputation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Store Metrics
	m.storeBatchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_batch_size",
		Help:      "Number of writes per committed store batch",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 400, 1000, 2500, 5000},
	})

	m.storeBatchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_batch_errors_total",
		Help:      "Total number of store batch failures",
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Participant store query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.totalParticipants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_participants",
		Help:      "Total number of participants tracked across events",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of operations that resulted in errors",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordImportStarted increments the imports started counter.
func RecordImportStarted() {
	globalManager.importsStarted.Inc()
}

// RecordImportCommitted increments the imports committed counter.
func RecordImportCommitted() {
	globalManager.importsCommitted.Inc()
}

// RecordImportFailed increments the imports failed counter.
func RecordImportFailed() {
	globalManager.importsFailed.Inc()
}

// RecordImportDuration records an end-to-end import duration in milliseconds.
func RecordImportDuration(durationMs float64) {
	globalManager.importDuration.Observe(durationMs)
}

// RecordRowsCreated adds to the created rows counter.
func RecordRowsCreated(n int) {
	globalManager.rowsCreated.Add(float64(n))
}

// RecordRowsUpdated adds to the updated rows counter.
func RecordRowsUpdated(n int) {
	globalManager.rowsUpdated.Add(float64(n))
}

// RecordRowRejected increments the rejected rows counter for a reason.
func RecordRowRejected(reason string) {
	globalManager.rowsRejected.WithLabelValues(reason).Inc()
}

// RecordScoresWritten adds to the scores written counter for a drill key.
func RecordScoresWritten(drill string, n int) {
	globalManager.scoresWritten.WithLabelValues(drill).Add(float64(n))
}

// RecordMappingProposed increments the mapping dry-run counter.
func RecordMappingProposed() {
	globalManager.mappingsProposed.Inc()
}

// RecordRankingComputed increments the rankings computed counter.
func RecordRankingComputed() {
	globalManager.rankingsComputed.Inc()
}

// RecordRankingDuration records a ranking recomputation duration in milliseconds.
func RecordRankingDuration(durationMs float64) {
	globalManager.rankingDuration.Observe(durationMs)
}

// RecordStoreBatchSize records the number of writes in a committed batch.
func RecordStoreBatchSize(size int) {
	globalManager.storeBatchSize.Observe(float64(size))
}

// RecordStoreBatchError increments the store batch failure counter.
func RecordStoreBatchError() {
	globalManager.storeBatchErrors.Inc()
}

// RecordStoreQueryLatency records participant store query latency.
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

// UpdateTotalParticipants sets the total participants gauge.
func UpdateTotalParticipants(count int) {
	globalManager.totalParticipants.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent increments the error counter for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType increments the error counter for an error type.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that errored.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
