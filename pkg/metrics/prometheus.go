package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the statusboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Ingest Metrics - one observation per data file or load pass
	ingestFiles       *prometheus.CounterVec
	ingestDiagnostics *prometheus.CounterVec
	ingestDuration    prometheus.Histogram

	// Snapshot Metrics - what the served data set looks like
	snapshotReloads        *prometheus.CounterVec
	snapshotResponses      prometheus.Gauge
	snapshotItems          prometheus.Gauge
	snapshotLastUnix       prometheus.Gauge
	snapshotLastDurationMs prometheus.Gauge
	watchEvents            *prometheus.CounterVec

	// Query Metrics
	queryLatency *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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
		namespace:        "statusboard",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.ingestFiles = m.counterVec("ingest_files_total",
		"Data files seen by the loader, by outcome (loaded or skipped)", "outcome")
	m.ingestDiagnostics = m.counterVec("ingest_diagnostics_total",
		"Validation diagnostics raised while loading, by action", "action")
	m.ingestDuration = m.histogram("ingest_duration_milliseconds",
		"Duration of a full data directory load in milliseconds",
		[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000})

	m.snapshotReloads = m.counterVec("snapshot_reloads_total",
		"Snapshot reloads by result (ready, no_data, error)", "result")
	m.snapshotResponses = m.gauge("snapshot_responses",
		"Model responses in the current snapshot")
	m.snapshotItems = m.gauge("snapshot_items",
		"Status items in the current snapshot")
	m.snapshotLastUnix = m.gauge("snapshot_last_unix",
		"Unix timestamp of the last snapshot swap")
	m.snapshotLastDurationMs = m.gauge("snapshot_last_duration_milliseconds",
		"Duration of the last snapshot build in milliseconds")
	m.watchEvents = m.counterVec("watch_events_total",
		"File system events observed in the data directory, by operation", "op")

	m.queryLatency = m.histogramVec("query_latency_milliseconds",
		"Latency of query operations over a snapshot in milliseconds", "operation")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component and type", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by HTTP endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Ingest Metrics Functions.

// RecordIngestFile counts one data file by outcome.
func RecordIngestFile(outcome string) {
	globalManager.ingestFiles.WithLabelValues(outcome).Inc()
}

// RecordIngestDiagnostic counts one validation diagnostic by action.
func RecordIngestDiagnostic(action string) {
	globalManager.ingestDiagnostics.WithLabelValues(action).Inc()
}

// RecordIngestDuration records a directory load duration in milliseconds.
func RecordIngestDuration(durationMs float64) {
	globalManager.ingestDuration.Observe(durationMs)
}

// Snapshot Metrics Functions.

// RecordSnapshotReload counts a reload by result.
func RecordSnapshotReload(result string) {
	globalManager.snapshotReloads.WithLabelValues(result).Inc()
}

// UpdateSnapshotSize sets the response and item gauges for the current snapshot.
func UpdateSnapshotSize(responses, items int) {
	globalManager.snapshotResponses.Set(float64(responses))
	globalManager.snapshotItems.Set(float64(items))
}

// RecordSnapshotSwap stamps the swap time and build duration of a new snapshot.
func RecordSnapshotSwap(at time.Time, durationMs float64) {
	globalManager.snapshotLastUnix.Set(float64(at.Unix()))
	globalManager.snapshotLastDurationMs.Set(durationMs)
}

// RecordWatchEvent counts a data directory change notification.
func RecordWatchEvent(op string) {
	globalManager.watchEvents.WithLabelValues(op).Inc()
}

// Query Metrics Functions.

// RecordQueryLatency records the latency of a named query operation.
func RecordQueryLatency(operation string, latencyMs float64) {
	globalManager.queryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// CollectSystem samples runtime memory, goroutine and last GC pause figures.
func CollectSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	UpdateSystemMemoryUsage(ms.Alloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if ms.NumGC > 0 {
		last := ms.PauseNs[(ms.NumGC+255)%256]
		RecordSystemGCPauseTime(float64(last) / float64(time.Millisecond))
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Value returns the current value of the first counter or gauge in g whose
// full name matches and whose labels include every pair in labels.
// Histograms report their sample count.
func Value(g prometheus.Gatherer, name string, labels map[string]string) (float64, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, err
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metricLoop:
		for _, metric := range mf.GetMetric() {
			have := make(map[string]string, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				have[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if have[k] != v {
					continue metricLoop
				}
			}
			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue(), nil
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue(), nil
			case metric.GetHistogram() != nil:
				return float64(metric.GetHistogram().GetSampleCount()), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s %v", ErrMetricNotFound, name, labels)
}
