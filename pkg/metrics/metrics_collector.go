package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector aggregates the prometheus instruments for the API.
type MetricsCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbErrorsTotal   *prometheus.CounterVec

	cacheHitsTotal   *prometheus.CounterVec
	cacheMissesTotal *prometheus.CounterVec

	viewEventsTotal   prometheus.Counter
	viewFlushFailures prometheus.Counter

	activeGoroutines prometheus.Gauge
	memoryUsage      prometheus.Gauge
}

// NewMetricsCollector registers and returns the collector set.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(128, 4, 8),
			},
			[]string{"method", "endpoint"},
		),
		dbQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		dbErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation", "table"},
		),
		cacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),
		cacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),
		viewEventsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "post_view_events_total",
				Help: "Deduplicated post view events accepted for counting",
			},
		),
		viewFlushFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "post_view_flush_failures_total",
				Help: "View counter increments that exhausted their retries",
			},
		),
		activeGoroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_goroutines",
				Help: "Number of active goroutines",
			},
		),
		memoryUsage: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "memory_usage_bytes",
				Help: "Current heap allocation in bytes",
			},
		),
	}
}

// RecordHTTPRequest records one served request.
func (mc *MetricsCollector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration, responseSize int) {
	mc.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	mc.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	if responseSize > 0 {
		mc.httpResponseSize.WithLabelValues(method, endpoint).Observe(float64(responseSize))
	}
}

// RecordDBQuery records one database operation.
func (mc *MetricsCollector) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	mc.dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		mc.dbErrorsTotal.WithLabelValues(operation, table).Inc()
	}
}

func (mc *MetricsCollector) RecordCacheHit(cache string) {
	mc.cacheHitsTotal.WithLabelValues(cache).Inc()
}

func (mc *MetricsCollector) RecordCacheMiss(cache string) {
	mc.cacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordViewEvent counts a deduplicated view accepted for async flushing.
func (mc *MetricsCollector) RecordViewEvent() {
	mc.viewEventsTotal.Inc()
}

// RecordViewFlushFailure counts a view increment dropped after max retries.
func (mc *MetricsCollector) RecordViewFlushFailure() {
	mc.viewFlushFailures.Inc()
}

func (mc *MetricsCollector) UpdateActiveGoroutines(count int) {
	mc.activeGoroutines.Set(float64(count))
}

func (mc *MetricsCollector) UpdateMemoryUsage(bytes int) {
	mc.memoryUsage.Set(float64(bytes))
}

var (
	globalCollector *MetricsCollector
	collectorOnce   sync.Once
)

// GetGlobalCollector returns the process-wide collector.
func GetGlobalCollector() *MetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = NewMetricsCollector()
	})
	return globalCollector
}
