package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the metric families recorded by the patent client.
// A nil *AppMetrics is valid: every Record* helper is a no-op on nil.
type AppMetrics struct {
	// Record store (upstream backends)
	SourceRequestsTotal   CounterVec
	SourceRequestDuration HistogramVec
	SourceRetriesTotal    CounterVec

	// Cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
	CacheErrorsTotal CounterVec
	CacheSweptTotal  CounterVec

	// Query engine
	QueryResolutionsTotal CounterVec
	QueriesInFlight       GaugeVec
	QueryDuration         HistogramVec
	QueryRecordsResolved  HistogramVec

	// Term engine
	TermComputationsTotal CounterVec

	// HTTP API
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultSourceDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300, 600}
	DefaultRecordCountBuckets    = []float64{0, 1, 5, 10, 25, 50, 100, 500, 1000}
)

// NewAppMetrics registers all metric families on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.SourceRequestsTotal = collector.RegisterCounter("source_requests_total", "Upstream record store requests", "backend", "operation", "status")
	m.SourceRequestDuration = collector.RegisterHistogram("source_request_duration_seconds", "Upstream request duration including retries", DefaultSourceDurationBuckets, "backend", "operation")
	m.SourceRetriesTotal = collector.RegisterCounter("source_retries_total", "Upstream request retries", "backend", "operation")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.CacheErrorsTotal = collector.RegisterCounter("cache_errors_total", "Cache errors degraded to misses", "cache", "operation")
	m.CacheSweptTotal = collector.RegisterCounter("cache_swept_total", "Cache entries removed by retention sweeps", "cache")

	m.QueryResolutionsTotal = collector.RegisterCounter("query_resolutions_total", "Query resolutions by outcome", "outcome")
	m.QueriesInFlight = collector.RegisterGauge("queries_in_flight", "Query resolutions currently running")
	m.QueryDuration = collector.RegisterHistogram("query_duration_seconds", "Query resolution duration", DefaultSourceDurationBuckets)
	m.QueryRecordsResolved = collector.RegisterHistogram("query_records_resolved", "Distinct records per resolution", DefaultRecordCountBuckets)

	m.TermComputationsTotal = collector.RegisterCounter("term_computations_total", "Expiration computations by outcome", "outcome", "root")

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")

	return m
}

// Helpers

// RecordSourceRequest records one logical upstream call (all attempts).
func RecordSourceRequest(metrics *AppMetrics, backend, operation string, err error, duration time.Duration) {
	if metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.SourceRequestsTotal.WithLabelValues(backend, operation, status).Inc()
	metrics.SourceRequestDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// RecordSourceRetry counts one retry attempt.
func RecordSourceRetry(metrics *AppMetrics, backend, operation string) {
	if metrics == nil {
		return
	}
	metrics.SourceRetriesTotal.WithLabelValues(backend, operation).Inc()
}

// RecordCacheAccess counts a hit or a miss.
func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if metrics == nil {
		return
	}
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordCacheError counts a cache failure that was degraded.
func RecordCacheError(metrics *AppMetrics, cache, operation string) {
	if metrics == nil {
		return
	}
	metrics.CacheErrorsTotal.WithLabelValues(cache, operation).Inc()
}

// RecordCacheSweep counts removed entries.
func RecordCacheSweep(metrics *AppMetrics, cache string, removed int) {
	if metrics == nil {
		return
	}
	metrics.CacheSweptTotal.WithLabelValues(cache).Add(float64(removed))
}

// StartQueryResolution marks a resolution as running and returns the timer
// that RecordQueryResolution closes.
func StartQueryResolution(metrics *AppMetrics) *Timer {
	if metrics == nil {
		return NewTimer(nil)
	}
	metrics.QueriesInFlight.WithLabelValues().Inc()
	return NewTimer(metrics.QueryDuration.WithLabelValues())
}

// RecordQueryResolution ends a resolution started by StartQueryResolution
// and returns its duration.  outcome is one of complete, partial, failed,
// canceled.
func RecordQueryResolution(metrics *AppMetrics, timer *Timer, outcome string, records int) time.Duration {
	d := timer.ObserveDuration()
	if metrics == nil {
		return d
	}
	metrics.QueriesInFlight.WithLabelValues().Dec()
	metrics.QueryResolutionsTotal.WithLabelValues(outcome).Inc()
	metrics.QueryRecordsResolved.WithLabelValues().Observe(float64(records))
	return d
}

// RecordTermComputation records an expiration computation.
func RecordTermComputation(metrics *AppMetrics, err error, selfRooted bool) {
	if metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	root := "parent"
	if selfRooted {
		root = "self"
	}
	metrics.TermComputationsTotal.WithLabelValues(outcome, root).Inc()
}

// RecordHTTPRequest records a served API request.
func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

//Personal.AI order the ending
