package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	t.Helper()
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)
	require.NotNil(t, m)

	assert.NotNil(t, m.SourceRequestsTotal)
	assert.NotNil(t, m.SourceRetriesTotal)
	assert.NotNil(t, m.CacheHitsTotal)
	assert.NotNil(t, m.CacheSweptTotal)
	assert.NotNil(t, m.QueryResolutionsTotal)
	assert.NotNil(t, m.QueriesInFlight)
	assert.NotNil(t, m.TermComputationsTotal)
	assert.NotNil(t, m.HTTPRequestsTotal)
}

func TestRecordSourceRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordSourceRequest(m, "uspto", "search", nil, 120*time.Millisecond)
	RecordSourceRequest(m, "uspto", "search", errors.New("503"), time.Second)
	RecordSourceRetry(m, "uspto", "search")

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_source_requests_total{backend="uspto",operation="search",status="success"} 1`)
	assert.Contains(t, out, `test_unit_source_requests_total{backend="uspto",operation="search",status="failure"} 1`)
	assert.Contains(t, out, `test_unit_source_retries_total{backend="uspto",operation="search"} 1`)
}

func TestRecordCacheAccess(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordCacheAccess(m, "disk", true)
	RecordCacheAccess(m, "disk", true)
	RecordCacheAccess(m, "disk", false)
	RecordCacheError(m, "disk", "get")
	RecordCacheSweep(m, "disk", 4)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_cache_hits_total{cache="disk"} 2`)
	assert.Contains(t, out, `test_unit_cache_misses_total{cache="disk"} 1`)
	assert.Contains(t, out, `test_unit_cache_errors_total{cache="disk",operation="get"} 1`)
	assert.Contains(t, out, `test_unit_cache_swept_total{cache="disk"} 4`)
}

func TestRecordQueryResolutionAndTerm(t *testing.T) {
	m, c := newTestAppMetrics(t)

	timer := StartQueryResolution(m)
	assert.Contains(t, scrapeMetrics(t, c), "test_unit_queries_in_flight 1")
	d := RecordQueryResolution(m, timer, "partial", 7)
	assert.GreaterOrEqual(t, d, time.Duration(0))
	RecordTermComputation(m, nil, true)
	RecordTermComputation(m, errors.New("no filing date"), false)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_query_resolutions_total{outcome="partial"} 1`)
	assert.Contains(t, out, "test_unit_query_records_resolved_sum 7")
	assert.Contains(t, out, "test_unit_queries_in_flight 0")
	assert.Contains(t, out, "test_unit_query_duration_seconds_count 1")
	assert.Contains(t, out, `test_unit_term_computations_total{outcome="success",root="self"} 1`)
	assert.Contains(t, out, `test_unit_term_computations_total{outcome="failure",root="parent"} 1`)
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)

	RecordHTTPRequest(m, "GET", "/api/v1/applications/:id", 404, 5*time.Millisecond)

	assert.Contains(t, scrapeMetrics(t, c),
		`test_unit_http_requests_total{method="GET",path="/api/v1/applications/:id",status_code="404"} 1`)
}

func TestHelpers_NilMetricsAreNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSourceRequest(nil, "uspto", "search", nil, 0)
		RecordSourceRetry(nil, "uspto", "search")
		RecordCacheAccess(nil, "disk", true)
		RecordCacheError(nil, "disk", "put")
		RecordCacheSweep(nil, "disk", 1)
		RecordQueryResolution(nil, StartQueryResolution(nil), "complete", 1)
		RecordTermComputation(nil, nil, true)
		RecordHTTPRequest(nil, "GET", "/", 200, 0)
	})
}

//Personal.AI order the ending
