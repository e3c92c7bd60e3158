// Package metrics holds the Prometheus collectors for registry queries.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes used as the "outcome" label.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
)

// Metrics provides observability for the query layer.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	QueriesTotal   *prometheus.CounterVec
	QueryDuration  *prometheus.HistogramVec
	QueryResults   *prometheus.HistogramVec
	LookupsTotal   *prometheus.CounterVec
	DatasetRecords prometheus.Gauge

	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mockid_queries_total",
			Help: "Total queries by operation and result (ok, error)",
		}, []string{"operation", "result"}),

		QueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockid_query_duration_seconds",
			Help:    "Duration of query operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		QueryResults: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockid_query_results",
			Help:    "Number of records returned by search and sample",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}, []string{"operation"}),

		LookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mockid_lookups_total",
			Help: "Single-record lookups by outcome",
		}, []string{"outcome"}),

		DatasetRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "mockid_dataset_records",
			Help: "Number of records loaded into the store",
		}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mockid_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		}, []string{"method", "route", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockid_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveQuery records one query's duration and result.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveQuery(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.QueriesTotal.WithLabelValues(operation, result).Inc()
	m.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveResults records how many records a query returned.
func (m *Metrics) ObserveResults(operation string, n int) {
	if m == nil {
		return
	}
	m.QueryResults.WithLabelValues(operation).Observe(float64(n))
}

// IncrementLookup records a lookup outcome.
func (m *Metrics) IncrementLookup(outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
}

// SetDatasetRecords records the loaded record count.
func (m *Metrics) SetDatasetRecords(n int) {
	if m == nil {
		return
	}
	m.DatasetRecords.Set(float64(n))
}

// ObserveHTTP records one served request. route must be a route pattern,
// not a raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
