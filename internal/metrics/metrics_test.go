package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveQuery("search", time.Now(), nil)
	m.ObserveQuery("search", time.Now(), errors.New("bad"))
	m.IncrementLookup(OutcomeFound)
	m.IncrementLookup(OutcomeFound)
	m.IncrementLookup(OutcomeInvalid)
	m.SetDatasetRecords(42)
	m.ObserveHTTP("GET", "/api/lookup", 404, time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("search", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("search", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.DatasetRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/lookup", "404")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuery("stats", time.Now(), nil)
		m.ObserveResults("sample", 3)
		m.IncrementLookup(OutcomeNotFound)
		m.SetDatasetRecords(1)
		m.ObserveHTTP("GET", "/", 200, time.Now())
	})
}
