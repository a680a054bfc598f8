package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("parking", reg)

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 15*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusConflict, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "409")))
}

func TestObserveDBQueryCountsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("parking", reg)

	m.ObserveDBQuery("exec", time.Millisecond, nil)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("connection reset"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/metrics", http.StatusOK, time.Millisecond)
		m.ObserveDBQuery("query", time.Millisecond, nil)
		_ = m.RegisterDBStats(nil, "parking")
	})
}
