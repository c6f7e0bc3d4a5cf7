package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("booking-engine", prometheus.NewRegistry())

	m.ObserveDecision("refund", "rate_limited")
	m.ObserveDecision("refund", "rate_limited")
	m.ObserveDecision("create", "accepted")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("refund", "rate_limited")))

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 10*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/bookings", "201")))

	m.ObserveQuery("select", time.Millisecond, nil)
	m.ObserveQuery("update", time.Millisecond, errors.New("deadlock"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueries.WithLabelValues("update", "error")))
}
