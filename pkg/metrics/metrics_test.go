package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveAdmission(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "court-booking")

	m.ObserveAdmission(OutcomeSuccess)
	m.ObserveAdmission(OutcomeConflict)
	m.ObserveAdmission(OutcomeConflict)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingAdmissionsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingAdmissionsTotal.WithLabelValues(OutcomeConflict)))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAdmission(OutcomeSuccess)
		m.ObserveCancellation(OutcomeRejected)
		m.ObserveHTTPRequest("GET", "/x", "200", 0.1)
		m.ObserveDBQuery("query", 0.1, nil)
	})
}
