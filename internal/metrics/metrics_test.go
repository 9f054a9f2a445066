package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBooking(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveBooking("created")
	m.ObserveBooking("created")
	m.ObserveBooking("conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Bookings.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bookings.WithLabelValues("conflict")))
}
