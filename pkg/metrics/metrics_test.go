package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated("coloration")
		m.IncStatusChange("confirmed")
		m.IncSlotUpdate(true)
		m.IncSyncRun("date", nil)
		m.AddCleanup("obsolete_slots", 3)
		m.IncNotification("confirmation", errors.New("boom"))
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.IncNotification("confirmation", nil)
	m.IncNotification("confirmation", errors.New("boom"))
	m.IncNotification("confirmation", errors.New("boom"))
	m.AddCleanup("obsolete_slots", 4)
	m.ObserveHTTP("GET", "/api/v1/services", "200", 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("confirmation", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("confirmation", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CleanupRemoved.WithLabelValues("obsolete_slots")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/services", "200")))
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("b")
	})
}
