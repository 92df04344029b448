package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRebuildSetsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveRebuild(12)
	c.ObserveRebuild(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Rebuilds))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.Subscriptions))
}

func TestObserveCallbackAndWriteByLabel(t *testing.T) {
	c := New(prometheus.NewRegistry())
	c.ObserveCallback(CallbackApplied)
	c.ObserveCallback(CallbackStale)
	c.ObserveCallback(CallbackStale)
	c.ObserveWrite("exposure", WriteInvalid)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Callbacks.WithLabelValues(CallbackStale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Writes.WithLabelValues("exposure", WriteInvalid)))
}

func TestNilCollectorsIsNoop(t *testing.T) {
	var c *Collectors
	assert.NotPanics(t, func() {
		c.ObserveRebuild(1)
		c.ObserveSubscriptions(1)
		c.ObserveCallback(CallbackApplied)
		c.ObserveWrite("exposure", WriteOK)
	})
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	c.ObserveRebuild(3)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "lightman_rebuilds_total 1"))
}
