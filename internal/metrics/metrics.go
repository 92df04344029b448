package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Callback outcomes.
const (
	CallbackApplied    = "applied"
	CallbackIrrelevant = "irrelevant"
	CallbackStale      = "stale"
)

// Write outcomes.
const (
	WriteOK      = "ok"
	WriteInvalid = "invalid"
	WriteFailed  = "failed"
)

// Collectors groups the light table's sync metrics. A nil *Collectors is
// valid and records nothing.
type Collectors struct {
	Rebuilds      prometheus.Counter
	Subscriptions prometheus.Gauge
	Callbacks     *prometheus.CounterVec
	Writes        *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lightman_rebuilds_total",
			Help: "Number of full table rebuilds.",
		}),
		Subscriptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lightman_subscriptions",
			Help: "Change subscriptions held by the current table.",
		}),
		Callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightman_sync_callbacks_total",
			Help: "External change callbacks handled by sync cells, by outcome.",
		}, []string{"result"}),
		Writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightman_attribute_writes_total",
			Help: "UI edits written to lights, by outcome.",
		}, []string{"attribute", "result"}),
	}
	if reg != nil {
		reg.MustRegister(c.Rebuilds, c.Subscriptions, c.Callbacks, c.Writes)
	}
	return c
}

// ObserveRebuild records a rebuild that left subs subscriptions.
func (c *Collectors) ObserveRebuild(subs int) {
	if c == nil {
		return
	}
	c.Rebuilds.Inc()
	c.Subscriptions.Set(float64(subs))
}

// ObserveSubscriptions records the live subscription count.
func (c *Collectors) ObserveSubscriptions(subs int) {
	if c == nil {
		return
	}
	c.Subscriptions.Set(float64(subs))
}

// ObserveCallback records one sync cell callback outcome.
func (c *Collectors) ObserveCallback(result string) {
	if c == nil {
		return
	}
	c.Callbacks.WithLabelValues(result).Inc()
}

// ObserveWrite records one UI edit outcome.
func (c *Collectors) ObserveWrite(attribute, result string) {
	if c == nil {
		return
	}
	c.Writes.WithLabelValues(attribute, result).Inc()
}

// Handler serves the metrics in g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
