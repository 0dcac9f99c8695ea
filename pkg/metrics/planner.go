package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// PlannerMetrics records advisory, inventory and cart activity. A nil receiver is a no-op.
type PlannerMetrics struct {
	advice         *prometheus.CounterVec
	generation     *prometheus.HistogramVec
	inventoryFails *prometheus.CounterVec
	cartOps        *prometheus.CounterVec
}

// NewPlannerMetrics registers the planner metrics on the provided registerer.
func NewPlannerMetrics(reg prometheus.Registerer) *PlannerMetrics {
	if reg == nil {
		return &PlannerMetrics{}
	}
	advice := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "space_planner_advice_total",
		Help: "Advisory requests by outcome.",
	}, []string{"outcome"})
	generation := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "space_planner_generation_duration_seconds",
		Help:    "Duration of text-generation calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
	inventoryFails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "space_planner_inventory_failures_total",
		Help: "Failed inventory fetches by reason.",
	}, []string{"reason"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "space_planner_cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(advice, generation, inventoryFails, cartOps)
	return &PlannerMetrics{
		advice:         advice,
		generation:     generation,
		inventoryFails: inventoryFails,
		cartOps:        cartOps,
	}
}

// IncAdvice counts one advisory response with the given outcome.
func (m *PlannerMetrics) IncAdvice(outcome string) {
	if m == nil || m.advice == nil {
		return
	}
	m.advice.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveGeneration records the duration of a generation call.
func (m *PlannerMetrics) ObserveGeneration(provider string, duration time.Duration) {
	if m == nil || m.generation == nil {
		return
	}
	m.generation.WithLabelValues(normalizeLabel(provider)).Observe(duration.Seconds())
}

// IncInventoryFailure counts a failed inventory fetch.
func (m *PlannerMetrics) IncInventoryFailure(reason string) {
	if m == nil || m.inventoryFails == nil {
		return
	}
	m.inventoryFails.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncCartOp counts a cart mutation.
func (m *PlannerMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
