package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuthMetrics provides Prometheus metrics for the authentication gate.
// All methods are nil-safe: calls on a nil *AuthMetrics are no-ops.
type AuthMetrics struct {
	// resolutionsTotal counts identity resolutions, labeled by the strategy
	// that produced the identity.
	resolutionsTotal *prometheus.CounterVec

	// outcomesTotal counts gate decisions, labeled by outcome
	// (authorized, unauthenticated, forbidden, unavailable).
	outcomesTotal *prometheus.CounterVec
}

// NewAuthMetrics creates and registers auth gate metrics with the given
// Prometheus registerer. If reg is nil, metrics are created but not registered
// (useful for testing).
//
// On re-registration (server restart), existing collectors from the registry
// are reused so that metrics continue to be exported correctly.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	m := &AuthMetrics{
		resolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskdeck",
			Subsystem: "auth",
			Name:      "resolutions_total",
			Help:      "Total number of identity resolutions by strategy",
		}, []string{"strategy"}),
		outcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskdeck",
			Subsystem: "auth",
			Name:      "gate_outcomes_total",
			Help:      "Total number of authentication gate outcomes",
		}, []string{"outcome"}),
	}

	if reg != nil {
		m.resolutionsTotal = registerOrReuse(reg, m.resolutionsTotal).(*prometheus.CounterVec)
		m.outcomesTotal = registerOrReuse(reg, m.outcomesTotal).(*prometheus.CounterVec)
	}

	return m
}

// RecordResolution increments the resolution counter for the given strategy.
func (m *AuthMetrics) RecordResolution(strategy string) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(strategy).Inc()
}

// RecordOutcome increments the gate outcome counter.
func (m *AuthMetrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.outcomesTotal.WithLabelValues(outcome).Inc()
}

// registerOrReuse registers a collector with the given registerer.
// If the collector is already registered, it returns the existing one
// from the registry so that metrics continue to be exported correctly
// on server restart. Panics on non-AlreadyRegisteredError failures.
func registerOrReuse(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
