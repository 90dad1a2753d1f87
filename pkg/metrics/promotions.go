package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromotionMetrics records promotion validation outcomes and remote
// lookup latency.
type PromotionMetrics struct {
	outcomes *prometheus.CounterVec
	lookup   *prometheus.HistogramVec
}

// NewPromotionMetrics registers the promotion metrics on the provided registerer.
func NewPromotionMetrics(reg prometheus.Registerer) *PromotionMetrics {
	if reg == nil {
		return &PromotionMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotion_validation_total",
		Help: "Promotion code validations by outcome.",
	}, []string{"outcome"})
	lookup := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promotion_lookup_duration_seconds",
		Help:    "Duration of remote promotion lookups in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	reg.MustRegister(outcomes, lookup)
	return &PromotionMetrics{
		outcomes: outcomes,
		lookup:   lookup,
	}
}

// IncOutcome increments the counter for the named validation outcome.
func (p *PromotionMetrics) IncOutcome(outcome string) {
	if p == nil || p.outcomes == nil {
		return
	}
	p.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveLookup records the duration of one remote lookup.
func (p *PromotionMetrics) ObserveLookup(result string, duration time.Duration) {
	if p == nil || p.lookup == nil {
		return
	}
	p.lookup.WithLabelValues(normalizeLabel(result)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
