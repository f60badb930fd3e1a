package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the evaluation and registration metrics of a property
// graph session.
type Metrics struct {
	TermsEvaluated       prometheus.Counter
	PropertiesRegistered prometheus.Counter
	NamingCollisions     prometheus.Counter
	NormalizeDuration    prometheus.Histogram
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		TermsEvaluated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "domeq",
				Subsystem: "graph",
				Name:      "terms_evaluated_total",
				Help:      "Total number of equation terms evaluated",
			},
		),

		PropertiesRegistered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "domeq",
				Subsystem: "graph",
				Name:      "properties_registered_total",
				Help:      "Total number of properties registered",
			},
		),

		NamingCollisions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "domeq",
				Subsystem: "graph",
				Name:      "naming_collisions_total",
				Help:      "Total number of rejected evaluations due to naming collisions",
			},
		),

		NormalizeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "domeq",
				Subsystem: "equation",
				Name:      "normalize_duration_seconds",
				Help:      "Equation normalization duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// RecordTermEvaluated increments the evaluated term counter.
func (c *Metrics) RecordTermEvaluated() {
	c.TermsEvaluated.Inc()
}

// RecordPropertiesRegistered adds newly registered properties to the counter.
func (c *Metrics) RecordPropertiesRegistered(count int) {
	c.PropertiesRegistered.Add(float64(count))
}

// RecordNamingCollision increments the collision counter.
func (c *Metrics) RecordNamingCollision() {
	c.NamingCollisions.Inc()
}

// RecordNormalizeDuration records normalization time.
func (c *Metrics) RecordNormalizeDuration(duration time.Duration) {
	c.NormalizeDuration.Observe(duration.Seconds())
}
