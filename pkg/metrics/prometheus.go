package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	outcomes   *prometheus.CounterVec
	upstream   *prometheus.CounterVec
	sinkErrors *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// New creates a recorder registered on reg (nil uses the default registerer).
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		outcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churn_relay_outcomes_total",
				Help: "Relay calls by outcome",
			},
			[]string{"outcome"},
		),
		upstream: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churn_relay_upstream_responses_total",
				Help: "Upstream responses by HTTP status",
			},
			[]string{"status"},
		),
		sinkErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "churn_relay_sink_errors_total",
				Help: "Failures recording relay outcomes",
			},
			[]string{"backend"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "churn_relay_upstream_duration_seconds",
				Help:    "Duration of upstream prediction calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}
}

// RecordOutcome counts a relay outcome and observes its upstream latency.
func (r *Recorder) RecordOutcome(outcome string, seconds float64) {
	r.outcomes.WithLabelValues(outcome).Inc()
	r.latency.WithLabelValues(outcome).Observe(seconds)
}

// RecordUpstreamStatus counts an upstream HTTP status code.
func (r *Recorder) RecordUpstreamStatus(status string) {
	r.upstream.WithLabelValues(status).Inc()
}

// RecordSinkError counts a failed outcome write.
func (r *Recorder) RecordSinkError(backend string) {
	r.sinkErrors.WithLabelValues(backend).Inc()
}
