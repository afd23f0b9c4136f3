// Package metrics exports dispatch observations as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/garyjia/approval-chain/internal/application/dispatcher"
)

// Recorder implements dispatcher.Recorder with Prometheus collectors
type Recorder struct {
	dispatches *prometheus.CounterVec
	steps      *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates the collectors under namespace and registers them with reg
func NewRecorder(namespace string, reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Dispatches by chain, policy, outcome and deciding handler.",
		}, []string{"chain", "policy", "outcome", "handler"}),
		steps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_steps",
			Help:      "Handlers visited per dispatch.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}, []string{"chain"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Wall time of a dispatch.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"chain"}),
	}

	for _, c := range []prometheus.Collector{r.dispatches, r.steps, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register dispatch metrics: %w", err)
		}
	}

	return r, nil
}

// RecordDispatch records one completed dispatch
func (r *Recorder) RecordDispatch(obs dispatcher.Observation) {
	handler := obs.Handler
	if handler == "" {
		handler = "exhausted"
	}
	r.dispatches.WithLabelValues(obs.Chain, obs.Policy.String(), obs.Outcome.String(), handler).Inc()
	r.steps.WithLabelValues(obs.Chain).Observe(float64(obs.Steps))
	r.duration.WithLabelValues(obs.Chain).Observe(obs.Duration.Seconds())
}
