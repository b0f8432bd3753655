// Package metrics exposes prometheus collectors fed by the solver's
// per-iteration observer hook.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"gsrelax/core"
)

const namespace = "gsrelax"

var (
	iterationsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "iterations_completed_total",
		Help:      "Number of full relaxation sweeps completed.",
	})
	residual = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "residual",
		Help:      "Global residual after the most recent iteration.",
	})
	converged = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "converged",
		Help:      "1 once the residual has reached the configured tolerance.",
	})
	iterationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "iteration_duration_seconds",
		Help:      "Wall time per full sweep, measured on worker 0.",
		Buckets:   prometheus.ExponentialBuckets(1e-5, 2, 16),
	})
)

var registerOnce sync.Once

// Register installs the solver collectors on the given registerer. Safe to
// call more than once; only the first call registers.
func Register(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(iterationsCompleted, residual, converged, iterationDuration)
	})
}

// Observer returns an IterationObserver that feeds the collectors.
func Observer() core.IterationObserver {
	return core.IterationObserverFunc(func(s core.IterationSnapshot) {
		iterationsCompleted.Inc()
		residual.Set(s.Residual)
		if s.Converged {
			converged.Set(1)
		}
		iterationDuration.Observe(s.Elapsed.Seconds())
	})
}
