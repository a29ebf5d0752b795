// Package metrics exposes Prometheus collectors for the solver, kept
// free of any dependency on the network package beyond its exported
// ProgressFunc and error types so internal/network never has to import
// client_golang itself.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors holds every metric the solver reports. Construct one with
// NewCollectors and register it with a Prometheus registry via
// promauto (already done for you) or prometheus.Register.
type Collectors struct {
	SolveTotal    *prometheus.CounterVec
	SolveDuration prometheus.Histogram
	Iterations    prometheus.Histogram
	LastScore     prometheus.Gauge
}

// Outcome labels a completed solve for SolveTotal.
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeInfeasible Outcome = "infeasible"
	OutcomeError      Outcome = "error"
)

// NewCollectors registers a fresh set of collectors under the given
// namespace/subsystem and returns them. Call it once per process; a
// second call with the same namespace/subsystem against the default
// registry will panic on duplicate registration, matching
// promauto's behavior elsewhere in this codebase.
func NewCollectors(namespace, subsystem string) *Collectors {
	return &Collectors{
		SolveTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_total",
				Help:      "Total number of Solve calls by outcome",
			},
			[]string{"outcome"},
		),
		SolveDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of Solve calls",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Iterations: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_iterations",
				Help:      "Number of augmenting-path iterations per Solve call",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		LastScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_solve_score",
				Help:      "Total assignment score from the most recent successful solve",
			},
		),
	}
}

// ObserveSolve records the outcome, duration, and iteration count of one
// Solve call. iterations and score are only meaningful when outcome is
// OutcomeSuccess; callers pass 0 for either otherwise.
func (c *Collectors) ObserveSolve(outcome Outcome, duration time.Duration, iterations int, score float64) {
	c.SolveTotal.WithLabelValues(string(outcome)).Inc()
	c.SolveDuration.Observe(duration.Seconds())
	if outcome == OutcomeSuccess {
		c.Iterations.Observe(float64(iterations))
		c.LastScore.Set(score)
	}
}

// ProgressAdapter turns a fractional progress callback (the shape
// internal/network.ProgressFunc takes) into iteration counting, so a
// caller can feed network.SolveOptions.WithProgress straight into the
// collectors without internal/network ever importing this package.
type ProgressAdapter struct {
	numWorkers int
	iterations int
}

// NewProgressAdapter builds an adapter for a solve over numWorkers
// workers; fraction reports iterations/numWorkers on each call.
func NewProgressAdapter(numWorkers int) *ProgressAdapter {
	return &ProgressAdapter{numWorkers: numWorkers}
}

// Observe is shaped to match network.ProgressFunc: func(fraction float64).
// It recovers the raw iteration count from the fraction it's handed so
// the caller can report it to Collectors.ObserveSolve once the solve
// completes.
func (p *ProgressAdapter) Observe(fraction float64) {
	if p.numWorkers <= 0 {
		return
	}
	p.iterations = int(fraction*float64(p.numWorkers) + 0.5)
}

// Iterations returns the most recently observed iteration count.
func (p *ProgressAdapter) Iterations() int {
	return p.iterations
}
