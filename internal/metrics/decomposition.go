// Package metrics exports decomposition progress as Prometheus metrics.
//
// # Thread Safety
//
// All methods are safe for concurrent use; a Decomposition can observe a
// parallel run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/san-kum/paramsynth/internal/decomp"
)

const namespace = "paramsynth"

var _ decomp.Observer = (*Decomposition)(nil)

// Decomposition records the iterations, branches and components of
// decomposition runs.
type Decomposition struct {
	// Iterations counts processed frames.
	Iterations prometheus.Counter

	// Components counts attractor records pushed to the store.
	Components prometheus.Counter

	// Branches counts spawned child searches.
	// Labels: branch (undecided, unrelated)
	Branches *prometheus.CounterVec

	// ForwardStates is the size of each forward set.
	ForwardStates prometheus.Histogram

	// IterationSeconds is the wall time of each iteration.
	IterationSeconds prometheus.Histogram

	// ComponentVolume is the parameter volume of each component tag.
	ComponentVolume prometheus.Histogram

	// Attractors is the largest attractor count of the last finished run.
	Attractors prometheus.Gauge
}

// NewDecomposition registers the collectors on reg.
func NewDecomposition(reg prometheus.Registerer) *Decomposition {
	f := promauto.With(reg)
	return &Decomposition{
		Iterations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decomp",
			Name:      "iterations_total",
			Help:      "Processed decomposition iterations",
		}),
		Components: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decomp",
			Name:      "components_total",
			Help:      "Attractor records found",
		}),
		Branches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decomp",
			Name:      "branches_total",
			Help:      "Child searches spawned, by branch kind",
		}, []string{"branch"}),
		ForwardStates: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "decomp",
			Name:      "forward_states",
			Help:      "States in the forward set of an iteration",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		IterationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "decomp",
			Name:      "iteration_seconds",
			Help:      "Wall time of one iteration",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		ComponentVolume: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "decomp",
			Name:      "component_volume",
			Help:      "Parameter volume of a component tag",
			Buckets:   prometheus.ExponentialBuckets(1e-3, 10, 8),
		}),
		Attractors: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "decomp",
			Name:      "max_attractors",
			Help:      "Largest number of attractors for any color in the last run",
		}),
	}
}

func (m *Decomposition) OnIteration(stats decomp.IterationStats) {
	m.Iterations.Inc()
	m.ForwardStates.Observe(float64(stats.Forward))
	m.IterationSeconds.Observe(stats.Elapsed.Seconds())
}

func (m *Decomposition) OnComponent(states int, volume float64) {
	m.Components.Inc()
	m.ComponentVolume.Observe(volume)
}

func (m *Decomposition) OnBranch(b decomp.Branch) {
	m.Branches.WithLabelValues(b.String()).Inc()
}

// SetAttractors records the attractor count of a finished run.
func (m *Decomposition) SetAttractors(n int) {
	m.Attractors.Set(float64(n))
}
