package models

import (
	"math/rand"
	"slices"

	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/ts"
)

// Random is a reproducible random graph. Every state exists for the whole
// domain; every edge is enabled on one to three random sub-intervals.
type Random struct {
	States int
	Edges  int
	Seed   int64
}

func (m *Random) Name() string { return "random" }

func (m *Random) Build(sv *interval.Solver) (*System, error) {
	if m.States <= 0 {
		return nil, ErrSize
	}
	rng := rand.New(rand.NewSource(m.Seed))
	low, high := sv.Domain()

	b := ts.NewBuilder[int, interval.Set](sv)
	for s := 0; s < m.States; s++ {
		b.AddState(s, sv.Full())
	}
	for i := 0; i < m.Edges; i++ {
		from := rng.Intn(m.States)
		to := rng.Intn(m.States)
		b.AddEdge(from, to, randomColor(sv, rng, low, high))
	}
	return b.Build(), nil
}

func randomColor(sv *interval.Solver, rng *rand.Rand, low, high float64) interval.Set {
	n := 1 + rng.Intn(3)
	points := make([]float64, 0, 2*n)
	for len(points) < 2*n {
		p := low + rng.Float64()*(high-low)
		if p > low && !slices.Contains(points, p) {
			points = append(points, p)
		}
	}
	slices.Sort(points)
	color := sv.Empty()
	for i := 0; i < len(points); i += 2 {
		color = sv.Union(color, interval.Set{points[i], points[i+1]})
	}
	return color
}
