package models

import (
	"math"

	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/ts"
)

// Polynomial describes dx/dt = a(x) + p*b(x), with a and b polynomials given
// by their coefficients from the constant term up.
//
// The abstraction has one state per interval between consecutive
// thresholds. The sign of the derivative at each threshold, as a set of
// parameter values, decides which facets flow in or out; a state moves up
// when the flow leaves through its upper threshold, down when it leaves
// through its lower one, and keeps a self-loop unless the flow passes
// straight through it.
type Polynomial struct {
	Coeffs      []float64
	ParamCoeffs []float64
	Thresholds  []float64
}

func (m *Polynomial) Name() string { return "polynomial" }

// Derivative evaluates dx/dt at x for parameter value p.
func (m *Polynomial) Derivative(x, p float64) float64 {
	return horner(m.Coeffs, x) + p*horner(m.ParamCoeffs, x)
}

func (m *Polynomial) Build(sv *interval.Solver) (*System, error) {
	th := m.Thresholds
	if len(th) < 2 {
		return nil, ErrThresholds
	}
	for i := 1; i < len(th); i++ {
		if th[i] <= th[i-1] {
			return nil, ErrThresholds
		}
	}

	// Colors with a positive and a negative derivative at each threshold.
	positive := make([]interval.Set, len(th))
	negative := make([]interval.Set, len(th))
	for v, x := range th {
		positive[v] = m.vertexColors(sv, x, true)
		negative[v] = m.vertexColors(sv, x, false)
	}

	full := sv.Full()
	cells := len(th) - 1
	b := ts.NewBuilder[int, interval.Set](sv)
	for s := 0; s < cells; s++ {
		b.AddState(s, full)
	}
	for s := 0; s < cells; s++ {
		// Upper facet is threshold s+1, lower facet is threshold s.
		posOut := positive[s+1]
		posIn := negative[s+1]
		negOut := negative[s]
		negIn := positive[s]

		selfLoop := full
		if s+1 < cells {
			b.AddEdge(s, s+1, posOut)
			through := sv.Intersect(negIn, sv.Intersect(posOut, sv.Complement(sv.Union(negOut, posIn), full)))
			selfLoop = sv.Intersect(selfLoop, sv.Complement(through, full))
		}
		if s > 0 {
			b.AddEdge(s, s-1, negOut)
			through := sv.Intersect(negOut, sv.Intersect(posIn, sv.Complement(sv.Union(negIn, posOut), full)))
			selfLoop = sv.Intersect(selfLoop, sv.Complement(through, full))
		}
		b.AddEdge(s, s, selfLoop)
	}
	return b.Build(), nil
}

// vertexColors returns the parameter values for which the derivative at x
// is strictly positive (or strictly negative).
func (m *Polynomial) vertexColors(sv *interval.Solver, x float64, positive bool) interval.Set {
	a := horner(m.Coeffs, x)
	b := horner(m.ParamCoeffs, x)
	if b == 0 {
		if (positive && a > 0) || (!positive && a < 0) {
			return sv.Full()
		}
		return sv.Empty()
	}

	// a + p*b > 0 <=> p > -a/b, flipped when b < 0.
	if b < 0 {
		positive = !positive
	}
	low, high := sv.Domain()
	split := math.Min(high, math.Max(low, -a/b))
	if positive {
		low = split
	} else {
		high = split
	}
	if low >= high {
		return sv.Empty()
	}
	return interval.Set{low, high}
}

func horner(coeffs []float64, x float64) float64 {
	result := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*x + coeffs[i]
	}
	return result
}
