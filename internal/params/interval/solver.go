package interval

import (
	"math"

	"github.com/san-kum/paramsynth/internal/params"
)

var _ params.Solver[Set] = (*Solver)(nil)

// Solver is the interval algebra over the domain (low, high).
type Solver struct {
	full    Set
	empty   Set
	scratch *scratchPool
}

// NewSolver returns a solver whose full set is the single interval
// (low, high). The caller guarantees low < high and both are finite.
func NewSolver(low, high float64) *Solver {
	return &Solver{
		full:    Set{low, high},
		empty:   Set{},
		scratch: newScratchPool(),
	}
}

func (sv *Solver) Full() Set  { return sv.full }
func (sv *Solver) Empty() Set { return sv.empty }

// Domain returns the bounds of the full set.
func (sv *Solver) Domain() (low, high float64) {
	return sv.full[0], sv.full[1]
}

func (sv *Solver) Intersect(a, b Set) Set {
	if len(a) == 0 || len(b) == 0 {
		return sv.empty
	}
	w := sv.scratch.Get()
	defer sv.scratch.Put(w)
	return w.Intersect(a, b)
}

func (sv *Solver) Union(a, b Set) Set {
	w := sv.scratch.Get()
	defer sv.scratch.Put(w)
	return w.Union(a, b)
}

func (sv *Solver) Complement(x, against Set) Set {
	w := sv.scratch.Get()
	defer sv.scratch.Put(w)
	return w.Complement(x, against)
}

// Encloses reports whether every interval of subset lies inside a single
// interval of x. The intervals of x are disjoint, so an interval of subset
// that straddles a gap of x is never enclosed.
func (sv *Solver) Encloses(x, subset Set) bool {
	if len(subset) == 0 {
		return true
	}
	if len(x) == 0 {
		return false
	}
	iX, iS := 0, 0
	for iX < len(x) && iS < len(subset) {
		xL, xH := x[iX], x[iX+1]
		sL, sH := subset[iS], subset[iS+1]
		rL := math.Max(xL, sL)
		rH := math.Min(xH, sH)
		switch {
		case rL == sL && rH == sH:
			iS += 2
		case rL < rH:
			return false
		case sH <= xL:
			return false
		default:
			iX += 2
		}
	}
	return iS >= len(subset)
}

func (sv *Solver) IsEmpty(x Set) bool { return len(x) == 0 }

func (sv *Solver) Volume(x Set) float64 {
	result := 0.0
	for i := 0; i < len(x); i += 2 {
		result += x[i+1] - x[i]
	}
	return result
}

func (sv *Solver) Print(x Set) string { return x.String() }

// Valid reports whether x is well formed: even length, finite bounds, every
// interval non-empty and strictly after the previous one.
func (sv *Solver) Valid(x Set) bool {
	if len(x)%2 != 0 {
		return false
	}
	prev := math.Inf(-1)
	for i := 0; i < len(x); i += 2 {
		l, h := x[i], x[i+1]
		if math.IsInf(l, 0) || math.IsInf(h, 0) || math.IsNaN(l) || math.IsNaN(h) {
			return false
		}
		if l >= h || l <= prev {
			return false
		}
		prev = h
	}
	return true
}

// Sample returns the midpoint of every interval in x.
func (sv *Solver) Sample(x Set) []float64 {
	points := make([]float64, 0, x.Len())
	for i := 0; i < len(x); i += 2 {
		points = append(points, (x[i]+x[i+1])/2)
	}
	return points
}
