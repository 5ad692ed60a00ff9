package decomp

import (
	"cmp"
	"slices"
	"sync"

	"github.com/san-kum/paramsynth/internal/params"
)

// Component is one discovered attractor: its states and the colors for which
// it is terminal.
type Component[S comparable, T any] struct {
	States params.StateSet[S, T]
	Tag    T
}

// Result is the output of a decomposition run.
type Result[S comparable, T any] struct {
	// Components lists the attractors. Records over the same states with
	// disjoint tags are merged into one.
	Components []Component[S, T]

	// Counts[i] holds the colors that have exactly i+1 attractors.
	Counts []T

	// Levels[i] holds the attractor states for the colors in Counts[i].
	Levels []params.StateSet[S, T]

	Iterations int
}

// Store accumulates components found by concurrent branches.
type Store[S comparable, T any] struct {
	mu      sync.Mutex
	solver  params.Solver[T]
	union   params.StateSet[S, T]
	records []Component[S, T]
}

func NewStore[S comparable, T any](sv params.Solver[T]) *Store[S, T] {
	return &Store[S, T]{
		solver: sv,
		union:  make(params.StateSet[S, T]),
	}
}

// Push records labeling, restricted to tag, as an attractor. It returns the
// number of states recorded, 0 when the restriction is empty.
func (st *Store[S, T]) Push(labeling params.StateSet[S, T], tag T) int {
	bounded := params.Bound(st.solver, labeling, tag)
	if len(bounded) == 0 {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for s, v := range bounded {
		params.SetOrUnion(st.solver, st.union, s, v)
	}
	st.records = append(st.records, Component[S, T]{States: bounded, Tag: tag})
	return len(bounded)
}

// Finalize splits the recorded states by the attractor counts in count and
// returns the merged component list, largest tag first.
func (st *Store[S, T]) Finalize(count *Count[T]) *Result[S, T] {
	st.mu.Lock()
	defer st.mu.Unlock()

	sv := st.solver
	counts := count.Levels()
	levels := make([]params.StateSet[S, T], len(counts))
	for i, colors := range counts {
		levels[i] = params.Bound(sv, st.union, colors)
	}

	components := mergeBySupport(sv, st.records)
	slices.SortStableFunc(components, func(a, b Component[S, T]) int {
		return cmp.Compare(sv.Volume(b.Tag), sv.Volume(a.Tag))
	})

	return &Result[S, T]{
		Components: components,
		Counts:     counts,
		Levels:     levels,
	}
}

func mergeBySupport[S comparable, T any](sv params.Solver[T], records []Component[S, T]) []Component[S, T] {
	var merged []Component[S, T]
	for _, r := range records {
		i := slices.IndexFunc(merged, func(m Component[S, T]) bool {
			return sameSupport(m.States, r.States) && sv.IsEmpty(sv.Intersect(m.Tag, r.Tag))
		})
		if i < 0 {
			merged = append(merged, Component[S, T]{States: r.States.Clone(), Tag: r.Tag})
			continue
		}
		for s, v := range r.States {
			params.SetOrUnion(sv, merged[i].States, s, v)
		}
		merged[i].Tag = sv.Union(merged[i].Tag, r.Tag)
	}
	return merged
}

func sameSupport[S comparable, T any](a, b params.StateSet[S, T]) bool {
	if len(a) != len(b) {
		return false
	}
	for s := range a {
		if _, ok := b[s]; !ok {
			return false
		}
	}
	return true
}
