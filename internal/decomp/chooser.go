package decomp

import (
	"fmt"
	"slices"

	"github.com/san-kum/paramsynth/internal/params"
	"github.com/san-kum/paramsynth/internal/ts"
)

// Registered pivot strategy names.
const (
	ChooserNaive                = "naive"
	ChooserVolume               = "volume"
	ChooserStructure            = "structure"
	ChooserStructureCardinality = "structure-cardinality"
)

// ChooserNames lists the registered pivot strategies.
func ChooserNames() []string {
	return []string{ChooserNaive, ChooserVolume, ChooserStructure, ChooserStructureCardinality}
}

// Chooser picks the pivot of an iteration.
//
// Choose must return a non-empty subset of a non-empty universe whose colors
// cover every color of the universe.
type Chooser[S comparable, T any] interface {
	Choose(universe params.StateSet[S, T]) params.StateSet[S, T]
}

// NewChooser builds the named strategy. model is only consulted by the
// structural strategies. order, when non-nil, fixes the scan order of
// candidate states and so makes ties deterministic.
func NewChooser[S comparable, T any](name string, sv params.Solver[T], model ts.TransitionSystem[S, T], order func(a, b S) int) (Chooser[S, T], error) {
	switch name {
	case "", ChooserNaive:
		return NewNaive(sv, order), nil
	case ChooserVolume:
		return NewVolume(sv, order), nil
	case ChooserStructure, ChooserStructureCardinality:
		if model == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoModel, name)
		}
		if name == ChooserStructure {
			return NewStructure(sv, model, order), nil
		}
		return NewStructureCardinality(sv, model, order), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownChooser, name)
	}
}

// picker returns a candidate state and the colors to take from it, or an
// empty color when no candidate overlaps uncovered.
type picker[S comparable, T any] func(universe params.StateSet[S, T], candidates []S, uncovered T) (S, T)

// cover takes colors from states chosen by pick until every color of the
// universe is covered.
func cover[S comparable, T any](sv params.Solver[T], universe params.StateSet[S, T], order func(a, b S) int, pick picker[S, T]) params.StateSet[S, T] {
	candidates := make([]S, 0, len(universe))
	for s := range universe {
		candidates = append(candidates, s)
	}
	if order != nil {
		slices.SortFunc(candidates, order)
	}

	result := make(params.StateSet[S, T])
	uncovered := params.Colors(sv, universe)
	for !sv.IsEmpty(uncovered) {
		s, take := pick(universe, candidates, uncovered)
		if sv.IsEmpty(take) {
			break
		}
		params.SetOrUnion(sv, result, s, take)
		uncovered = sv.Complement(take, uncovered)
	}
	return result
}

// Naive takes the first candidate that still has uncovered colors.
type Naive[S comparable, T any] struct {
	solver params.Solver[T]
	order  func(a, b S) int
}

func NewNaive[S comparable, T any](sv params.Solver[T], order func(a, b S) int) *Naive[S, T] {
	return &Naive[S, T]{solver: sv, order: order}
}

func (c *Naive[S, T]) Choose(universe params.StateSet[S, T]) params.StateSet[S, T] {
	sv := c.solver
	return cover(sv, universe, c.order, func(universe params.StateSet[S, T], candidates []S, uncovered T) (S, T) {
		for _, s := range candidates {
			take := sv.Intersect(universe[s], uncovered)
			if !sv.IsEmpty(take) {
				return s, take
			}
		}
		var zero S
		return zero, sv.Empty()
	})
}

// Volume takes the candidate with the largest uncovered volume.
type Volume[S comparable, T any] struct {
	solver params.Solver[T]
	order  func(a, b S) int
}

func NewVolume[S comparable, T any](sv params.Solver[T], order func(a, b S) int) *Volume[S, T] {
	return &Volume[S, T]{solver: sv, order: order}
}

func (c *Volume[S, T]) Choose(universe params.StateSet[S, T]) params.StateSet[S, T] {
	sv := c.solver
	return cover(sv, universe, c.order, func(universe params.StateSet[S, T], candidates []S, uncovered T) (S, T) {
		var best S
		bestTake := sv.Empty()
		bestVolume := -1.0
		for _, s := range candidates {
			take := sv.Intersect(universe[s], uncovered)
			if sv.IsEmpty(take) {
				continue
			}
			if v := sv.Volume(take); v > bestVolume {
				best, bestTake, bestVolume = s, take, v
			}
		}
		return best, bestTake
	})
}

// Structure prefers states with many more incoming than outgoing edges,
// which are likely to lie inside an attractor.
//
// Degree differences are computed once from the model. For every state,
// degrees[s][d] holds the colors under which s has exactly d more
// predecessors than successors, self-loops excluded.
type Structure[S comparable, T any] struct {
	solver  params.Solver[T]
	order   func(a, b S) int
	degrees map[S][]T

	// cardinality takes every uncovered color of the chosen state instead of
	// only those at its highest degree difference.
	cardinality bool
}

func NewStructure[S comparable, T any](sv params.Solver[T], model ts.TransitionSystem[S, T], order func(a, b S) int) *Structure[S, T] {
	return &Structure[S, T]{
		solver:  sv,
		order:   order,
		degrees: degreeDifferences(sv, model),
	}
}

func NewStructureCardinality[S comparable, T any](sv params.Solver[T], model ts.TransitionSystem[S, T], order func(a, b S) int) *Structure[S, T] {
	c := NewStructure(sv, model, order)
	c.cardinality = true
	return c
}

func (c *Structure[S, T]) Choose(universe params.StateSet[S, T]) params.StateSet[S, T] {
	sv := c.solver
	return cover(sv, universe, c.order, func(universe params.StateSet[S, T], candidates []S, uncovered T) (S, T) {
		var best S
		bestTake := sv.Empty()
		bestIndex := -2
		for _, s := range candidates {
			take := sv.Intersect(universe[s], uncovered)
			if sv.IsEmpty(take) {
				continue
			}
			if i := c.highestDifference(s, take); i > bestIndex {
				best, bestTake, bestIndex = s, take, i
			}
		}
		if c.cardinality || bestIndex < 0 {
			return best, bestTake
		}
		return best, sv.Intersect(bestTake, c.degrees[best][bestIndex])
	})
}

// highestDifference returns the largest d such that degrees[s][d] overlaps
// colors, or -1.
func (c *Structure[S, T]) highestDifference(s S, colors T) int {
	list := c.degrees[s]
	for i := len(list) - 1; i >= 0; i-- {
		if !c.solver.IsEmpty(c.solver.Intersect(list[i], colors)) {
			return i
		}
	}
	return -1
}

func degreeDifferences[S comparable, T any](sv params.Solver[T], model ts.TransitionSystem[S, T]) map[S][]T {
	result := make(map[S][]T, len(model.States()))
	for s := range model.States() {
		successors := NewCount(sv)
		for _, t := range model.Successors(s) {
			if t != s {
				successors.Push(model.EdgeParams(s, t))
			}
		}
		predecessors := NewCount(sv)
		for _, t := range model.Predecessors(s) {
			if t != s {
				predecessors.Push(model.EdgeParams(t, s))
			}
		}

		var list []T
		for p := 0; p < predecessors.Len(); p++ {
			for q := 0; q <= p && q < successors.Len(); q++ {
				k := sv.Intersect(predecessors.Level(p), successors.Level(q))
				if sv.IsEmpty(k) {
					continue
				}
				for len(list) <= p-q {
					list = append(list, sv.Empty())
				}
				list[p-q] = sv.Union(list[p-q], k)
			}
		}
		result[s] = list
	}
	return result
}
