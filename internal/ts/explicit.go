package ts

import (
	"maps"

	"github.com/san-kum/paramsynth/internal/params"
)

var _ TransitionSystem[int, bool] = (*Explicit[int, bool])(nil)

// Explicit is an adjacency-list transition system.
type Explicit[S comparable, T any] struct {
	solver       params.Solver[T]
	states       params.StateSet[S, T]
	edges        map[Edge[S]]T
	successors   map[S][]S
	predecessors map[S][]S
}

// NewExplicit wraps the given maps without copying them. The caller hands
// over ownership and must not modify them afterwards.
func NewExplicit[S comparable, T any](
	sv params.Solver[T],
	states params.StateSet[S, T],
	edges map[Edge[S]]T,
	successors, predecessors map[S][]S,
) *Explicit[S, T] {
	return &Explicit[S, T]{
		solver:       sv,
		states:       states,
		edges:        edges,
		successors:   successors,
		predecessors: predecessors,
	}
}

func (e *Explicit[S, T]) States() params.StateSet[S, T] { return e.states }
func (e *Explicit[S, T]) Successors(s S) []S            { return e.successors[s] }
func (e *Explicit[S, T]) Predecessors(s S) []S          { return e.predecessors[s] }

func (e *Explicit[S, T]) EdgeParams(from, to S) T {
	if v, ok := e.edges[Edge[S]{From: from, To: to}]; ok {
		return v
	}
	return e.solver.Empty()
}

// Solver returns the algebra the system was built with.
func (e *Explicit[S, T]) Solver() params.Solver[T] { return e.solver }

// NumStates returns the number of states with a non-empty label.
func (e *Explicit[S, T]) NumStates() int { return len(e.states) }

// NumEdges returns the number of edges.
func (e *Explicit[S, T]) NumEdges() int { return len(e.edges) }

// Edges returns a copy of the edge labels.
func (e *Explicit[S, T]) Edges() map[Edge[S]]T { return maps.Clone(e.edges) }

// RestrictTo keeps the edges whose endpoints are both in universe, relabeled
// with edge ∩ from ∩ to, and drops those whose new label is empty.
func (e *Explicit[S, T]) RestrictTo(universe params.StateSet[S, T]) TransitionSystem[S, T] {
	sv := e.solver
	edges := make(map[Edge[S]]T)
	for edge, label := range e.edges {
		from, ok := universe[edge.From]
		if !ok {
			continue
		}
		to, ok := universe[edge.To]
		if !ok {
			continue
		}
		restricted := sv.Intersect(label, sv.Intersect(from, to))
		if !sv.IsEmpty(restricted) {
			edges[edge] = restricted
		}
	}
	return &Explicit[S, T]{
		solver:       sv,
		states:       universe.Clone(),
		edges:        edges,
		successors:   restrictAdjacency(e.successors, edges, false),
		predecessors: restrictAdjacency(e.predecessors, edges, true),
	}
}

func restrictAdjacency[S comparable, T any](adjacency map[S][]S, edges map[Edge[S]]T, reverse bool) map[S][]S {
	result := make(map[S][]S, len(adjacency))
	for s, targets := range adjacency {
		var kept []S
		for _, t := range targets {
			key := Edge[S]{From: s, To: t}
			if reverse {
				key = Edge[S]{From: t, To: s}
			}
			if _, ok := edges[key]; ok {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			result[s] = kept
		}
	}
	return result
}
