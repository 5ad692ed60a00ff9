package ts

import (
	"fmt"
	"slices"
)

// validator is implemented by algebras that can check a value for
// well-formedness, such as interval.Solver.
type validator[T any] interface {
	Valid(x T) bool
}

// Validate checks the preconditions the algorithms rely on but never test:
// every edge endpoint is a state, every label is well formed when the
// algebra can tell and lies inside the solver's full set, and adjacency
// lists agree with the edge map.
func Validate[S comparable, T any](sys *Explicit[S, T]) error {
	sv := sys.solver
	check, canCheck := sv.(validator[T])
	full := sv.Full()

	for s, v := range sys.states {
		if canCheck && !check.Valid(v) {
			return fmt.Errorf("%w: state %v: %s", ErrMalformedParams, s, sv.Print(v))
		}
		if !sv.Encloses(full, v) {
			return fmt.Errorf("%w: state %v: %s not in %s", ErrOutOfDomain, s, sv.Print(v), sv.Print(full))
		}
	}
	for edge, v := range sys.edges {
		if _, ok := sys.states[edge.From]; !ok {
			return fmt.Errorf("%w: %v -> %v (source)", ErrDanglingEdge, edge.From, edge.To)
		}
		if _, ok := sys.states[edge.To]; !ok {
			return fmt.Errorf("%w: %v -> %v (target)", ErrDanglingEdge, edge.From, edge.To)
		}
		if canCheck && !check.Valid(v) {
			return fmt.Errorf("%w: edge %v -> %v: %s", ErrMalformedParams, edge.From, edge.To, sv.Print(v))
		}
		if !sv.Encloses(full, v) {
			return fmt.Errorf("%w: edge %v -> %v: %s not in %s", ErrOutOfDomain, edge.From, edge.To, sv.Print(v), sv.Print(full))
		}
		if !slices.Contains(sys.successors[edge.From], edge.To) || !slices.Contains(sys.predecessors[edge.To], edge.From) {
			return fmt.Errorf("%w: %v -> %v", ErrAdjacency, edge.From, edge.To)
		}
	}
	for s, targets := range sys.successors {
		for _, t := range targets {
			if _, ok := sys.edges[Edge[S]{From: s, To: t}]; !ok {
				return fmt.Errorf("%w: successor %v -> %v has no label", ErrAdjacency, s, t)
			}
		}
	}
	for s, sources := range sys.predecessors {
		for _, t := range sources {
			if _, ok := sys.edges[Edge[S]{From: t, To: s}]; !ok {
				return fmt.Errorf("%w: predecessor %v -> %v has no label", ErrAdjacency, t, s)
			}
		}
	}
	return nil
}
