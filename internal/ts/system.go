package ts

import "github.com/san-kum/paramsynth/internal/params"

// Edge identifies a directed transition.
type Edge[S comparable] struct {
	From S
	To   S
}

// TransitionSystem is a read-only labeled graph.
type TransitionSystem[S comparable, T any] interface {
	// States returns the state labels. Callers must not modify the result.
	States() params.StateSet[S, T]

	// Successors returns the targets of edges leaving s, or nil for an
	// unknown state.
	Successors(s S) []S

	// Predecessors returns the sources of edges entering s, or nil for an
	// unknown state.
	Predecessors(s S) []S

	// EdgeParams returns the label of from->to, or the empty color when the
	// edge does not exist.
	EdgeParams(from, to S) T

	// RestrictTo returns the subsystem induced by universe.
	RestrictTo(universe params.StateSet[S, T]) TransitionSystem[S, T]
}
