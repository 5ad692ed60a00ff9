package ts

import "github.com/san-kum/paramsynth/internal/params"

// Builder accumulates states and edges for an Explicit system. Adjacency
// lists keep insertion order.
type Builder[S comparable, T any] struct {
	solver       params.Solver[T]
	states       params.StateSet[S, T]
	edges        map[Edge[S]]T
	successors   map[S][]S
	predecessors map[S][]S
}

func NewBuilder[S comparable, T any](sv params.Solver[T]) *Builder[S, T] {
	return &Builder[S, T]{
		solver:       sv,
		states:       make(params.StateSet[S, T]),
		edges:        make(map[Edge[S]]T),
		successors:   make(map[S][]S),
		predecessors: make(map[S][]S),
	}
}

// AddState unions v into the label of s. Empty labels are ignored.
func (b *Builder[S, T]) AddState(s S, v T) *Builder[S, T] {
	params.SetOrUnion(b.solver, b.states, s, v)
	return b
}

// AddEdge unions v into the label of from->to. Empty labels are ignored.
func (b *Builder[S, T]) AddEdge(from, to S, v T) *Builder[S, T] {
	if b.solver.IsEmpty(v) {
		return b
	}
	key := Edge[S]{From: from, To: to}
	if current, ok := b.edges[key]; ok {
		b.edges[key] = b.solver.Union(current, v)
		return b
	}
	b.edges[key] = v
	b.successors[from] = append(b.successors[from], to)
	b.predecessors[to] = append(b.predecessors[to], from)
	return b
}

// Build returns the system. The builder must not be used afterwards.
func (b *Builder[S, T]) Build() *Explicit[S, T] {
	e := NewExplicit(b.solver, b.states, b.edges, b.successors, b.predecessors)
	*b = Builder[S, T]{}
	return e
}
