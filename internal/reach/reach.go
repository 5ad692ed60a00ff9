// Package reach computes colored forward and backward reachability.
//
// Both searches are worklist driven: a state is revisited only when its color
// strictly grew in the previous round, so every state's color only grows and
// the search stops once nothing changes.
package reach

import (
	"github.com/san-kum/paramsynth/internal/params"
	"github.com/san-kum/paramsynth/internal/ts"
)

// Forward returns, for every state, the colors under which it is reachable
// from initial along enabled edges.
func Forward[S comparable, T any](sv params.Solver[T], sys ts.TransitionSystem[S, T], initial params.StateSet[S, T]) params.StateSet[S, T] {
	result, frontier := seed(sv, initial)
	for len(frontier) > 0 {
		next := newFrontier[S](len(frontier))
		for _, s := range frontier {
			from := result[s]
			for _, t := range sys.Successors(s) {
				push := sv.Intersect(from, sys.EdgeParams(s, t))
				if params.SetOrUnion(sv, result, t, push) {
					next.add(t)
				}
			}
		}
		frontier = next.items
	}
	return result
}

// Backward returns, for every state, the colors under which it can reach
// initial. A non-nil path confines the search: a predecessor outside path is
// never entered and colors are clipped to path.
func Backward[S comparable, T any](sv params.Solver[T], sys ts.TransitionSystem[S, T], initial, path params.StateSet[S, T]) params.StateSet[S, T] {
	result, frontier := seed(sv, initial)
	for len(frontier) > 0 {
		next := newFrontier[S](len(frontier))
		for _, s := range frontier {
			to := result[s]
			for _, t := range sys.Predecessors(s) {
				var bound T
				if path != nil {
					var ok bool
					if bound, ok = path[t]; !ok {
						continue
					}
				}
				push := sv.Intersect(to, sys.EdgeParams(t, s))
				if path != nil {
					push = sv.Intersect(push, bound)
				}
				if params.SetOrUnion(sv, result, t, push) {
					next.add(t)
				}
			}
		}
		frontier = next.items
	}
	return result
}

func seed[S comparable, T any](sv params.Solver[T], initial params.StateSet[S, T]) (params.StateSet[S, T], []S) {
	result := make(params.StateSet[S, T], len(initial))
	frontier := make([]S, 0, len(initial))
	for s, v := range initial {
		if sv.IsEmpty(v) {
			continue
		}
		result[s] = v
		frontier = append(frontier, s)
	}
	return result, frontier
}

type frontier[S comparable] struct {
	items []S
	seen  map[S]struct{}
}

func newFrontier[S comparable](capacity int) *frontier[S] {
	return &frontier[S]{
		items: make([]S, 0, capacity),
		seen:  make(map[S]struct{}, capacity),
	}
}

func (f *frontier[S]) add(s S) {
	if _, ok := f.seen[s]; ok {
		return
	}
	f.seen[s] = struct{}{}
	f.items = append(f.items, s)
}
