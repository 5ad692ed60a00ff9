// Package decomp finds the terminal strongly connected components
// (attractors) of a colored transition system, together with the colors for
// which each one is terminal.
//
// Each iteration picks a pivot, computes its forward set F and the part B of
// F that reaches the pivot again without leaving F, and splits the remaining
// work in two: the states of F not in B (undecided, searched again inside F)
// and the states that cannot reach F at all (unrelated, searched again in
// the rest of the universe). Where F minus B is empty, F is terminal.
//
// # Example
//
//	sv := interval.NewSolver(0, 10)
//	alg := decomp.New[int, interval.Set](sv, sys, decomp.Options[int, interval.Set]{
//		Logger: slog.Default(),
//	})
//	res, err := alg.Run(ctx)
//	for _, c := range res.Components {
//		fmt.Println(c.States, sv.Print(c.Tag))
//	}
//
// # Parallelism
//
// With Options.Parallel set, the two child searches of an iteration run as
// separate errgroup tasks bounded by Options.Workers. The transition system
// is immutable and the children work on disjoint colors, so the only shared
// state is the Count and the Store, both of which lock internally.
//
// # Thread Safety
//
// An Algorithm must not be Run concurrently with itself. Observers passed to
// a parallel run are called from several goroutines.
package decomp
