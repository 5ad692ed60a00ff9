// Package params defines the parameter-set algebra used by every graph
// operation in paramsynth.
//
// A parameter set ("color") is an opaque, immutable value describing a
// subset of the parameter space. All graph algorithms work on whole colors at
// once instead of enumerating parameter values:
//
//   - [Solver]: bounded lattice contract over a parameter-set type T
//   - [StateSet]: labeled state-set, a map from states to colors in which
//     an absent key means the empty color
//
// Concrete algebras live in sub-packages: interval for a single bounded
// real parameter and boolean as the minimal reference implementation.
//
// # Example
//
//	sv := interval.NewSolver(0, 10)
//	u := params.StateSet[int, interval.Set]{}
//	params.Put(sv, u, 0, sv.Full())
//	colors := params.Colors(sv, u)
//
// # Thread Safety
//
// Solver implementations are safe for concurrent use. StateSet values are
// plain maps and must not be written concurrently.
package params
