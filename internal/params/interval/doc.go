// Package interval implements the parameter-set algebra for a single bounded
// real parameter.
//
// A [Set] is a sorted array of disjoint intervals, open at both ends,
// flattened as [l0, h0, l1, h1, ...]. Bounds are always finite; the infinite
// sentinels used by [Solver.Complement] never escape a single call.
//
// Every binary operation is a linear two-pointer sweep over both operands.
// Intermediate results are written into a [Scratch] buffer and copied out, so
// returned sets never alias internal storage.
//
// # Example
//
//	sv := interval.NewSolver(0, 10)
//	low := interval.Set{0, 5}
//	high := interval.Set{3, 10}
//	both := sv.Intersect(low, high) // [(3, 5)]
//	rest := sv.Complement(low, sv.Full()) // [(5, 10)]
//
// # Thread Safety
//
// [Solver] is safe for concurrent use: each call borrows its own Scratch from
// a pool. A Scratch itself must not be shared between goroutines.
package interval
