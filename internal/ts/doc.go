// Package ts provides labeled transition systems over a parameter algebra.
//
// States carry the color for which they exist and edges carry the color for
// which they are enabled. A system is immutable once built; RestrictTo is the
// only way to derive a smaller one and it always allocates.
//
// # Example
//
//	sv := interval.NewSolver(0, 10)
//	b := ts.NewBuilder[int, interval.Set](sv)
//	b.AddState(0, sv.Full())
//	b.AddState(1, sv.Full())
//	b.AddEdge(0, 1, interval.Set{5, 10})
//	sys := b.Build()
//
// # Persistence
//
// Write and Read use a big-endian binary layout: a state block, an edge
// block, then the successor and predecessor adjacency blocks. States and
// colors go through a caller supplied Codec.
//
// # Thread Safety
//
// Systems are read-only after construction and safe for concurrent use.
// Builder is not safe for concurrent use.
package ts
