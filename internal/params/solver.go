package params

// Solver provides the operations on one type of parameter set.
//
// Every operation is pure: it returns a new value, or one of its operands when
// the result is structurally identical, and never mutates an operand. All
// methods must be safe to call from multiple goroutines without external
// locking.
type Solver[T any] interface {
	// Full returns the top element (the whole parameter space).
	Full() T

	// Empty returns the bottom element.
	Empty() T

	Intersect(a, b T) T
	Union(a, b T) T

	// Complement returns against \ x.
	Complement(x, against T) T

	// Encloses reports whether subset is contained in x.
	Encloses(x, subset T) bool

	IsEmpty(x T) bool

	// Volume returns a non-negative measure of x. Volume(Empty()) is zero.
	Volume(x T) float64

	// Print renders x for debugging.
	Print(x T) string
}
