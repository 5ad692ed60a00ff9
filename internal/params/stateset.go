package params

// StateSet maps states to the colors for which they are present.
//
// A key is never stored with an empty color: absence of a key is the only
// representation of the empty set for that state. Use Put and SetOrUnion to
// write entries so the invariant is kept.
type StateSet[S comparable, T any] map[S]T

// Get returns the color of s, or the empty color when s is absent.
func Get[S comparable, T any](sv Solver[T], set StateSet[S, T], s S) T {
	if v, ok := set[s]; ok {
		return v
	}
	return sv.Empty()
}

// Put stores v under s, deleting s instead when v is empty.
func Put[S comparable, T any](sv Solver[T], set StateSet[S, T], s S, v T) {
	if sv.IsEmpty(v) {
		delete(set, s)
		return
	}
	set[s] = v
}

// SetOrUnion merges v into the color of s and reports whether the color of s
// strictly grew.
func SetOrUnion[S comparable, T any](sv Solver[T], set StateSet[S, T], s S, v T) bool {
	if sv.IsEmpty(v) {
		return false
	}
	current, ok := set[s]
	if !ok {
		set[s] = v
		return true
	}
	if sv.Encloses(current, v) {
		return false
	}
	set[s] = sv.Union(current, v)
	return true
}

// Colors returns the union of all colors in set.
func Colors[S comparable, T any](sv Solver[T], set StateSet[S, T]) T {
	result := sv.Empty()
	for _, v := range set {
		result = sv.Union(result, v)
	}
	return result
}

// Minus computes against \ x state by state.
func Minus[S comparable, T any](sv Solver[T], x, against StateSet[S, T]) StateSet[S, T] {
	result := make(StateSet[S, T], len(against))
	for s, all := range against {
		minus, ok := x[s]
		if !ok {
			result[s] = all
			continue
		}
		Put(sv, result, s, sv.Complement(minus, all))
	}
	return result
}

// Intersect computes a ∩ b state by state.
func Intersect[S comparable, T any](sv Solver[T], a, b StateSet[S, T]) StateSet[S, T] {
	result := make(StateSet[S, T])
	for s, va := range a {
		vb, ok := b[s]
		if !ok {
			continue
		}
		Put(sv, result, s, sv.Intersect(va, vb))
	}
	return result
}

// Bound intersects every color in set with bound.
func Bound[S comparable, T any](sv Solver[T], set StateSet[S, T], bound T) StateSet[S, T] {
	result := make(StateSet[S, T], len(set))
	for s, v := range set {
		Put(sv, result, s, sv.Intersect(v, bound))
	}
	return result
}

// Subset reports whether every entry of sub is enclosed by the matching entry
// of sup.
func Subset[S comparable, T any](sv Solver[T], sup, sub StateSet[S, T]) bool {
	for s, v := range sub {
		w, ok := sup[s]
		if !ok || !sv.Encloses(w, v) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of set. Colors are immutable, so sharing them
// is safe.
func (set StateSet[S, T]) Clone() StateSet[S, T] {
	c := make(StateSet[S, T], len(set))
	for s, v := range set {
		c[s] = v
	}
	return c
}
