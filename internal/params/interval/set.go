package interval

import (
	"strconv"
	"strings"
)

// Set is a flattened, sorted array of disjoint open intervals.
type Set []float64

// Len returns the number of intervals in s.
func (s Set) Len() int { return len(s) / 2 }

// Bounds returns the i-th interval.
func (s Set) Bounds(i int) (low, high float64) {
	return s[2*i], s[2*i+1]
}

// Contains reports whether v lies strictly inside one of the intervals.
func (s Set) Contains(v float64) bool {
	for i := 0; i < len(s); i += 2 {
		if v <= s[i] {
			return false
		}
		if v < s[i+1] {
			return true
		}
	}
	return false
}

// Equal reports whether s and other hold the same bounds.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	if len(s) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < len(s); i += 2 {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		sb.WriteString(strconv.FormatFloat(s[i], 'g', -1, 64))
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatFloat(s[i+1], 'g', -1, 64))
		sb.WriteByte(')')
	}
	sb.WriteByte(']')
	return sb.String()
}
