package decomp

import (
	"sync"

	"github.com/san-kum/paramsynth/internal/params"
)

// Count tracks, for every color, how many times it has been pushed.
//
// Level i holds the colors pushed exactly i times. A fresh Count has every
// color on level 0. Trailing empty levels are dropped after each Push, so the
// number of levels is one more than the largest count of any color.
type Count[T any] struct {
	mu     sync.Mutex
	solver params.Solver[T]
	levels []T
}

func NewCount[T any](sv params.Solver[T]) *Count[T] {
	return &Count[T]{
		solver: sv,
		levels: []T{sv.Full()},
	}
}

// Push moves the colors of p up one level.
func (c *Count[T]) Push(p T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sv := c.solver
	outside := sv.Complement(p, sv.Full())
	next := make([]T, len(c.levels)+1)
	for i := range next {
		next[i] = sv.Empty()
	}
	for i, level := range c.levels {
		next[i] = sv.Union(next[i], sv.Intersect(level, outside))
		next[i+1] = sv.Union(next[i+1], sv.Intersect(level, p))
	}
	for len(next) > 0 && sv.IsEmpty(next[len(next)-1]) {
		next = next[:len(next)-1]
	}
	c.levels = next
}

// Len returns the number of levels.
func (c *Count[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.levels)
}

// Level returns the colors on level i, or the empty color past the end.
func (c *Count[T]) Level(i int) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.levels) {
		return c.solver.Empty()
	}
	return c.levels[i]
}

// Levels returns a copy of all levels.
func (c *Count[T]) Levels() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.levels))
	copy(out, c.levels)
	return out
}

// Max returns one more than the highest non-empty level, or 0.
func (c *Count[T]) Max() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.levels) - 1; i >= 0; i-- {
		if !c.solver.IsEmpty(c.levels[i]) {
			return i + 1
		}
	}
	return 0
}

// Min returns one more than the lowest non-empty level, or 0.
func (c *Count[T]) Min() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, level := range c.levels {
		if !c.solver.IsEmpty(level) {
			return i + 1
		}
	}
	return 0
}
