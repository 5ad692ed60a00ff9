package models

import (
	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/ts"
)

// Ring is a directed cycle of States states. The domain is cut into States
// equal slices; on slice i the edge leaving state i is disabled, so state i
// is the only attractor there.
type Ring struct {
	States int
}

func (m *Ring) Name() string { return "ring" }

func (m *Ring) Build(sv *interval.Solver) (*System, error) {
	if m.States <= 0 {
		return nil, ErrSize
	}
	low, high := sv.Domain()
	width := (high - low) / float64(m.States)

	b := ts.NewBuilder[int, interval.Set](sv)
	for s := 0; s < m.States; s++ {
		b.AddState(s, sv.Full())
	}
	for s := 0; s < m.States; s++ {
		b.AddEdge(s, (s+1)%m.States, sv.Complement(m.slice(s, low, high, width), sv.Full()))
	}
	return b.Build(), nil
}

// Slice returns the parameter slice on which state s is a sink.
func (m *Ring) Slice(sv *interval.Solver, s int) interval.Set {
	low, high := sv.Domain()
	return m.slice(s, low, high, (high-low)/float64(m.States))
}

func (m *Ring) slice(s int, low, high, width float64) interval.Set {
	l := low + float64(s)*width
	h := low + float64(s+1)*width
	if s == m.States-1 {
		h = high
	}
	return interval.Set{l, h}
}
