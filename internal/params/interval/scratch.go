package interval

import (
	"math"
	"sync"
)

// Scratch is a reusable work buffer for the interval sweeps.
//
// Results returned by Scratch methods are fresh copies; the buffer contents
// are undefined between calls.
type Scratch struct {
	work     []float64
	extended []float64
}

// NewScratch returns a Scratch with room for sets of up to capacity bounds.
func NewScratch(capacity int) *Scratch {
	return &Scratch{work: make([]float64, capacity)}
}

func (w *Scratch) buffer(size int) []float64 {
	if cap(w.work) < size {
		w.work = make([]float64, size)
	}
	return w.work[:size]
}

// Intersect returns a ∩ b.
func (w *Scratch) Intersect(a, b Set) Set {
	if len(a) == 0 || len(b) == 0 {
		return Set{}
	}
	work := w.buffer(len(a) + len(b))
	iW, iA, iB := 0, 0, 0
	for iA < len(a) && iB < len(b) {
		aH := a[iA+1]
		bH := b[iB+1]
		rL := math.Max(a[iA], b[iB])
		rH := math.Min(aH, bH)
		if rL < rH {
			work[iW], work[iW+1] = rL, rH
			iW += 2
		}
		// Advance the interval with the smaller upper bound. Advancing by
		// lower bound can skip an interval that still overlaps.
		if aH > bH {
			iB += 2
		} else {
			iA += 2
		}
	}
	return copySet(work[:iW])
}

// Union returns a ∪ b. Touching intervals are merged.
func (w *Scratch) Union(a, b Set) Set {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	work := w.buffer(len(a) + len(b))
	iW, iA, iB := 2, 0, 0
	if a[0] < b[0] {
		work[0], work[1] = a[0], a[1]
		iA += 2
	} else {
		work[0], work[1] = b[0], b[1]
		iB += 2
	}
	for iA < len(a) || iB < len(b) {
		var l, h float64
		if iA < len(a) && (iB >= len(b) || a[iA] < b[iB]) {
			l, h = a[iA], a[iA+1]
			iA += 2
		} else {
			l, h = b[iB], b[iB+1]
			iB += 2
		}
		switch {
		case l > work[iW-1]:
			work[iW], work[iW+1] = l, h
			iW += 2
		case h > work[iW-1]:
			work[iW-1] = h
		}
	}
	return copySet(work[:iW])
}

// Complement returns against \ x.
//
// x is extended to [-Inf, x0, ..., xN, +Inf], which lists exactly the gaps of
// x over the real line, and the gaps are intersected with against.
func (w *Scratch) Complement(x, against Set) Set {
	if len(x) == 0 {
		return against
	}
	if len(against) == 0 {
		return Set{}
	}
	size := len(x) + 2
	if cap(w.extended) < size {
		w.extended = make([]float64, size)
	}
	extended := w.extended[:size]
	extended[0] = math.Inf(-1)
	copy(extended[1:], x)
	extended[size-1] = math.Inf(1)
	return w.Intersect(extended, against)
}

func copySet(work []float64) Set {
	if len(work) == 0 {
		return Set{}
	}
	result := make(Set, len(work))
	copy(result, work)
	return result
}

type scratchPool struct {
	pool sync.Pool
}

func newScratchPool() *scratchPool {
	return &scratchPool{
		pool: sync.Pool{
			New: func() interface{} {
				return NewScratch(16)
			},
		},
	}
}

func (p *scratchPool) Get() *Scratch {
	return p.pool.Get().(*Scratch)
}

func (p *scratchPool) Put(w *Scratch) {
	p.pool.Put(w)
}
