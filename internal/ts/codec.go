package ts

import (
	"encoding/binary"
	"io"

	"github.com/san-kum/paramsynth/internal/params"
)

// Codec serializes values of one type. Errors from the underlying stream are
// returned as is.
type Codec[X any] interface {
	Write(w io.Writer, x X) error
	Read(r io.Reader) (X, error)
}

// Int32Codec writes int states as big-endian int32.
type Int32Codec struct{}

func (Int32Codec) Write(w io.Writer, s int) error {
	return binary.Write(w, binary.BigEndian, int32(s))
}

func (Int32Codec) Read(r io.Reader) (int, error) {
	var v int32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, err
	}
	return int(v), nil
}

// maxPrealloc caps capacity hints taken from the stream. Larger inputs grow
// as they are read.
const maxPrealloc = 1 << 12

// Write serializes sys. Codec and stream errors are returned unmodified.
func Write[S comparable, T any](w io.Writer, sys *Explicit[S, T], states Codec[S], colors Codec[T]) error {
	if err := writeCount(w, len(sys.states)); err != nil {
		return err
	}
	for s, v := range sys.states {
		if err := states.Write(w, s); err != nil {
			return err
		}
		if err := colors.Write(w, v); err != nil {
			return err
		}
	}

	if err := writeCount(w, len(sys.edges)); err != nil {
		return err
	}
	for edge, v := range sys.edges {
		if err := states.Write(w, edge.From); err != nil {
			return err
		}
		if err := states.Write(w, edge.To); err != nil {
			return err
		}
		if err := colors.Write(w, v); err != nil {
			return err
		}
	}

	if err := writeAdjacency(w, sys.successors, states); err != nil {
		return err
	}
	return writeAdjacency(w, sys.predecessors, states)
}

// Read decodes a system written by Write. The result is not validated; call
// Validate when the input is untrusted.
func Read[S comparable, T any](r io.Reader, sv params.Solver[T], states Codec[S], colors Codec[T]) (*Explicit[S, T], error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	stateSet := make(params.StateSet[S, T], min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		s, err := states.Read(r)
		if err != nil {
			return nil, err
		}
		v, err := colors.Read(r)
		if err != nil {
			return nil, err
		}
		params.Put(sv, stateSet, s, v)
	}

	n, err = readCount(r)
	if err != nil {
		return nil, err
	}
	edges := make(map[Edge[S]]T, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		from, err := states.Read(r)
		if err != nil {
			return nil, err
		}
		to, err := states.Read(r)
		if err != nil {
			return nil, err
		}
		v, err := colors.Read(r)
		if err != nil {
			return nil, err
		}
		edges[Edge[S]{From: from, To: to}] = v
	}

	successors, err := readAdjacency(r, states)
	if err != nil {
		return nil, err
	}
	predecessors, err := readAdjacency(r, states)
	if err != nil {
		return nil, err
	}
	return NewExplicit(sv, stateSet, edges, successors, predecessors), nil
}

func writeCount(w io.Writer, n int) error {
	return binary.Write(w, binary.BigEndian, int32(n))
}

func readCount(r io.Reader) (int, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNegativeCount
	}
	return int(n), nil
}

func writeAdjacency[S comparable](w io.Writer, adjacency map[S][]S, states Codec[S]) error {
	if err := writeCount(w, len(adjacency)); err != nil {
		return err
	}
	for s, items := range adjacency {
		if err := states.Write(w, s); err != nil {
			return err
		}
		if err := writeCount(w, len(items)); err != nil {
			return err
		}
		for _, t := range items {
			if err := states.Write(w, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func readAdjacency[S comparable](r io.Reader, states Codec[S]) (map[S][]S, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	result := make(map[S][]S, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		s, err := states.Read(r)
		if err != nil {
			return nil, err
		}
		count, err := readCount(r)
		if err != nil {
			return nil, err
		}
		items := make([]S, 0, min(count, maxPrealloc))
		for j := 0; j < count; j++ {
			t, err := states.Read(r)
			if err != nil {
				return nil, err
			}
			items = append(items, t)
		}
		result[s] = items
	}
	return result, nil
}
