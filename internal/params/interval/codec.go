package interval

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrNegativeLength is returned when a serialized set declares a negative
// bound count.
var ErrNegativeLength = errors.New("interval: negative set length")

// readChunk bounds how many bounds are allocated ahead of the data that
// backs them, so a corrupt length fails with io.ErrUnexpectedEOF instead of
// exhausting memory.
const readChunk = 1024

// Codec serializes a Set as an int32 length followed by that many float64
// bounds, big-endian.
type Codec struct{}

func (Codec) Write(w io.Writer, x Set) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(x))); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, []float64(x))
}

func (Codec) Read(r io.Reader) (Set, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrNegativeLength
	}
	if n == 0 {
		return Set{}, nil
	}
	x := make(Set, 0, min(int(n), readChunk))
	for len(x) < int(n) {
		start := len(x)
		x = append(x, make([]float64, min(int(n)-start, readChunk))...)
		if err := binary.Read(r, binary.BigEndian, []float64(x[start:])); err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return x, nil
}
