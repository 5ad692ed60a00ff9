// Package boolean is the two-element parameter algebra: a color is either
// the whole (single point) parameter space or nothing.
//
// It is the smallest possible params.Solver and is used to run the
// decomposition on plain, uncolored graphs and as a reference in tests.
package boolean

import (
	"encoding/binary"
	"io"
	"strconv"

	"github.com/san-kum/paramsynth/internal/params"
)

var _ params.Solver[bool] = Solver{}

type Solver struct{}

func (Solver) Full() bool                      { return true }
func (Solver) Empty() bool                     { return false }
func (Solver) Intersect(a, b bool) bool        { return a && b }
func (Solver) Union(a, b bool) bool            { return a || b }
func (Solver) Complement(x, against bool) bool { return against && !x }
func (Solver) Encloses(x, subset bool) bool    { return x || !subset }
func (Solver) IsEmpty(x bool) bool             { return !x }
func (Solver) Print(x bool) string             { return strconv.FormatBool(x) }

func (Solver) Volume(x bool) float64 {
	if x {
		return 1
	}
	return 0
}

// Codec serializes a color as a single byte, 1 for true.
type Codec struct{}

func (Codec) Write(w io.Writer, x bool) error {
	var b byte
	if x {
		b = 1
	}
	return binary.Write(w, binary.BigEndian, b)
}

func (Codec) Read(r io.Reader) (bool, error) {
	var b byte
	if err := binary.Read(r, binary.BigEndian, &b); err != nil {
		return false, err
	}
	return b == 1, nil
}
