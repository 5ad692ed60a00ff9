// Package models generates interval-colored transition systems.
//
// Polynomial abstracts a one-variable ODE with one parameter over a
// threshold grid. Ring and Random are synthetic graphs with a known or
// reproducible structure, used for benchmarks and tests.
package models

import (
	"errors"

	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/ts"
)

var (
	ErrThresholds = errors.New("models: need at least two strictly increasing thresholds")
	ErrSize       = errors.New("models: state count must be positive")
)

// System is the concrete transition system every model produces: integer
// states colored by intervals of the single parameter.
type System = ts.Explicit[int, interval.Set]

type Model interface {
	Name() string
	Build(sv *interval.Solver) (*System, error)
}
