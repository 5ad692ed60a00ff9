package decomp

import "errors"

var (
	// ErrUnknownChooser indicates a pivot strategy name that is not registered.
	ErrUnknownChooser = errors.New("decomp: unknown pivot strategy")

	// ErrNoModel indicates a structural strategy requested without a model.
	ErrNoModel = errors.New("decomp: pivot strategy needs a transition system")
)
