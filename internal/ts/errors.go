package ts

import "errors"

var (
	// ErrDanglingEdge indicates an edge whose endpoint is not a state.
	ErrDanglingEdge = errors.New("ts: edge references unknown state")

	// ErrMalformedParams indicates a label the algebra rejects.
	ErrMalformedParams = errors.New("ts: malformed parameter set")

	// ErrOutOfDomain indicates a label not contained in the solver's full set,
	// typically a system read with the wrong parameter domain.
	ErrOutOfDomain = errors.New("ts: parameter set outside the domain")

	// ErrAdjacency indicates adjacency lists that disagree with the edge map.
	ErrAdjacency = errors.New("ts: adjacency does not match edges")

	// ErrNegativeCount indicates a negative block or list length on read.
	ErrNegativeCount = errors.New("ts: negative count in stream")
)
