package pairs

import "errors"

var (
	// ErrInvalidGrid is returned for grid options that cannot produce a
	// grid: non-positive resolution or scale, inverted or non-finite bounds.
	ErrInvalidGrid = errors.New("pairs: invalid grid")

	// ErrShapeMismatch is returned when the sources, receivers and weights
	// of a PairSet disagree in length.
	ErrShapeMismatch = errors.New("pairs: shape mismatch")
)
