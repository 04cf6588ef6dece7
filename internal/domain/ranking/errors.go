package ranking

import "errors"

var (
	// ErrNoDrills indicates an event with no active drills to rank on.
	ErrNoDrills = errors.New("no active drills")
	// ErrInvalidWeight indicates a negative weight override.
	ErrInvalidWeight = errors.New("invalid weight")
	// ErrNoPositiveWeights indicates every effective weight is zero.
	ErrNoPositiveWeights = errors.New("no positive weights")
)
