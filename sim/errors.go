package sim

import "errors"

var (
	// ErrInvalidParameter is returned when a probability lies outside [0,1].
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidGrid is returned for nil, empty, non-square grids or illegal cell values.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrRngExhaustion is returned when a finite random source cannot cover a full step.
	ErrRngExhaustion = errors.New("random source exhausted")
)
