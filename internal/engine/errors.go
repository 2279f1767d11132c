package engine

import "errors"

var (
	// ErrInvalidLevel is returned when a level number is outside [1, MaxLevel].
	// Callers recover by loading level 1.
	ErrInvalidLevel = errors.New("invalid level number")

	// ErrMalformedLevel is returned when level data does not fit the grid
	// or breaks occupancy rules. It is fatal for that load.
	ErrMalformedLevel = errors.New("malformed level data")
)
