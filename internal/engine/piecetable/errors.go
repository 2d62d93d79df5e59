package piecetable

import "errors"

// Errors returned by table operations.
var (
	// ErrInvalidOffset indicates an offset outside [0, Len()].
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidRange indicates a range with start > end, a negative start,
	// or an end past Len().
	ErrInvalidRange = errors.New("invalid range")
)
