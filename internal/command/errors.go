package command

import "errors"

// Decoding errors.
var (
	// ErrUnknownNavigation indicates keys that name no navigation motion.
	ErrUnknownNavigation = errors.New("unknown navigation")

	// ErrUnknownOperator indicates keys that name no motion type.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnknownScope indicates a key that names no scope.
	ErrUnknownScope = errors.New("unknown scope")

	// ErrUnknownRange indicates keys that name no range.
	ErrUnknownRange = errors.New("unknown range")

	// ErrNotAMotion indicates keys that do not form a complete motion.
	ErrNotAMotion = errors.New("not a motion")
)
