package toolkit

import "errors"

// Common toolkit errors.
var (
	// ErrNotFound is returned when a descriptor does not exist in the
	// store under any candidate location. Callers decide severity; a
	// missing optional descriptor is not fatal.
	ErrNotFound = errors.New("descriptor not found")
)
