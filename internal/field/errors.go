package field

import "errors"

// Domain errors for history buffer operations.
var (
	// ErrMemory indicates a retention bound below the minimum of 3.
	ErrMemory = errors.New("field: retention bound must be at least 3")

	// ErrSeed indicates empty or non-rectangular seed history.
	ErrSeed = errors.New("field: seed history must be a non-empty rectangular table")

	// ErrShape indicates an appended row whose width disagrees with the field width.
	ErrShape = errors.New("field: row width does not match field width")

	// ErrEvicted indicates a query for a time step already dropped from the window.
	ErrEvicted = errors.New("field: time step no longer retained")

	// ErrRange indicates a time step outside the computed history.
	ErrRange = errors.New("field: time step out of range")

	// ErrCell indicates a spatial cell index outside the field.
	ErrCell = errors.New("field: cell index out of range")
)
