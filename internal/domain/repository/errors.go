package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint is violated
	// (currently only the user email).
	ErrDuplicate = errors.New("duplicate record")
)
