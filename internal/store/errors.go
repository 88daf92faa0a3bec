package store

import "errors"

// Common storage sentinels. The postgres layer maps driver errors onto
// these so callers never match on driver-specific types.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates an insert violated a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")

	// ErrInvalidEntity indicates a write violated a database constraint.
	ErrInvalidEntity = errors.New("invalid entity")
)
