package persistence

import "errors"

var (
	// ErrNotFound is returned when no snapshot has been stored yet.
	ErrNotFound = errors.New("persistence: not found")
	// ErrCorruptSnapshot is returned when a stored snapshot cannot be decoded.
	ErrCorruptSnapshot = errors.New("persistence: corrupt snapshot")
)
