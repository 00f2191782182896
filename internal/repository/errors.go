package repository

import "errors"

// Common repository errors that can be checked with errors.Is()
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidSort is returned when a page is requested with an unknown sort property
	ErrInvalidSort = errors.New("invalid sort property")
)
