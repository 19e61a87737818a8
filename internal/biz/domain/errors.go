package domain

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned when input fails validation
	ErrInvalidArgument = errors.New("invalid argument")
)
