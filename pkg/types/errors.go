package types

import "errors"

var (
	// ErrInvalidArgument marks malformed or out-of-range input. Maps to 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBackingUnavailable is returned by durable stores when Postgres cannot be reached.
	// Fallback stores recover from it; it should never reach an HTTP response.
	ErrBackingUnavailable = errors.New("durable backing unavailable")

	// ErrAlreadyExists means the record's ID is taken. Maps to 409.
	ErrAlreadyExists = errors.New("already exists")

	ErrDonorNotFound   = errors.New("donor not found")
	ErrRequestNotFound = errors.New("blood request not found")
)
