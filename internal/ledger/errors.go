package ledger

import "errors"

// Domain errors. HTTP handlers translate these into status codes, so the
// store and services never deal in HTTP directly.
var (
	// ErrUserNotFound is returned when no user matches the given email,
	// full name, or account id. Maps to 404 Not Found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned by CreateUser for a duplicate email.
	// Maps to 409 Conflict.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidEmail is returned by CreateUser for an empty email.
	// Maps to 400 Bad Request.
	ErrInvalidEmail = errors.New("a valid email is required")
)
