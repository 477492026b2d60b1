package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidInput marks request-content errors (malformed ids, references
	// to rows that don't exist). Anything not wrapped in a sentinel surfaces
	// as a generic 500, so driver errors never reach clients.
	ErrInvalidInput = errors.New("invalid request")
)
