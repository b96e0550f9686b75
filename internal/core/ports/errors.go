package ports

import "errors"

// Sentinel errors shared across repositories and services. Handlers map
// these to HTTP statuses; anything else is an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidID          = errors.New("invalid id")
	ErrEmptyUpdate        = errors.New("no fields to update")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
