package domain

import "errors"

// Authentication and authorization failures. All are terminal for a request.
var (
	ErrMissingCredential  = errors.New("missing credential")
	ErrInvalidCredential  = errors.New("invalid credential")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Resource failures.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
