// Package common defines shared constants and sentinel errors used across
// the ChatMate layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Signup conflicts.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")

	// Validation errors. Field-specific messages wrap ErrValidation.
	ErrValidation = errors.New("validation error")

	// Auth errors. Deliberately generic: the caller never learns whether
	// the username or the password was wrong.
	ErrUnauthorized = errors.New("invalid username or password")

	// Session errors.
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid token")

	// Gateway errors (external completion service).
	ErrGateway = errors.New("completion gateway error")
)
