// Package apperrors defines the stable error kinds every layer of the
// platform reports: NotFound, Forbidden, Validation and Conflict. Use cases
// wrap these sentinels with %w and the HTTP layer maps them to status codes
// with errors.Is. Anything that matches none of them surfaces as a 500.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced entity does not resolve
	ErrNotFound = errors.New("not found")

	// ErrForbidden means a role or branch scope violation
	ErrForbidden = errors.New("forbidden")

	// ErrValidation means malformed input
	ErrValidation = errors.New("validation failed")

	// ErrConflict means a duplicate unique key
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized means the caller failed to authenticate
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFound wraps ErrNotFound with a formatted message
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Forbidden wraps ErrForbidden with a formatted message
func Forbidden(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

// Validation wraps ErrValidation with a formatted message
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Conflict wraps ErrConflict with a formatted message
func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// Unauthorized wraps ErrUnauthorized with a formatted message
func Unauthorized(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnauthorized)...)
}
