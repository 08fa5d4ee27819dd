package workflow

import (
	"errors"
	"fmt"
)

// Error taxonomy of the workflow core. Every sentinel is a caller-recoverable
// condition: the caller re-fetches state or changes its input, nothing retries.
var (
	// ErrInvalidTransition is returned when an operation is attempted from a
	// state that does not permit it.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrValidation is returned when required input is missing or malformed.
	// No partial state is committed.
	ErrValidation = errors.New("validation error")

	// ErrForbidden is returned when a role acts out of turn in the approval chain.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for unknown sample/essai/client codes.
	ErrNotFound = errors.New("not found")

	// ErrCapacityExceeded is returned when a reservation is refused for a
	// saturated day. Advisory: a capacity probe reports saturation as a plain
	// negative, and a reservation can be forced past it.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// InvalidTransitionf wraps ErrInvalidTransition with a formatted detail message.
func InvalidTransitionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Forbiddenf wraps ErrForbidden with a formatted detail message.
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// CapacityExceededf wraps ErrCapacityExceeded with a formatted detail message.
func CapacityExceededf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCapacityExceeded, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
