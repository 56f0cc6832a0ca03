// Package errors provides structured error types and error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Wrap creates a new error by wrapping an existing error with additional context.
// This uses fmt.Errorf with %w verb for proper error chain support.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Sentinel categories. The constructors below wrap one of these so callers
// can branch with Is instead of matching message prefixes.
var (
	ErrValidation    = errors.New("validation error")
	ErrSecurity      = errors.New("security error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found error")
)

func Validation(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

func Security(message string) error {
	return fmt.Errorf("%w: %s", ErrSecurity, message)
}

func SecurityWithDetails(message, details string) error {
	return fmt.Errorf("%w: %s (%s)", ErrSecurity, message, details)
}

func Configuration(message string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, message)
}

func ConfigurationWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, message, cause)
}

func NotFoundWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrNotFound, message, cause)
}
