package types

import (
	"fmt"
)

// FormatError represents an error decoding a configuration document: the
// text is not valid YAML, or its root is not a mapping.
type FormatError struct {
	Message string
	Cause   error
}

// Error returns the error message.
func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying decoder error, if any.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// NewFormatError creates a new FormatError with the given message.
func NewFormatError(message string) *FormatError {
	return &FormatError{Message: message}
}

// WrapFormatError wraps a decoder error with additional context.
func WrapFormatError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &FormatError{
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// IsFormatError checks if an error is a FormatError.
func IsFormatError(err error) bool {
	_, ok := err.(*FormatError)
	return ok
}

// ValidationError represents an error that occurs during schema validation
// of an assembled configuration.
type ValidationError struct {
	Message string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		Message: message,
	}
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// WrapValidationError wraps an error with additional context.
func WrapValidationError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	message := fmt.Sprintf(format, args...)
	if ve, ok := err.(*ValidationError); ok {
		return &ValidationError{
			Message: fmt.Sprintf("%s: %s", message, ve.Message),
		}
	}

	return &ValidationError{
		Message: fmt.Sprintf("%s: %v", message, err),
	}
}
