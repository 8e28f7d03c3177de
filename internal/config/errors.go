package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a value is outside its allowed range.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownBackend indicates backend.kind names no known backend.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrUnknownLevel indicates logging.level is not a known level.
	ErrUnknownLevel = errors.New("unknown log level")
)

// ValidationError describes one invalid setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "display.width".
	Path string
	// Message describes the problem.
	Message string
	// Value is the rejected value.
	Value any
	// Err is the sentinel the error matches.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns the sentinel.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidationFailed
	}
	return e.Err
}
