package config

import (
	"errors"
	"fmt"

	"github.com/dshills/quill/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownSetting indicates the setting name doesn't exist.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrValidationFailed indicates a value fails validation.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Setting is the setting name that failed validation.
	Setting string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Setting, e.Message, e.Value)
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
