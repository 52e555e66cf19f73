package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrEmptyQuery is returned when a match is attempted with a blank query
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidConfig is returned when configuration validation fails
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSearchFailed is returned when the search backend cannot be queried
	ErrSearchFailed = errors.New("search failed")
)

// InputError represents a rejected user input with context
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s", e.Message)
}

func (e *InputError) Is(target error) bool {
	return target == ErrEmptyQuery
}

// NewInputError creates a new InputError
func NewInputError(message string) *InputError {
	return &InputError{Message: message}
}

// ConfigError represents a configuration validation failure with context.
// It is fatal at load time and is never raised mid-match.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// SearchFailedError represents a search backend failure with context
type SearchFailedError struct {
	Endpoint string
	Err      error
}

func (e *SearchFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("search against '%s' failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("search against '%s' failed", e.Endpoint)
}

func (e *SearchFailedError) Is(target error) bool {
	return target == ErrSearchFailed
}

func (e *SearchFailedError) Unwrap() error {
	return e.Err
}

// NewSearchFailedError creates a new SearchFailedError
func NewSearchFailedError(endpoint string, err error) *SearchFailedError {
	return &SearchFailedError{Endpoint: endpoint, Err: err}
}
