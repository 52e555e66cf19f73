package errors

import (
	"errors"
	"testing"
)

func TestInputError(t *testing.T) {
	err := NewInputError("query must not be blank")

	// Test error message
	expectedMsg := "input error: query must not be blank"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrEmptyQuery) {
		t.Error("Expected error to match ErrEmptyQuery sentinel")
	}

	// Test that it doesn't match other sentinels
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("Error should not match ErrInvalidConfig")
	}
}

func TestConfigError(t *testing.T) {
	// Test with field
	err := NewConfigError("weights", "must sum to 1")

	expectedMsg := "config error for 'weights': must sum to 1"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewConfigError("", "must sum to 1")

	expectedMsg2 := "config error: must sum to 1"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("Expected error to match ErrInvalidConfig sentinel")
	}
	if !errors.Is(err2, ErrInvalidConfig) {
		t.Error("Expected error without field to match ErrInvalidConfig sentinel")
	}
}

func TestSearchFailedError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSearchFailedError("http://localhost:9200/company_index/_search", cause)

	expectedMsg := "search against 'http://localhost:9200/company_index/_search' failed: connection refused"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrSearchFailed) {
		t.Error("Expected error to match ErrSearchFailed sentinel")
	}

	// Test Unwrap() to the root cause
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to the underlying cause")
	}
}

func TestErrorChaining(t *testing.T) {
	// Test that our custom errors can be wrapped and unwrapped
	originalErr := NewConfigError("accept_threshold", "must be in [0,1]")
	wrappedErr := errors.Join(originalErr, errors.New("additional context"))

	// Should still be able to detect the original error
	if !errors.Is(wrappedErr, ErrInvalidConfig) {
		t.Error("Expected wrapped error to still match ErrInvalidConfig sentinel")
	}

	// Should be able to unwrap to get the original error
	var cfgErr *ConfigError
	if !errors.As(wrappedErr, &cfgErr) {
		t.Error("Expected to be able to unwrap to ConfigError")
	}

	if cfgErr.Field != "accept_threshold" {
		t.Errorf("Expected field 'accept_threshold', got '%s'", cfgErr.Field)
	}
}
