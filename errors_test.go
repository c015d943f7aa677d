package tmt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "key", Message: "must not be empty"}
	if !strings.Contains(err.Error(), "key") {
		t.Errorf("Expected field in message, got %q", err.Error())
	}

	var target *ValidationError
	if !errors.As(error(err), &target) {
		t.Error("errors.As failed for ValidationError")
	}
}

func TestDuplicateErrors(t *testing.T) {
	keyErr := &DuplicateKeyError{Key: "HOME_TITLE"}
	if !strings.Contains(keyErr.Error(), "HOME_TITLE") {
		t.Errorf("Expected key in message, got %q", keyErr.Error())
	}

	langErr := &DuplicateLanguageError{Code: "es"}
	if !strings.Contains(langErr.Error(), "es") {
		t.Errorf("Expected code in message, got %q", langErr.Error())
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "translation", ID: "abc123"}
	if !strings.Contains(err.Error(), "translation") || !strings.Contains(err.Error(), "abc123") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &ProviderError{Message: "API call failed", Cause: cause, Retryable: true}

	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Expected cause in message, got %q", err.Error())
	}
}

func TestProviderError_NoCause(t *testing.T) {
	err := &ProviderError{Message: "no response"}
	if err.Error() != "provider error: no response" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("no reachable servers")
	err := &StoreError{Op: "insert translation", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose cause")
	}

	var target *StoreError
	wrapped := fmt.Errorf("creating: %w", err)
	if !errors.As(wrapped, &target) {
		t.Error("errors.As failed through wrapping")
	}
}
