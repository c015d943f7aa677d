package tmt

import "fmt"

// ValidationError indicates malformed or missing user input. It is
// user-correctable and carries the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// DuplicateKeyError indicates a translation key that already exists.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("translation key already exists: %s", e.Key)
}

// DuplicateLanguageError indicates a language code that is already configured.
type DuplicateLanguageError struct {
	Code string
}

func (e *DuplicateLanguageError) Error() string {
	return fmt.Sprintf("language already exists: %s", e.Code)
}

// NotFoundError indicates an id that resolves to no stored document.
type NotFoundError struct {
	Kind string // "translation" or "language"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ProviderError indicates a translation provider failure (API error, rate
// limit, timeout). Within a fan-out it is swallowed into a fallback value and
// never aborts the whole operation.
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// StoreError indicates a persistence layer failure. It is fatal for the
// current request and not retried internally.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("store error: %s", e.Op)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
