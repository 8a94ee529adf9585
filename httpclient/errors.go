package httpclient

import (
	"errors"
	"fmt"
)

// ErrorKind defines the category of a request failure.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindNotFound       ErrorKind = "not_found"
	KindRateLimited    ErrorKind = "rate_limited"
	KindQuotaExceeded  ErrorKind = "quota_exceeded"
	KindServer         ErrorKind = "server"
	KindNetwork        ErrorKind = "network"
	KindTimeout        ErrorKind = "timeout"
	KindUnknown        ErrorKind = "unknown"
)

// APIError is the single error type surfaced for every failed request.
// Kind selects the variant; the remaining fields are populated per kind:
// StatusCode and Code for HTTP-mapped kinds, RetryAfter for rate_limited,
// FieldErrors for validation. Network and timeout failures carry no status.
type APIError struct {
	Kind        ErrorKind
	Message     string
	StatusCode  int
	Code        string
	RetryAfter  int
	FieldErrors map[string]string
	wrapped     error
}

func (e *APIError) Error() string {
	switch {
	case e.wrapped != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.wrapped)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s error: %s (status: %d)", e.Kind, e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
}

func (e *APIError) Unwrap() error {
	return e.wrapped
}

// Retryable reports whether a retry may resolve this failure. Rate limiting,
// server errors, and transient transport conditions qualify; bad input, bad
// credentials, missing resources, and exhausted quota never do.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindServer, KindNetwork, KindTimeout:
		return true
	default:
		return false
	}
}

// NewValidationError creates a validation error with optional per-field messages.
func NewValidationError(message string, fieldErrors map[string]string) *APIError {
	return &APIError{
		Kind:        KindValidation,
		Message:     message,
		StatusCode:  400,
		FieldErrors: fieldErrors,
	}
}

// NewNetworkError creates a network error wrapping the transport failure.
func NewNetworkError(message string, wrapped error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: message,
		wrapped: wrapped,
	}
}

// NewTimeoutError creates a timeout error wrapping the cancellation cause.
func NewTimeoutError(message string, wrapped error) *APIError {
	return &APIError{
		Kind:    KindTimeout,
		Message: message,
		wrapped: wrapped,
	}
}

// IsKind checks if an error is an APIError of a specific kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// IsRetryable checks if an error is an APIError that a retry may resolve.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return false
}

// IsSuccessStatus checks if a status code represents success (2xx).
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
