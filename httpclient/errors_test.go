package httpclient

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test constants to avoid string duplication
const (
	testConnectionFailed = "connection failed"
)

func TestAPIErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		contains []string
	}{
		{
			name:     "network error with wrapped cause",
			err:      NewNetworkError(testConnectionFailed, errors.New("dial tcp: refused")),
			contains: []string{"network error", testConnectionFailed, "refused"},
		},
		{
			name:     "timeout error",
			err:      NewTimeoutError("request timed out", errors.New("context deadline exceeded")),
			contains: []string{"timeout error", "request timed out"},
		},
		{
			name:     "validation error",
			err:      NewValidationError("Invalid URL", nil),
			contains: []string{"validation error", "Invalid URL", "400"},
		},
		{
			name:     "server error carries status",
			err:      &APIError{Kind: KindServer, Message: "bad gateway", StatusCode: 502},
			contains: []string{"server error", "bad gateway", "502"},
		},
		{
			name:     "unknown without status or cause",
			err:      &APIError{Kind: KindUnknown, Message: "mystery"},
			contains: []string{"unknown error", "mystery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, expected := range tt.contains {
				assert.Contains(t, msg, expected)
			}
		})
	}
}

func TestRetryability(t *testing.T) {
	tests := []struct {
		kind      ErrorKind
		retryable bool
	}{
		{KindValidation, false},
		{KindAuthentication, false},
		{KindNotFound, false},
		{KindQuotaExceeded, false},
		{KindUnknown, false},
		{KindRateLimited, true},
		{KindServer, true},
		{KindNetwork, true},
		{KindTimeout, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &APIError{Kind: tt.kind, Message: "test"}
			assert.Equal(t, tt.retryable, err.Retryable())
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestIsRetryableNonAPIError(t *testing.T) {
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(nil))
}

func TestErrorUnwrapping(t *testing.T) {
	underlying := errors.New("socket closed")
	netErr := NewNetworkError("connection lost", underlying)

	assert.True(t, errors.Is(netErr, underlying))

	var apiErr *APIError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", netErr), &apiErr))
	assert.Equal(t, KindNetwork, apiErr.Kind)
}

func TestIsKind(t *testing.T) {
	err := NewValidationError("bad input", map[string]string{"url": "url is required"})

	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindServer))
	assert.False(t, IsKind(errors.New("standard error"), KindValidation))
	assert.False(t, IsKind(nil, KindValidation))
}

func TestIsSuccessStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   bool
	}{
		{199, false},
		{200, true},
		{204, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSuccessStatus(tt.statusCode))
		})
	}
}
