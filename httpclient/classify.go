package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// errorBody mirrors the wire shape of structured error responses.
type errorBody struct {
	Message          string            `json:"message"`
	Error            string            `json:"error"`
	ErrorCode        string            `json:"errorCode"`
	ValidationErrors map[string]string `json:"validationErrors"`
}

// Classify maps an HTTP error status and response body to an APIError.
// The body may be structured JSON, freeform text, or absent; retryAfter is
// the Retry-After header value in seconds (0 when the header was missing).
func Classify(statusCode int, body []byte, retryAfter int) *APIError {
	parsed := parseErrorBody(body)
	message := errorMessage(statusCode, body, parsed)

	switch statusCode {
	case 400:
		return &APIError{
			Kind:        KindValidation,
			Message:     message,
			StatusCode:  statusCode,
			Code:        parsed.ErrorCode,
			FieldErrors: parsed.ValidationErrors,
		}
	case 401, 403:
		return &APIError{Kind: KindAuthentication, Message: message, StatusCode: statusCode, Code: parsed.ErrorCode}
	case 402:
		return &APIError{Kind: KindQuotaExceeded, Message: message, StatusCode: statusCode, Code: parsed.ErrorCode}
	case 404:
		return &APIError{Kind: KindNotFound, Message: message, StatusCode: statusCode, Code: parsed.ErrorCode}
	case 429:
		return &APIError{
			Kind:       KindRateLimited,
			Message:    message,
			StatusCode: statusCode,
			Code:       parsed.ErrorCode,
			RetryAfter: retryAfter,
		}
	case 500, 502, 503, 504:
		return &APIError{Kind: KindServer, Message: message, StatusCode: statusCode, Code: parsed.ErrorCode}
	default:
		return &APIError{Kind: KindUnknown, Message: message, StatusCode: statusCode, Code: parsed.ErrorCode}
	}
}

// classifyTransport maps a transport-level failure to timeout or network.
// A cancellation fired by the per-attempt deadline is a timeout; everything
// else (DNS, refused connection, TLS) is a network failure.
func classifyTransport(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError("request timed out", err)
	}
	return NewNetworkError("request execution failed", err)
}

func parseErrorBody(body []byte) errorBody {
	var parsed errorBody
	if len(body) == 0 {
		return parsed
	}
	// Decode failure is tolerated; the raw text still feeds errorMessage.
	_ = json.Unmarshal(body, &parsed)
	return parsed
}

func errorMessage(statusCode int, body []byte, parsed errorBody) string {
	if parsed.Message != "" {
		return parsed.Message
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}

// parseRetryAfter reads a Retry-After header value in seconds.
// Malformed or negative values are treated as absent.
func parseRetryAfter(value string) int {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
