// Package httpclient implements the request execution pipeline shared by
// every endpoint of the SDK: building and dispatching a single attempt,
// classifying failures into a fixed error taxonomy, and retrying retryable
// failures with capped exponential backoff and jitter.
package httpclient

import (
	nethttp "net/http"
	"time"
)

const (
	// HeaderAccessKey is the header carrying the API credential
	HeaderAccessKey = "X-Access-Key"

	// DefaultTimeout is the per-attempt request timeout
	DefaultTimeout = 30 * time.Second

	contentTypeJSON = "application/json"
	acceptBinary    = "image/*, application/pdf"
)

// Request describes one logical API call. Query entries with nil values are
// omitted from the URL. Body, when non-nil, is JSON-encoded before send.
// Binary selects raw-byte response decoding instead of JSON.
type Request struct {
	Method string
	Path   string
	Query  map[string]any
	Body   any
	Binary bool
}

// Response is a successful attempt outcome. Raw holds the undecoded body
// bytes; structured endpoints decode them via Do.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Raw        []byte
}

// Config holds the pipeline configuration. It is immutable after the
// client is constructed.
type Config struct {
	// BaseURL is the API origin; trailing slashes are stripped.
	BaseURL string
	// AccessKey is sent on every attempt in the X-Access-Key header.
	AccessKey string
	// Timeout bounds each individual attempt. Retries each get a fresh
	// timeout window, so worst-case wall-clock time for a call is
	// (MaxRetries+1) × (Timeout + max computed delay).
	Timeout time.Duration
	// AutoRetry enables the retry controller. When false each call is a
	// single attempt and its outcome is surfaced directly.
	AutoRetry bool
	// Retry holds the backoff parameters consulted between attempts.
	Retry RetryConfig
}
