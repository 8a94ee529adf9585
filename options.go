package snapmill

import (
	nethttp "net/http"
	"os"
	"time"

	"github.com/snapmill/snapmill-go/config"
	"github.com/snapmill/snapmill-go/httpclient"
	"github.com/snapmill/snapmill-go/logger"
)

type options struct {
	accessKey         string
	baseURL           string
	timeout           time.Duration
	autoRetry         bool
	retry             httpclient.RetryConfig
	requestsPerSecond float64
	log               logger.Logger
	transport         nethttp.RoundTripper
	lookupEnv         func(string) string
}

func defaultOptions() *options {
	return &options{
		baseURL:   config.DefaultBaseURL,
		timeout:   httpclient.DefaultTimeout,
		autoRetry: true,
		retry:     httpclient.DefaultRetryConfig(),
		log:       logger.Nop(),
		lookupEnv: os.Getenv,
	}
}

// Option configures a Client during construction.
type Option func(*options)

// WithAccessKey sets the API credential, overriding the environment.
func WithAccessKey(key string) Option {
	return func(o *options) { o.accessKey = key }
}

// WithBaseURL points the client at a different API origin.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithAutoRetry toggles automatic retries. When disabled each call performs
// a single attempt and surfaces its outcome directly.
func WithAutoRetry(enabled bool) Option {
	return func(o *options) { o.autoRetry = enabled }
}

// WithRetryConfig replaces the backoff parameters.
func WithRetryConfig(retry httpclient.RetryConfig) Option {
	return func(o *options) { o.retry = retry }
}

// WithRequestsPerSecond enables a client-side throttle on logical calls.
// Zero disables it.
func WithRequestsPerSecond(rps float64) Option {
	return func(o *options) { o.requestsPerSecond = rps }
}

// WithLogger sets the structured logger used by the pipeline.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithHTTPTransport sets a custom transport for TLS or proxy settings.
func WithHTTPTransport(rt nethttp.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}
