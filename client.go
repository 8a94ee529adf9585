// Package snapmill is the Go client for the Snapmill screenshot API.
// A Client turns each endpoint call into one or more network attempts with
// typed error classification, capped exponential backoff with jitter, and
// per-attempt timeouts.
package snapmill

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/snapmill/snapmill-go/config"
	"github.com/snapmill/snapmill-go/httpclient"
	"github.com/snapmill/snapmill-go/logger"
)

// EnvAccessKey is the environment variable consulted when no access key
// option is given. An explicit WithAccessKey always wins.
const EnvAccessKey = "SNAPMILL_ACCESS_KEY"

// ErrMissingAccessKey is returned by New when no credential is configured.
// It is a construction-time failure, distinct from the request error taxonomy.
var ErrMissingAccessKey = errors.New("snapmill: access key is required (use WithAccessKey or set " + EnvAccessKey + ")")

// Client is the SDK entry point. It is safe for concurrent use; the
// configuration is immutable after construction and each call carries its
// own state.
type Client struct {
	rest     *httpclient.Client
	log      logger.Logger
	validate *validator.Validate
	limiter  *rate.Limiter
}

// New creates a Client. The access key is resolved once: explicit option
// first, then the SNAPMILL_ACCESS_KEY environment variable.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.accessKey == "" {
		o.accessKey = o.lookupEnv(EnvAccessKey)
	}
	if o.accessKey == "" {
		return nil, ErrMissingAccessKey
	}

	rest, err := httpclient.New(&httpclient.Config{
		BaseURL:   o.baseURL,
		AccessKey: o.accessKey,
		Timeout:   o.timeout,
		AutoRetry: o.autoRetry,
		Retry:     o.retry,
	}, o.log)
	if err != nil {
		return nil, fmt.Errorf("snapmill: %w", err)
	}
	if o.transport != nil {
		rest.WithTransport(o.transport)
	}

	c := &Client{
		rest:     rest,
		log:      o.log,
		validate: validator.New(),
	}
	if o.requestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(o.requestsPerSecond), 1)
	}
	return c, nil
}

// NewFromConfig creates a Client from a loaded configuration, typically the
// result of config.Load.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
		WithAutoRetry(cfg.AutoRetry),
		WithRetryConfig(httpclient.RetryConfig{
			MaxRetries:   cfg.Retry.MaxRetries,
			InitialDelay: cfg.Retry.InitialDelay,
			MaxDelay:     cfg.Retry.MaxDelay,
			Multiplier:   cfg.Retry.Multiplier,
			JitterFactor: cfg.Retry.JitterFactor,
		}),
		WithRequestsPerSecond(cfg.RequestsPerSecond),
		WithLogger(logger.New(cfg.Log.Level, cfg.Log.Pretty)),
	}
	if cfg.AccessKey != "" {
		base = append(base, WithAccessKey(cfg.AccessKey))
	}
	return New(append(base, opts...)...)
}

// prepare validates the request payload and applies the client-side rate
// limiter before any network attempt is made.
func (c *Client) prepare(ctx context.Context, payload any) error {
	if payload != nil {
		if err := c.validatePayload(payload); err != nil {
			return err
		}
	}
	if c.limiter != nil {
		// One token per logical call; retries do not consume extra tokens.
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// validatePayload maps struct validation failures onto the validation error
// kind so callers branch on one taxonomy for local and remote rejections.
func (c *Client) validatePayload(payload any) error {
	err := c.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors[fe.Field()] = fieldErrorMessage(fe)
	}
	return httpclient.NewValidationError("request validation failed", fieldErrors)
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation", fe.Field())
	}
}
