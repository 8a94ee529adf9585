package httpclient

import (
	"context"
	"encoding/json"

	"github.com/coder/quartz"

	"github.com/snapmill/snapmill-go/logger"
)

// operation is one retryable unit of work, typically a closure over execute.
type operation[T any] func(ctx context.Context) (T, error)

// Do runs a structured request through the pipeline and decodes the JSON
// body into T. An empty or malformed body on a successful response decodes
// to the zero value, never to an error.
func Do[T any](ctx context.Context, c *Client, req *Request) (T, error) {
	var out T
	resp, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if len(resp.Raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Raw, &out); err != nil {
		var zero T
		return zero, nil
	}
	return out, nil
}

// DoBinary runs a binary request through the pipeline and returns the raw
// response bytes unmodified.
func DoBinary(ctx context.Context, c *Client, req *Request) ([]byte, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Raw, nil
}

// Do executes the request, retrying per the client configuration. With
// AutoRetry disabled the single attempt's outcome is surfaced directly.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	op := func(ctx context.Context) (*Response, error) {
		return c.execute(ctx, req)
	}
	if !c.config.AutoRetry {
		return op(ctx)
	}
	return runWithRetry(ctx, c.clock, c.config.Retry, c.log, op)
}

// runWithRetry drives an operation through up to cfg.MaxRetries+1 attempts.
// Non-retryable failures and exhaustion surface the most recent error
// verbatim; intermediate retryable failures are only logged. Waits between
// attempts go through the clock and abort on context cancellation.
func runWithRetry[T any](ctx context.Context, clock quartz.Clock, cfg RetryConfig, log logger.Logger, op operation[T]) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if !IsRetryable(err) || attempt >= cfg.MaxRetries {
			return zero, err
		}

		delay := cfg.DelayFor(attempt, err)
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("retrying request")

		timer := clock.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
