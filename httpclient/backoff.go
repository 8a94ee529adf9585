package httpclient

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const (
	// DefaultMaxRetries is the default number of retries after the initial attempt
	DefaultMaxRetries = 3

	// DefaultInitialDelay is the default delay before the first retry
	DefaultInitialDelay = 500 * time.Millisecond

	// DefaultMaxDelay is the ceiling for computed backoff delays
	DefaultMaxDelay = 30 * time.Second

	// DefaultMultiplier is the default exponential growth factor
	DefaultMultiplier = 2.0

	// DefaultJitterFactor is the default fraction of the delay that is randomized
	DefaultJitterFactor = 0.2
)

// jitterRand is the randomness source for jitter; tests override it.
var jitterRand = rand.Float64

// RetryConfig holds the backoff parameters. It is constructed once per
// client and read-only afterwards, so it is safe to share across calls.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64
}

// DefaultRetryConfig returns the retry parameters used when the caller
// supplies none.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Multiplier:   DefaultMultiplier,
		JitterFactor: DefaultJitterFactor,
	}
}

// Validate checks the cross-field invariants of the configuration.
func (c RetryConfig) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", c.MaxRetries)
	}
	if c.InitialDelay <= 0 {
		return fmt.Errorf("initial delay must be positive, got %v", c.InitialDelay)
	}
	if c.InitialDelay > c.MaxDelay {
		return fmt.Errorf("initial delay %v exceeds max delay %v", c.InitialDelay, c.MaxDelay)
	}
	if c.Multiplier <= 1 {
		return fmt.Errorf("multiplier must be greater than 1, got %g", c.Multiplier)
	}
	if c.JitterFactor < 0 || c.JitterFactor > 1 {
		return fmt.Errorf("jitter factor must be in [0, 1], got %g", c.JitterFactor)
	}
	return nil
}

// Delay computes the backoff delay for a zero-based retry attempt:
// initial × multiplier^attempt, capped at MaxDelay, then perturbed by
// uniform jitter in ±JitterFactor of the capped base. The result is
// clamped to [0, MaxDelay × (1 + JitterFactor)].
func (c RetryConfig) Delay(attempt int) time.Duration {
	base := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	base = math.Min(base, float64(c.MaxDelay))

	delay := base
	if c.JitterFactor > 0 {
		delay += base * c.JitterFactor * (2*jitterRand() - 1)
	}

	delay = math.Max(delay, 0)
	delay = math.Min(delay, float64(c.MaxDelay)*(1+c.JitterFactor))
	return time.Duration(delay)
}

// DelayFor computes the wait before the next attempt following err.
// A rate-limited failure carrying a Retry-After hint overrides the local
// backoff entirely; the server's instruction wins.
func (c RetryConfig) DelayFor(attempt int, err error) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindRateLimited && apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second
	}
	return c.Delay(attempt)
}
