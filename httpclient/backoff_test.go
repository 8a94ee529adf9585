package httpclient

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroJitterConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0,
	}
}

func TestDelayWithoutJitterIsExact(t *testing.T) {
	cfg := zeroJitterConfig()

	for attempt := 0; attempt < 12; attempt++ {
		expected := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
		expected = math.Min(expected, float64(cfg.MaxDelay))

		assert.Equal(t, time.Duration(expected), cfg.Delay(attempt), "attempt %d", attempt)
	}
}

func TestDelayFirstRetryUsesInitialDelay(t *testing.T) {
	cfg := zeroJitterConfig()
	assert.Equal(t, cfg.InitialDelay, cfg.Delay(0))
}

func TestDelayCapsAtMaxDelay(t *testing.T) {
	cfg := zeroJitterConfig()
	// 500ms × 2^10 = 512s, well past the 30s ceiling.
	assert.Equal(t, cfg.MaxDelay, cfg.Delay(10))
}

func TestDelayJitterStaysInBounds(t *testing.T) {
	cfg := zeroJitterConfig()
	cfg.JitterFactor = 0.3

	for attempt := 0; attempt < 8; attempt++ {
		base := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
		base = math.Min(base, float64(cfg.MaxDelay))
		lower := time.Duration(base * (1 - cfg.JitterFactor))
		upper := time.Duration(base * (1 + cfg.JitterFactor))

		for i := 0; i < 50; i++ {
			d := cfg.Delay(attempt)
			assert.GreaterOrEqual(t, d, lower, "attempt %d", attempt)
			assert.LessOrEqual(t, d, upper, "attempt %d", attempt)
		}
	}
}

func TestDelayJitterVaries(t *testing.T) {
	cfg := zeroJitterConfig()
	cfg.JitterFactor = 0.5

	seen := make(map[time.Duration]bool)
	for i := 0; i < 100; i++ {
		seen[cfg.Delay(3)] = true
	}
	// Statistical check: 100 draws over a multi-second window should not
	// collapse to a single value.
	assert.Greater(t, len(seen), 1)
}

func TestDelayNeverNegative(t *testing.T) {
	cfg := zeroJitterConfig()
	cfg.JitterFactor = 1.0

	// Force the most negative jitter draw.
	original := jitterRand
	jitterRand = func() float64 { return 0 }
	defer func() { jitterRand = original }()

	assert.Equal(t, time.Duration(0), cfg.Delay(0))
}

func TestDelayClampedAboveCap(t *testing.T) {
	cfg := zeroJitterConfig()
	cfg.JitterFactor = 0.5

	// Force the most positive jitter draw at an attempt already capped.
	original := jitterRand
	jitterRand = func() float64 { return 1 }
	defer func() { jitterRand = original }()

	ceiling := time.Duration(float64(cfg.MaxDelay) * (1 + cfg.JitterFactor))
	assert.LessOrEqual(t, cfg.Delay(20), ceiling)
}

func TestDelayForRetryAfterOverride(t *testing.T) {
	cfg := zeroJitterConfig()
	rateLimited := &APIError{Kind: KindRateLimited, Message: "slow down", StatusCode: 429, RetryAfter: 5}

	// The server hint replaces the local computation at every attempt index.
	for attempt := 0; attempt < 4; attempt++ {
		assert.Equal(t, 5*time.Second, cfg.DelayFor(attempt, rateLimited))
	}
}

func TestDelayForWithoutHintUsesBackoff(t *testing.T) {
	cfg := zeroJitterConfig()

	serverErr := &APIError{Kind: KindServer, Message: "bad gateway", StatusCode: 502}
	assert.Equal(t, cfg.Delay(1), cfg.DelayFor(1, serverErr))

	// Rate limited without a hint also falls back to local backoff.
	noHint := &APIError{Kind: KindRateLimited, Message: "slow down", StatusCode: 429}
	assert.Equal(t, cfg.Delay(0), cfg.DelayFor(0, noHint))

	assert.Equal(t, cfg.Delay(0), cfg.DelayFor(0, errors.New("plain error")))
}

func TestRetryConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RetryConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *RetryConfig) {},
		},
		{
			name:    "negative max retries",
			mutate:  func(c *RetryConfig) { c.MaxRetries = -1 },
			wantErr: "max retries",
		},
		{
			name:    "zero initial delay",
			mutate:  func(c *RetryConfig) { c.InitialDelay = 0 },
			wantErr: "initial delay",
		},
		{
			name:    "initial delay above max delay",
			mutate:  func(c *RetryConfig) { c.InitialDelay = time.Minute },
			wantErr: "exceeds max delay",
		},
		{
			name:    "multiplier not above one",
			mutate:  func(c *RetryConfig) { c.Multiplier = 1.0 },
			wantErr: "multiplier",
		},
		{
			name:    "jitter above one",
			mutate:  func(c *RetryConfig) { c.JitterFactor = 1.5 },
			wantErr: "jitter factor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRetryConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultInitialDelay, cfg.InitialDelay)
	assert.Equal(t, DefaultMaxDelay, cfg.MaxDelay)
	assert.Equal(t, DefaultMultiplier, cfg.Multiplier)
	assert.Equal(t, DefaultJitterFactor, cfg.JitterFactor)
}
