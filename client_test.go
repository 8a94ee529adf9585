package snapmill

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapmill/snapmill-go/config"
	"github.com/snapmill/snapmill-go/httpclient"
)

func TestNewRequiresAccessKey(t *testing.T) {
	t.Setenv(EnvAccessKey, "")

	_, err := New()

	assert.ErrorIs(t, err, ErrMissingAccessKey)
}

func TestNewReadsAccessKeyFromEnvironment(t *testing.T) {
	t.Setenv(EnvAccessKey, "env-key")

	client, err := New()

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewExplicitKeyWinsOverEnvironment(t *testing.T) {
	t.Setenv(EnvAccessKey, "env-key")

	// Construction succeeds either way; the explicit option must not be
	// rejected in favor of the environment value.
	client, err := New(WithAccessKey("explicit-key"))

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewRejectsInvalidRetryConfig(t *testing.T) {
	_, err := New(
		WithAccessKey("key"),
		WithRetryConfig(httpclient.RetryConfig{
			MaxRetries:   3,
			InitialDelay: time.Minute,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		}),
	)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingAccessKey)
	assert.Contains(t, err.Error(), "retry config")
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{
		BaseURL:   "https://api.example.com",
		AccessKey: "cfg-key",
		Timeout:   10 * time.Second,
		AutoRetry: true,
		Retry: config.RetryConfig{
			MaxRetries:   2,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
			JitterFactor: 0.1,
		},
		Log: config.LogConfig{Level: "error"},
	}

	client, err := NewFromConfig(cfg)

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestConstructionErrorIsNotAPIError(t *testing.T) {
	t.Setenv(EnvAccessKey, "")

	_, err := New()

	var apiErr *httpclient.APIError
	assert.False(t, errors.As(err, &apiErr), "construction failures must stay outside the request taxonomy")
}
