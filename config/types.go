package config

import (
	"time"
)

// Config is the full client configuration assembled from defaults, an
// optional YAML file, and SNAPMILL_* environment variables.
type Config struct {
	BaseURL           string        `koanf:"base_url"`
	AccessKey         string        `koanf:"access_key"`
	Timeout           time.Duration `koanf:"timeout"`
	AutoRetry         bool          `koanf:"auto_retry"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Retry             RetryConfig   `koanf:"retry"`
	Log               LogConfig     `koanf:"log"`
}

// RetryConfig holds the backoff parameters.
type RetryConfig struct {
	MaxRetries   int           `koanf:"max_retries"`
	InitialDelay time.Duration `koanf:"initial_delay"`
	MaxDelay     time.Duration `koanf:"max_delay"`
	Multiplier   float64       `koanf:"multiplier"`
	JitterFactor float64       `koanf:"jitter_factor"`
}

// LogConfig controls the SDK's structured logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}
