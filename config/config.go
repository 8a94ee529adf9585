// Package config loads client configuration from defaults, an optional
// YAML file, and environment variables, in increasing priority order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultBaseURL is the production API origin
	DefaultBaseURL = "https://api.snapmill.dev"

	// DefaultConfigFile is the YAML file consulted when present
	DefaultConfigFile = "snapmill.yaml"

	// EnvPrefix namespaces the environment variables read by Load
	EnvPrefix = "SNAPMILL_"
)

// Load assembles the configuration with priority:
// 1. SNAPMILL_* environment variables (highest)
// 2. A snapmill.yaml file in the working directory, when present
// 3. Built-in defaults (lowest)
func Load() (*Config, error) {
	return LoadFile(DefaultConfigFile)
}

// LoadFile behaves like Load but reads the named YAML file.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// The YAML file is optional; only surface real read failures.
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	if err := k.Load(envprovider.Provider(EnvPrefix, ".", func(s string) string {
		// Double underscore separates sections so key-internal underscores
		// survive: SNAPMILL_RETRY__MAX_RETRIES becomes retry.max_retries.
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"base_url":            DefaultBaseURL,
		"timeout":             30 * time.Second,
		"auto_retry":          true,
		"requests_per_second": 0.0,

		"retry.max_retries":   3,
		"retry.initial_delay": 500 * time.Millisecond,
		"retry.max_delay":     30 * time.Second,
		"retry.multiplier":    2.0,
		"retry.jitter_factor": 0.2,

		"log.level":  "info",
		"log.pretty": false,
	}
}

// Validate checks the configuration invariants.
func Validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}
	if cfg.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must be non-negative, got %g", cfg.RequestsPerSecond)
	}
	if err := validateRetry(&cfg.Retry); err != nil {
		return fmt.Errorf("retry config: %w", err)
	}
	return nil
}

func validateRetry(cfg *RetryConfig) error {
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", cfg.MaxRetries)
	}
	if cfg.InitialDelay <= 0 {
		return fmt.Errorf("initial delay must be positive, got %v", cfg.InitialDelay)
	}
	if cfg.InitialDelay > cfg.MaxDelay {
		return fmt.Errorf("initial delay %v exceeds max delay %v", cfg.InitialDelay, cfg.MaxDelay)
	}
	if cfg.Multiplier <= 1 {
		return fmt.Errorf("multiplier must be greater than 1, got %g", cfg.Multiplier)
	}
	if cfg.JitterFactor < 0 || cfg.JitterFactor > 1 {
		return fmt.Errorf("jitter factor must be in [0, 1], got %g", cfg.JitterFactor)
	}
	return nil
}
