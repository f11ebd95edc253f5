// Package config resolves client configuration from the environment.
//
// Resolution order: process environment, overlaid by an optional YAML file
// when one is supplied. A .env file in the working directory is loaded first
// so local development mirrors deployed environments.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the SaleSnipe client and gateway.
type Config struct {
	// APIBaseURL is the backend REST base address, including the API prefix.
	APIBaseURL string `env:"SALESNIPE_API_URL,default=http://localhost:5000/api" yaml:"api_base_url"`

	// RequestTimeout bounds every single HTTP attempt.
	RequestTimeout time.Duration `env:"SALESNIPE_REQUEST_TIMEOUT,default=10s" yaml:"request_timeout"`

	// RetryAttempts is the maximum attempt count per logical call.
	RetryAttempts int `env:"SALESNIPE_RETRY_ATTEMPTS,default=3" yaml:"retry_attempts"`

	// RetryBaseDelay is multiplied by the attempt number between retries.
	RetryBaseDelay time.Duration `env:"SALESNIPE_RETRY_BASE_DELAY,default=1s" yaml:"retry_base_delay"`

	// DisplayCurrency is the initial display currency before the user's
	// stored preference is known.
	DisplayCurrency string `env:"SALESNIPE_DISPLAY_CURRENCY,default=USD" yaml:"display_currency"`

	// RatesURL is the exchange-rate provider endpoint. The display currency
	// code is appended as the final path segment.
	RatesURL string `env:"SALESNIPE_RATES_URL,default=https://api.exchangerate-api.com/v4/latest" yaml:"rates_url"`

	// TokenPath is the file holding the persisted session token. Empty
	// selects a per-user default under the home directory.
	TokenPath string `env:"SALESNIPE_TOKEN_PATH" yaml:"token_path"`

	// GatewayAddr is the deployment gateway listen address.
	GatewayAddr string `env:"SALESNIPE_GATEWAY_ADDR,default=:8080" yaml:"gateway_addr"`

	// RateLimit caps outbound requests per second; zero disables limiting.
	RateLimit float64 `env:"SALESNIPE_RATE_LIMIT,default=0" yaml:"rate_limit"`

	// LogLevel is a logrus level name.
	LogLevel string `env:"SALESNIPE_LOG_LEVEL,default=info" yaml:"log_level"`
}

// Load resolves configuration from the environment. A .env file is honoured
// when present but its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithOverlay resolves configuration from the environment and then
// overlays values from a YAML file. Overlay fields that are zero-valued in
// the file keep their environment values.
func LoadWithOverlay(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config overlay: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse config overlay: %w", err)
	}
	cfg.merge(&overlay)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.APIBaseURL != "" {
		c.APIBaseURL = o.APIBaseURL
	}
	if o.RequestTimeout != 0 {
		c.RequestTimeout = o.RequestTimeout
	}
	if o.RetryAttempts != 0 {
		c.RetryAttempts = o.RetryAttempts
	}
	if o.RetryBaseDelay != 0 {
		c.RetryBaseDelay = o.RetryBaseDelay
	}
	if o.DisplayCurrency != "" {
		c.DisplayCurrency = o.DisplayCurrency
	}
	if o.RatesURL != "" {
		c.RatesURL = o.RatesURL
	}
	if o.TokenPath != "" {
		c.TokenPath = o.TokenPath
	}
	if o.GatewayAddr != "" {
		c.GatewayAddr = o.GatewayAddr
	}
	if o.RateLimit != 0 {
		c.RateLimit = o.RateLimit
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// ResolveTokenPath returns the configured token path or the per-user default.
func (c *Config) ResolveTokenPath() (string, error) {
	if c.TokenPath != "" {
		return c.TokenPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home + "/.salesnipe/token", nil
}
