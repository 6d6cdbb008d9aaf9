package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/spf13/viper"
)

// APIConfig holds the settings for talking to the price board API.
type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RetryDelay        time.Duration
	RequestsPerSecond float64
	Burst             int
	RetryAttempts     int
}

// DefaultAPIConfig returns an APIConfig with sensible defaults.
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:           "http://localhost:8080/api/",
		Timeout:           15 * time.Second,
		RequestsPerSecond: 5,
		Burst:             5,
		RetryAttempts:     3,
		RetryDelay:        250 * time.Millisecond,
	}
}

// Validate checks if the configuration is valid.
func (c *APIConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: api base url is required", common.ErrMissingConfig)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: api base url: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api base url must be http or https, got %q", common.ErrInvalidConfig, c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", common.ErrInvalidConfig)
	}

	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests per second must be positive", common.ErrInvalidConfig)
	}

	if c.Burst <= 0 {
		return fmt.Errorf("%w: burst must be positive", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}

// LoadAPIConfig loads API configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or VEGBOARD_ env vars)
// 2. Direct environment variable PRICE_BOARD_API_URL
// 3. Default values
func LoadAPIConfig() (*APIConfig, error) {
	cfg := DefaultAPIConfig()

	if v := viper.GetString("api.base_url"); v != "" {
		cfg.BaseURL = v
	} else if v := os.Getenv("PRICE_BOARD_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := viper.GetDuration("api.timeout"); v != 0 {
		cfg.Timeout = v
	}
	if v := viper.GetFloat64("api.requests_per_second"); v != 0 {
		cfg.RequestsPerSecond = v
	}
	if v := viper.GetInt("api.burst"); v != 0 {
		cfg.Burst = v
	}
	if viper.IsSet("api.retry_attempts") {
		cfg.RetryAttempts = viper.GetInt("api.retry_attempts")
	}
	if viper.IsSet("api.retry_delay") {
		cfg.RetryDelay = viper.GetDuration("api.retry_delay")
	}

	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
