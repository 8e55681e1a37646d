// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Poll     PollConfig     `mapstructure:"poll"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig addresses the NearFix backend.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// RequestTimeout returns the HTTP client timeout as a duration.
func (a APIConfig) RequestTimeout() time.Duration {
	return time.Duration(a.Timeout) * time.Millisecond
}

// SessionConfig controls where persisted credentials live. An empty
// StatePath falls back to the user config directory.
type SessionConfig struct {
	StatePath string `mapstructure:"state_path"`
}

// PollConfig holds the screen refresh and OTP resend timings.
type PollConfig struct {
	RefreshInterval int `mapstructure:"refresh_interval"` // seconds
	ResendCooldown  int `mapstructure:"resend_cooldown"`  // seconds
}

func (p PollConfig) Refresh() time.Duration {
	return time.Duration(p.RefreshInterval) * time.Second
}

// CheckoutConfig describes the external checkout gateway the payment
// bridge opens between order creation and verification.
type CheckoutConfig struct {
	DisplayName string `mapstructure:"display_name"`
	KeyID       string `mapstructure:"key_id"` // overrides the order-supplied key when set
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if cfg.Poll.RefreshInterval <= 0 {
		return fmt.Errorf("poll.refresh_interval must be positive")
	}
	if cfg.Poll.ResendCooldown <= 0 {
		return fmt.Errorf("poll.resend_cooldown must be positive")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		return fmt.Errorf("metrics.address is required when metrics are enabled")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "nearfix-client"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 15000
	}
	if cfg.Poll.RefreshInterval == 0 {
		cfg.Poll.RefreshInterval = 30
	}
	if cfg.Poll.ResendCooldown == 0 {
		cfg.Poll.ResendCooldown = 30
	}
	if cfg.Checkout.DisplayName == "" {
		cfg.Checkout.DisplayName = "NearFix Checkout"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}
