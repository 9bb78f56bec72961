// Package config manages lynxdash configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lynxdash/internal/deeplynx"
)

// Config is the top-level lynxdash configuration.
type Config struct {
	// API is the Deep Lynx endpoint configuration.
	API APIConfig `yaml:"api"`

	// UI controls dashboard appearance.
	UI UIConfig `yaml:"ui"`

	// Logging controls log output.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the fetch gateway.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// UIConfig configures the dashboard.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: deeplynx.DefaultBaseURL,
			Timeout: "15s",
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "lynxdash.log",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies LYNXDASH_* environment variables on top of the
// loaded configuration.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LYNXDASH_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("LYNXDASH_TIMEOUT"); v != "" {
		c.API.Timeout = v
	}
	if v := os.Getenv("LYNXDASH_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("LYNXDASH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LYNXDASH_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// RequestTimeout parses the configured API timeout, defaulting to 15s when
// unset or invalid.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	switch c.UI.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("ui.theme must be auto, light, or dark (got %q)", c.UI.Theme)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
