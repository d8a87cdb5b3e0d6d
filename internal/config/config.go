// Package config loads and watches the shopsense configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all shopsense settings.
type Config struct {
	// API configures the storefront service connection.
	API APIConfig `yaml:"api"`

	// UI configures the terminal presentation.
	UI UIConfig `yaml:"ui"`

	// Logging configures the file logger.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the storefront API client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
	// RecommendationLimit bounds the similar-products carousel.
	RecommendationLimit int `yaml:"recommendation_limit"`
}

// UIConfig configures theme and layout preferences.
type UIConfig struct {
	Theme string `yaml:"theme"` // light, dark, auto
}

// LoggingConfig configures the zap file logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:             "http://localhost:5000",
			Timeout:             "10s",
			RecommendationLimit: 4,
		},
		UI:      UIConfig{Theme: "auto"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Dir returns the directory holding the config file and logs.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".shopsense"), nil
}

// File returns the full path of the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from path, falling back to defaults when the file
// does not exist. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config to path, creating the directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RequestTimeout parses the configured timeout, falling back to 10s on a
// malformed value.
func (c Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SHOPSENSE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SHOPSENSE_DARK_MODE"); v == "1" {
		c.UI.Theme = "dark"
	}
	if v := os.Getenv("SHOPSENSE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
