// Package config loads ChronoLog settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/model"
)

// Config holds all ChronoLog configuration.
type Config struct {
	DBPath  string        `yaml:"db_path"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// CaptureConfig configures the capture loop.
type CaptureConfig struct {
	Interval int    `yaml:"interval"` // seconds
	Source   string `yaml:"source"`   // label for manual ingests
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DBPath: "chronolog.db",
		Capture: CaptureConfig{
			Interval: 5,
			Source:   model.SourceManual,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the program cannot run with.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.Capture.Interval <= 0 {
		return fmt.Errorf("capture.interval must be positive, got %d", c.Capture.Interval)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logging.format %q (use json or console)", c.Logging.Format)
	}
	return nil
}

// CaptureInterval returns the capture interval as a duration.
func (c *Config) CaptureInterval() time.Duration {
	return time.Duration(c.Capture.Interval) * time.Second
}
