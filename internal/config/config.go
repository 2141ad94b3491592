package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Supported dashboard export formats.
var exportFormats = map[string]bool{"json": true, "csv": true, "xlsx": true, "pdf": true}

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `json:"logging"`
	Catalog CatalogConfig `json:"catalog"`
	Export  ExportConfig  `json:"export"`
}

// LoggingConfig
type LoggingConfig struct {
	Level       string `json:"level" env:"PRESENCE_LOG_LEVEL"`
	Development bool   `json:"development" env:"PRESENCE_LOG_DEVELOPMENT"`
}

// CatalogConfig points at an optional governance catalog file that replaces
// the embedded one.
type CatalogConfig struct {
	Path string `json:"path" env:"PRESENCE_CATALOG_PATH"`
}

// ExportConfig represents dashboard export defaults
type ExportConfig struct {
	DefaultFormat string `json:"default_format" env:"PRESENCE_EXPORT_FORMAT"`
	Title         string `json:"title" env:"PRESENCE_EXPORT_TITLE"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Export: ExportConfig{
			DefaultFormat: "json",
			Title:         "Digital Presence Dashboard",
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// Load from file if exists
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// .env values never replace variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// Override with environment variables
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that cannot be enforced by the JSON schema alone.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	if !exportFormats[c.Export.DefaultFormat] {
		return fmt.Errorf("invalid export format %q", c.Export.DefaultFormat)
	}
	return nil
}
