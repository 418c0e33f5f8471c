// Package config loads the optional flintdb configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of a flintdb installation. Every field has a
// working default; the file only overrides what it names.
type Config struct {
	// DataDir is the root directory holding one subdirectory per
	// database.
	DataDir string `yaml:"data_dir"`

	// LogLevel is one of debug, info, warning, error, none.
	LogLevel string `yaml:"log_level"`

	// ExportDir is the default destination for Parquet exports.
	ExportDir string `yaml:"export_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:   "data",
		LogLevel:  "info",
		ExportDir: "exports",
	}
}

// Load reads a YAML configuration file, applying defaults for absent
// fields. A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = Default().DataDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = Default().ExportDir
	}
	return cfg, nil
}
