// Package config loads datebench settings from YAML and the environment.
package config

import (
	"datebench/internal/logging"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when --config is not given.
const DefaultPath = "datebench.yaml"

// Config holds all datebench configuration.
type Config struct {
	// Input data
	Data DataConfig `yaml:"data"`

	// Storage backend for loading and persisting date arrays
	Storage StorageConfig `yaml:"storage"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Console presentation
	UI UIConfig `yaml:"ui"`
}

// DataConfig names the input resource and where sorted output goes.
type DataConfig struct {
	// File is the resource identifier of the input dates. For the file
	// backend it is a path; for the sqlite backend the table name is used
	// instead and File is ignored.
	File string `yaml:"file"`

	// SortedSuffix is appended to the input identifier to name the sorted output.
	SortedSuffix string `yaml:"sorted_suffix"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			File:         "list/LocalDate.data",
			SortedSuffix: ".sorted",
		},
		Storage: StorageConfig{
			Backend: BackendFile,
			SQLite: SQLiteConfig{
				Path:   "data/datebench.db",
				Driver: DriverModernc,
				Table:  "dates",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		UI: UIConfig{
			Color: true,
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("DATEBENCH_DATA_FILE"); path != "" {
		c.Data.File = path
	}
	if backend := os.Getenv("DATEBENCH_STORAGE"); backend != "" {
		c.Storage.Backend = backend
	}
	if path := os.Getenv("DATEBENCH_DB"); path != "" {
		c.Storage.SQLite.Path = path
	}
	if level := os.Getenv("DATEBENCH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// SourceName returns the identifier the configured backend loads from.
func (c *Config) SourceName() string {
	if c.Storage.Backend == BackendSQLite {
		return c.Storage.SQLite.Table
	}
	return c.Data.File
}

// SortedName returns the identifier sorted arrays are written to.
// Table names cannot contain dots, so the sqlite backend uses "_sorted".
func (c *Config) SortedName() string {
	if c.Storage.Backend == BackendSQLite {
		return c.Storage.SQLite.Table + "_sorted"
	}
	return c.Data.File + c.Data.SortedSuffix
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.File == "" {
		return fmt.Errorf("data.file must not be empty")
	}
	if c.Data.SortedSuffix == "" {
		return fmt.Errorf("data.sorted_suffix must not be empty (sorted output would overwrite the input)")
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !slices.Contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	return nil
}
