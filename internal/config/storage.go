package config

import (
	"fmt"
	"regexp"
	"slices"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// SQL drivers for the sqlite backend.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3, cgo
)

// ValidBackends lists the supported storage backends.
var ValidBackends = []string{BackendFile, BackendSQLite}

// ValidDrivers lists the supported sqlite drivers.
var ValidDrivers = []string{DriverModernc, DriverMattn}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// StorageConfig selects where date arrays are read from and written to.
type StorageConfig struct {
	Backend string       `yaml:"backend"` // file, sqlite
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig configures the sqlite backend.
type SQLiteConfig struct {
	Path   string `yaml:"path"`
	Driver string `yaml:"driver"` // sqlite (modernc), sqlite3 (mattn)
	Table  string `yaml:"table"`
}

// Validate checks the backend selection and, for sqlite, its settings.
func (s StorageConfig) Validate() error {
	if !slices.Contains(ValidBackends, s.Backend) {
		return fmt.Errorf("invalid storage backend: %s (valid: %v)", s.Backend, ValidBackends)
	}
	if s.Backend != BackendSQLite {
		return nil
	}
	if s.SQLite.Path == "" {
		return fmt.Errorf("storage.sqlite.path must not be empty")
	}
	if !slices.Contains(ValidDrivers, s.SQLite.Driver) {
		return fmt.Errorf("invalid sqlite driver: %s (valid: %v)", s.SQLite.Driver, ValidDrivers)
	}
	if !tableName.MatchString(s.SQLite.Table) {
		return fmt.Errorf("invalid sqlite table name: %q", s.SQLite.Table)
	}
	return nil
}
