package config

// ValidLevels lists the accepted logging.level values. Matching is
// case-insensitive and "warning" is an alias for "warn".
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidFormats lists the accepted logging.format values.
var ValidFormats = []string{"json", "text"}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
