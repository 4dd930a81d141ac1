// Package logging provides categorized structured logging for datebench.
// Every subsystem logs through a named child of one zap base logger, so log
// lines can be filtered by category ("storage", "list", "queue", ...).
// Until Initialize is called every category logs to a no-op logger.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot        Category = "boot"        // CLI startup, config loading
	CategoryHarness     Category = "harness"     // Coordinator and component isolation
	CategoryStorage     Category = "storage"     // Loading and persisting date arrays
	CategoryList        Category = "list"        // Sequence container operations
	CategoryQueue       Category = "queue"       // Priority queue operations
	CategorySet         Category = "set"         // Hash set operations
	CategoryPerformance Category = "performance" // Operation timings
)

var (
	base   = zap.NewNop()
	baseMu sync.RWMutex
)

// levels maps config level names to zap levels.
var levels = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
}

// ParseLevel resolves a config level name. Names are case-insensitive.
func ParseLevel(name string) (zapcore.Level, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level %q", name)
	}
	return lvl, nil
}

// New builds a production zap logger writing to stderr.
// format is "json" (default) or "text".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.DisableStacktrace = lvl > zapcore.DebugLevel
	switch format {
	case "", "json":
	case "text", "console":
		config.Encoding = "console"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Initialize installs the base logger all categories derive from.
// A nil logger resets logging to a no-op.
func Initialize(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseMu.Lock()
	base = logger
	baseMu.Unlock()
}

// Get returns the logger for the given category.
func Get(category Category) *zap.Logger {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return base.Named(string(category))
}

// Sync flushes the base logger. Errors from syncing stderr on some
// platforms are not actionable and are dropped.
func Sync() {
	baseMu.RLock()
	defer baseMu.RUnlock()
	_ = base.Sync()
}
