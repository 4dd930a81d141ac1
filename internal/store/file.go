package store

import (
	"context"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileGateway stores dates in text files, one ISO date per line.
type FileGateway struct{}

// NewFileGateway returns a gateway over the local filesystem.
func NewFileGateway() *FileGateway {
	return &FileGateway{}
}

// Load reads the dates in the file at source.
func (g *FileGateway) Load(_ context.Context, source string) ([]dates.Date, error) {
	f, err := os.Open(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, source)
		}
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer f.Close()

	values, err := ReadDates(f, source)
	if err != nil {
		return nil, err
	}
	logging.Get(logging.CategoryStorage).Debug("loaded dates",
		zap.String("source", source),
		zap.Int("count", len(values)))
	return values, nil
}

// Save writes values to dest, creating parent directories and truncating
// any existing file.
func (g *FileGateway) Save(_ context.Context, values []dates.Date, dest string) error {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if err := WriteDates(f, values); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}

	logging.Get(logging.CategoryStorage).Debug("saved dates",
		zap.String("dest", dest),
		zap.Int("count", len(values)))
	return nil
}

// Close is a no-op; files are closed after each call.
func (g *FileGateway) Close() error { return nil }
