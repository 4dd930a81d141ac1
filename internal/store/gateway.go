// Package store loads and persists date arrays.
//
// Two backends implement Gateway: a text file with one ISO date per line,
// and a SQLite table of (position, value) rows. Both identify resources by
// a plain string: a path for files, a table name for SQLite.
package store

import (
	"bufio"
	"context"
	"datebench/internal/config"
	"datebench/internal/dates"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotFound is returned (wrapped) when the requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Gateway reads and writes sequences of dates.
type Gateway interface {
	// Load returns the dates stored in source, in stored order.
	Load(ctx context.Context, source string) ([]dates.Date, error)
	// Save replaces the contents of dest with values.
	Save(ctx context.Context, values []dates.Date, dest string) error
	Close() error
}

// ParseError reports a record that is not an ISO calendar date.
type ParseError struct {
	Source string
	Line   int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: cannot parse %q as a date", e.Source, e.Line, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Open returns the gateway selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Gateway, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileGateway(), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLite.Path, cfg.SQLite.Driver)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// ReadDates parses one date per line from r. Blank lines are skipped and
// surrounding whitespace is ignored. source only labels errors.
func ReadDates(r io.Reader, source string) ([]dates.Date, error) {
	var out []dates.Date
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if text == "" {
			continue
		}
		d, err := dates.Parse(text)
		if err != nil {
			return nil, &ParseError{Source: source, Line: line, Value: text, Err: err}
		}
		out = append(out, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return out, nil
}

// WriteDates writes one ISO date per line to w.
func WriteDates(w io.Writer, values []dates.Date) error {
	bw := bufio.NewWriter(w)
	for _, d := range values {
		if _, err := bw.WriteString(d.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
