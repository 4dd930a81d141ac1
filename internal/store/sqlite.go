package store

import (
	"context"
	"database/sql"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var validTable = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteGateway stores each date array in its own table of
// (position, value) rows. Resource identifiers are table names.
type SQLiteGateway struct {
	db     *sql.DB
	path   string
	driver string
}

// OpenSQLite opens (creating if needed) the database at path with the given
// database/sql driver name: "sqlite" for modernc.org/sqlite or "sqlite3"
// for github.com/mattn/go-sqlite3.
func OpenSQLite(ctx context.Context, path, driver string) (*SQLiteGateway, error) {
	log := logging.Get(logging.CategoryStorage)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log.Debug("opened sqlite database", zap.String("path", path), zap.String("driver", driver))
	return &SQLiteGateway{db: db, path: path, driver: driver}, nil
}

// Load returns the values stored in table, ordered by position.
func (g *SQLiteGateway) Load(ctx context.Context, table string) ([]dates.Date, error) {
	if !validTable.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	var n int
	err := g.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
	if err != nil {
		return nil, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: table %s in %s", ErrNotFound, table, g.path)
	}

	rows, err := g.db.QueryContext(ctx, fmt.Sprintf(`SELECT position, value FROM %s ORDER BY position`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out []dates.Date
	for rows.Next() {
		var (
			pos   int
			value string
		)
		if err := rows.Scan(&pos, &value); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		d, err := dates.Parse(value)
		if err != nil {
			return nil, &ParseError{Source: table, Line: pos + 1, Value: value, Err: err}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	logging.Get(logging.CategoryStorage).Debug("loaded dates",
		zap.String("table", table),
		zap.Int("count", len(out)))
	return out, nil
}

// Save replaces the rows of table with values in a single transaction.
func (g *SQLiteGateway) Save(ctx context.Context, values []dates.Date, table string) error {
	if !validTable.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		position INTEGER PRIMARY KEY,
		value TEXT NOT NULL
	)`, table)
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (position, value) VALUES (?, ?)`, table))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, d := range values {
		if _, err := stmt.ExecContext(ctx, i, d.String()); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}

	logging.Get(logging.CategoryStorage).Debug("saved dates",
		zap.String("table", table),
		zap.Int("count", len(values)))
	return nil
}

// Close releases the database handle.
func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
