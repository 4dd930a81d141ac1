package store

import (
	"context"
	"datebench/internal/config"
	"datebench/internal/dates"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sample() []dates.Date {
	return []dates.Date{
		dates.MustParse("2025-03-13"),
		dates.MustParse("2025-01-01"),
		dates.MustParse("2025-06-30"),
		dates.MustParse("2025-01-01"),
	}
}

func TestReadDates(t *testing.T) {
	input := "\ufeff2025-03-13\n\n  2025-01-01  \r\n2025-06-30\n"

	got, err := ReadDates(strings.NewReader(input), "inline")
	require.NoError(t, err)

	want := []dates.Date{
		dates.MustParse("2025-03-13"),
		dates.MustParse("2025-01-01"),
		dates.MustParse("2025-06-30"),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b dates.Date) bool { return a == b })); diff != "" {
		t.Errorf("ReadDates mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDates_ParseError(t *testing.T) {
	_, err := ReadDates(strings.NewReader("2025-03-13\n13-03-2025\n"), "input.data")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "input.data", perr.Source)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "13-03-2025", perr.Value)
	assert.Contains(t, err.Error(), "input.data:2")
}

func TestReadDates_Empty(t *testing.T) {
	got, err := ReadDates(strings.NewReader(""), "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteDates(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteDates(&b, sample()))
	assert.Equal(t, "2025-03-13\n2025-01-01\n2025-06-30\n2025-01-01\n", b.String())
}

func TestFileGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := NewFileGateway()
	defer g.Close()

	dest := filepath.Join(t.TempDir(), "out", "LocalDate.data.sorted")
	require.NoError(t, g.Save(ctx, sample(), dest))

	got, err := g.Load(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, sample(), got)
}

func TestFileGateway_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	g := NewFileGateway()
	dest := filepath.Join(t.TempDir(), "dates.data")

	require.NoError(t, g.Save(ctx, sample(), dest))
	require.NoError(t, g.Save(ctx, sample()[:1], dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-13\n", string(data))
}

func TestFileGateway_LoadMissing(t *testing.T) {
	_, err := NewFileGateway().Load(context.Background(), filepath.Join(t.TempDir(), "absent.data"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	g, err := Open(ctx, config.StorageConfig{Backend: config.BackendFile})
	require.NoError(t, err)
	assert.IsType(t, &FileGateway{}, g)

	_, err = Open(ctx, config.StorageConfig{Backend: "redis"})
	assert.Error(t, err)

	g, err = Open(ctx, config.StorageConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "bench.db"), Driver: config.DriverModernc},
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteGateway{}, g)
	require.NoError(t, g.Close())
}
