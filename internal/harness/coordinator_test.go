package harness

import (
	"bytes"
	"context"
	"datebench/internal/dates"
	"datebench/internal/report"
	"datebench/internal/store"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "LocalDate.data")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestRunDefaultComponents(t *testing.T) {
	source := writeInput(t, "2025-03-13", "2025-01-01", "2025-06-30")
	dest := source + ".sorted"

	var buf bytes.Buffer
	printer := report.NewPrinter(&buf, false)
	c := New(store.NewFileGateway(), printer, source, dest)

	outcomes, err := c.Run(context.Background(), dates.MustParse("2025-01-01"))
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.Equal(t, "List", outcomes[0].Name)
	assert.Equal(t, "Queue", outcomes[1].Name)
	assert.Equal(t, "HashSet", outcomes[2].Name)
	for _, o := range outcomes {
		assert.NoError(t, o.Err, o.Name)
	}

	out := buf.String()
	list := strings.Index(out, "PROCESSING DATA USING LIST")
	queue := strings.Index(out, "PROCESSING DATA USING QUEUE")
	set := strings.Index(out, "PROCESSING DATA USING SET")
	assert.True(t, list >= 0 && list < queue && queue < set, "sections out of order:\n%s", out)
	assert.Contains(t, out, "Element '2025-01-01' found in Queue")
	assert.Contains(t, out, "Element '2025-01-01' found in HashSet")
	assert.Contains(t, out, "Minimum value in List: 2025-01-01")
	assert.Contains(t, out, "Maximum value in HashSet: 2025-06-30")
	assert.Contains(t, out, "TIMING SUMMARY")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), strings.Repeat("=", 80)))

	// list 10, queue 7, set 7
	assert.Equal(t, 24, printer.Recorder().Len())

	sorted, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01\n2025-03-13\n2025-06-30\n", string(sorted))

	original, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-13\n2025-01-01\n2025-06-30\n", string(original))
}

func TestRunIsolatesComponentFailures(t *testing.T) {
	source := writeInput(t, "2025-03-13", "2025-01-01")

	var ran []string
	record := func(name string) func(context.Context, dates.Date, []dates.Date) error {
		return func(context.Context, dates.Date, []dates.Date) error {
			ran = append(ran, name)
			return nil
		}
	}

	components := []Component{
		{Name: "first", Section: "FIRST", Run: func(context.Context, dates.Date, []dates.Date) error {
			ran = append(ran, "first")
			return errors.New("disk full")
		}},
		{Name: "second", Section: "SECOND", Run: func(context.Context, dates.Date, []dates.Date) error {
			ran = append(ran, "second")
			var m map[string]int
			m["boom"]++
			return nil
		}},
		{Name: "third", Section: "THIRD", Run: record("third")},
	}

	var buf bytes.Buffer
	c := New(store.NewFileGateway(), report.NewPrinter(&buf, false), source, "", components...)

	outcomes, err := c.Run(context.Background(), dates.MustParse("2025-01-01"))
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, ran)
	require.Len(t, outcomes, 3)
	assert.EqualError(t, outcomes[0].Err, "disk full")
	require.Error(t, outcomes[1].Err)
	assert.Contains(t, outcomes[1].Err.Error(), "panic")
	assert.NoError(t, outcomes[2].Err)

	out := buf.String()
	assert.Contains(t, out, "Error while processing first: disk full")
	assert.Contains(t, out, "Error while processing second: panic")
	assert.Contains(t, out, "ANALYSIS COMPLETE")
}

func TestRunComponentsReceiveSameSnapshot(t *testing.T) {
	source := writeInput(t, "2025-06-30", "2025-01-01", "2025-03-13")
	want := []dates.Date{
		dates.MustParse("2025-06-30"),
		dates.MustParse("2025-01-01"),
		dates.MustParse("2025-03-13"),
	}

	var seen [][]dates.Date
	observe := func(_ context.Context, _ dates.Date, snapshot []dates.Date) error {
		seen = append(seen, append([]dates.Date(nil), snapshot...))
		return nil
	}

	var buf bytes.Buffer
	gw := store.NewFileGateway()
	printer := report.NewPrinter(&buf, false)
	components := append(DefaultComponents(nil, printer, ""), Component{Name: "observer", Section: "OBSERVER", Run: observe})
	components = append([]Component{{Name: "observer", Section: "OBSERVER", Run: observe}}, components...)

	_, err := New(gw, printer, source, "", components...).Run(context.Background(), dates.MustParse("2025-01-01"))
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, want, seen[0])
	assert.Equal(t, want, seen[1], "components sorted the shared snapshot")
}

func TestRunLoadFailure(t *testing.T) {
	called := false
	components := []Component{{Name: "never", Section: "NEVER", Run: func(context.Context, dates.Date, []dates.Date) error {
		called = true
		return nil
	}}}

	var buf bytes.Buffer
	missing := filepath.Join(t.TempDir(), "absent.data")
	c := New(store.NewFileGateway(), report.NewPrinter(&buf, false), missing, "", components...)

	outcomes, err := c.Run(context.Background(), dates.MustParse("2025-01-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, outcomes)
	assert.False(t, called)
	assert.Contains(t, buf.String(), "Error while loading "+missing)
	assert.NotContains(t, buf.String(), "NEVER")
}

func TestRunParseFailure(t *testing.T) {
	source := writeInput(t, "2025-01-01", "13-03-2025")

	var buf bytes.Buffer
	c := New(store.NewFileGateway(), report.NewPrinter(&buf, false), source, "")

	_, err := c.Run(context.Background(), dates.MustParse("2025-01-01"))
	var perr *store.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, "13-03-2025", perr.Value)
}

func TestRunEmptyInput(t *testing.T) {
	source := writeInput(t)
	dest := source + ".sorted"

	var buf bytes.Buffer
	c := New(store.NewFileGateway(), report.NewPrinter(&buf, false), source, dest)

	outcomes, err := c.Run(context.Background(), dates.MustParse("2025-01-01"))
	require.NoError(t, err)
	for _, o := range outcomes {
		assert.NoError(t, o.Err, o.Name)
	}

	out := buf.String()
	assert.Contains(t, out, "List is empty or not initialized.")
	assert.Contains(t, out, "Queue is empty or not initialized.")
	assert.Contains(t, out, "HashSet is empty or not initialized.")
	assert.NotContains(t, out, "Minimum value")

	sorted, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Empty(t, sorted)
}

func TestRunIDIsUUID(t *testing.T) {
	c := New(store.NewFileGateway(), report.NewPrinter(&bytes.Buffer{}, false), "in", "out")
	_, err := uuid.Parse(c.RunID())
	assert.NoError(t, err)

	other := New(store.NewFileGateway(), report.NewPrinter(&bytes.Buffer{}, false), "in", "out")
	assert.NotEqual(t, c.RunID(), other.RunID())
}
