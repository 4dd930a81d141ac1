package dates

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso date", input: "2025-03-13", want: New(2025, time.March, 13)},
		{name: "leap day", input: "2024-02-29", want: New(2024, time.February, 29)},
		{name: "day first", input: "13-03-2025", wantErr: true},
		{name: "impossible day", input: "2025-02-30", wantErr: true},
		{name: "month out of range", input: "2025-13-01", wantErr: true},
		{name: "unpadded", input: "2025-3-13", wantErr: true},
		{name: "trailing time", input: "2025-03-13T10:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("2025-01-01")
	b := MustParse("2025-03-13")
	c := MustParse("2026-01-01")

	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(c, b))
	assert.Equal(t, 0, Compare(b, MustParse("2025-03-13")))
	assert.True(t, a.Before(b))
	assert.True(t, c.After(b))
	assert.False(t, b.Before(b))
	assert.Equal(t, 1, Comparator(c, a))
}

func TestSortOrderMatchesTime(t *testing.T) {
	ds := []Date{
		MustParse("2025-06-30"),
		MustParse("1999-12-31"),
		MustParse("2025-01-01"),
		MustParse("2025-01-02"),
	}
	slices.SortFunc(ds, Compare)

	for i := 1; i < len(ds); i++ {
		assert.True(t, ds[i-1].Time().Before(ds[i].Time()), "%s should precede %s", ds[i-1], ds[i])
	}
}

func TestEqualityIsValueBased(t *testing.T) {
	set := map[Date]struct{}{MustParse("2025-01-01"): {}}
	_, ok := set[New(2025, time.January, 1)]
	assert.True(t, ok)
	assert.True(t, Date{}.IsZero())
	assert.False(t, MustParse("2025-01-01").IsZero())
}

func TestNewNormalises(t *testing.T) {
	assert.Equal(t, "2025-03-02", New(2025, time.February, 30).String())
}

func TestDayArithmetic(t *testing.T) {
	tests := []struct {
		from string
		days int
		want string
	}{
		{"2025-01-01", 0, "2025-01-01"},
		{"2025-01-31", 1, "2025-02-01"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2025-02-28", 1, "2025-03-01"},
		{"2025-01-01", -1, "2024-12-31"},
		{"2000-01-01", 366, "2001-01-01"},
		{"0001-01-01", 3652058, "9999-12-31"},
		{"9999-12-31", -3652058, "0001-01-01"},
	}

	for _, tt := range tests {
		from := MustParse(tt.from)
		got := from.AddDays(tt.days)
		assert.Equal(t, tt.want, got.String(), "%s%+d", tt.from, tt.days)
		assert.Equal(t, tt.days, DaysBetween(from, got))
	}
}
