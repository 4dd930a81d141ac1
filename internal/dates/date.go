// Package dates provides the calendar date value used throughout datebench.
// A Date is a plain comparable struct, so it can be used with == and as a
// map or hash set key without normalisation.
package dates

import (
	"cmp"
	"fmt"
	"time"
)

// Layout is the ISO calendar date layout (yyyy-MM-dd).
const Layout = "2006-01-02"

// Date is a calendar date without time of day or zone.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New returns the date for the given components. Out-of-range values are
// normalised the way time.Date does (e.g. 2025-02-30 becomes 2025-03-02).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Parse parses an ISO yyyy-MM-dd string. Impossible dates and any other
// layout are rejected.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected yyyy-MM-dd: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals in tests and defaults. It panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int          { return d.year }
func (d Date) Month() time.Month  { return d.month }
func (d Date) Day() int           { return d.day }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Time() time.Time    { return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC) }
func (d Date) Before(o Date) bool { return Compare(d, o) < 0 }
func (d Date) After(o Date) bool  { return Compare(d, o) > 0 }

// String renders the date as yyyy-MM-dd.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return New(d.year, d.month, d.day+n)
}

// DaysBetween returns the number of days from a to b, negative when b is
// before a.
func DaysBetween(a, b Date) int {
	return int((b.Time().Unix() - a.Time().Unix()) / 86400)
}

// Compare orders dates chronologically, returning -1, 0 or +1.
func Compare(a, b Date) int {
	if c := cmp.Compare(a.year, b.year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.month, b.month); c != 0 {
		return c
	}
	return cmp.Compare(a.day, b.day)
}

// Comparator adapts Compare to the interface{}-based comparators used by
// the gods containers. It panics if either value is not a Date.
func Comparator(a, b interface{}) int {
	return Compare(a.(Date), b.(Date))
}
