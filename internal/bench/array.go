package bench

import (
	"context"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"fmt"
	"slices"
)

// Saver persists a sorted array. store.Gateway satisfies it.
type Saver interface {
	Save(ctx context.Context, values []dates.Date, dest string) error
}

// BinarySearch looks for target in values, which must be sorted ascending
// for the result to be meaningful. On unsorted input the result is whatever
// the halving lands on: a present target may be reported absent.
func BinarySearch(values []dates.Date, target dates.Date) SearchResult {
	pos, found := slices.BinarySearchFunc(values, target, dates.Compare)
	if !found {
		return NotFound
	}
	return SearchResult{Found: true, Position: pos}
}

// ScanMinMax finds the smallest and largest values with one linear pass.
// It reports false for an empty slice.
func ScanMinMax(values []dates.Date) (MinMax, bool) {
	if len(values) == 0 {
		return MinMax{}, false
	}
	mm := MinMax{Min: values[0], Max: values[0]}
	for _, d := range values[1:] {
		if d.Before(mm.Min) {
			mm.Min = d
		}
		if d.After(mm.Max) {
			mm.Max = d
		}
	}
	return mm, true
}

// ArrayOperations times search, min/max and sort directly on a date array.
// Every component embeds one over its own copy of the snapshot.
type ArrayOperations struct {
	target   dates.Date
	values   []dates.Date
	category logging.Category
	sink     Sink
}

// NewArrayOperations wraps values without copying them; sorting reorders
// the caller's slice.
func NewArrayOperations(target dates.Date, values []dates.Date, category logging.Category, sink Sink) *ArrayOperations {
	if sink == nil {
		sink = Discard
	}
	return &ArrayOperations{target: target, values: values, category: category, sink: sink}
}

// Values returns the backing array.
func (a *ArrayOperations) Values() []dates.Date {
	return a.values
}

// FindInArray binary-searches the array for the target.
func (a *ArrayOperations) FindInArray() SearchResult {
	timer := logging.StartTimer(a.category, "search element in array")
	r := BinarySearch(a.values, a.target)
	a.sink.Timing(timer.Stop())

	a.sink.Search(ContainerArray, a.target, r)
	return r
}

// LocateMinMaxInArray scans the array for its extremes. Works on unsorted data.
func (a *ArrayOperations) LocateMinMaxInArray() (MinMax, bool) {
	if len(a.values) == 0 {
		a.sink.Empty(ContainerArray)
		return MinMax{}, false
	}

	timer := logging.StartTimer(a.category, "locate min and max in array")
	mm, _ := ScanMinMax(a.values)
	a.sink.Timing(timer.Stop())

	a.sink.MinMax(ContainerArray, mm)
	return mm, true
}

// PerformArraySorting sorts the array ascending in place. The sort is stable.
func (a *ArrayOperations) PerformArraySorting() {
	timer := logging.StartTimer(a.category, "sort array")
	slices.SortStableFunc(a.values, dates.Compare)
	a.sink.Timing(timer.Stop())
}

// runArray performs the array half of every component's run: search and
// min/max before and after sorting, then persisting the sorted array.
func (a *ArrayOperations) runArray(ctx context.Context, saver Saver, dest string) error {
	a.FindInArray()
	a.LocateMinMaxInArray()

	a.PerformArraySorting()

	a.FindInArray()
	a.LocateMinMaxInArray()

	if saver == nil {
		return nil
	}
	if err := saver.Save(ctx, a.values, dest); err != nil {
		return fmt.Errorf("failed to save sorted array: %w", err)
	}
	a.sink.Saved(dest, len(a.values))
	return nil
}
