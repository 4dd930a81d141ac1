package bench

import (
	"context"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"slices"
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"go.uber.org/zap"
)

// ListOperations compares an array-backed list against the raw array.
type ListOperations struct {
	*ArrayOperations
	list *arraylist.List
}

// NewListOperations copies snapshot into both a private array and a list,
// so neither the caller's slice nor the two structures affect each other.
func NewListOperations(target dates.Date, snapshot []dates.Date, sink Sink) *ListOperations {
	values := slices.Clone(snapshot)

	list := arraylist.New()
	for _, d := range values {
		list.Add(d)
	}

	return &ListOperations{
		ArrayOperations: NewArrayOperations(target, values, logging.CategoryList, sink),
		list:            list,
	}
}

// Execute runs the list then the array operations and persists the
// sorted array to dest.
func (l *ListOperations) Execute(ctx context.Context, saver Saver, dest string) error {
	log := logging.Get(logging.CategoryList)
	log.Debug("running list operations",
		zap.Stringer("target", l.target),
		zap.Int("size", l.list.Size()))

	// The first search runs on unsorted data on purpose.
	l.FindInList()
	l.LocateMinMaxInList()

	l.SortList()

	l.FindInList()
	l.LocateMinMaxInList()

	return l.runArray(ctx, saver, dest)
}

// FindInList binary-searches the list. Only meaningful once the list is sorted.
func (l *ListOperations) FindInList() SearchResult {
	timer := logging.StartTimer(logging.CategoryList, "search element in List")
	r := l.binarySearch()
	l.sink.Timing(timer.Stop())

	l.sink.Search(ContainerList, l.target, r)
	return r
}

func (l *ListOperations) binarySearch() SearchResult {
	n := l.list.Size()
	i := sort.Search(n, func(i int) bool {
		return dates.Compare(l.at(i), l.target) >= 0
	})
	if i < n && l.at(i) == l.target {
		return SearchResult{Found: true, Position: i}
	}
	return NotFound
}

func (l *ListOperations) at(i int) dates.Date {
	v, _ := l.list.Get(i)
	return v.(dates.Date)
}

// LocateMinMaxInList scans the list for its extremes.
func (l *ListOperations) LocateMinMaxInList() (MinMax, bool) {
	if l.list.Empty() {
		l.sink.Empty(ContainerList)
		return MinMax{}, false
	}

	timer := logging.StartTimer(logging.CategoryList, "locate min and max in List")
	mm := MinMax{Min: l.at(0), Max: l.at(0)}
	l.list.Each(func(_ int, v interface{}) {
		d := v.(dates.Date)
		if d.Before(mm.Min) {
			mm.Min = d
		}
		if d.After(mm.Max) {
			mm.Max = d
		}
	})
	l.sink.Timing(timer.Stop())

	l.sink.MinMax(ContainerList, mm)
	return mm, true
}

// SortList sorts the list ascending in place.
func (l *ListOperations) SortList() {
	timer := logging.StartTimer(logging.CategoryList, "sort List")
	l.list.Sort(dates.Comparator)
	l.sink.Timing(timer.Stop())
}

// ListValues returns a copy of the list contents in list order.
func (l *ListOperations) ListValues() []dates.Date {
	out := make([]dates.Date, 0, l.list.Size())
	l.list.Each(func(_ int, v interface{}) {
		out = append(out, v.(dates.Date))
	})
	return out
}
