package bench

import (
	"context"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"slices"

	"github.com/emirpasic/gods/sets/hashset"
	"go.uber.org/zap"
)

// SetOperations compares a hash set against the raw array.
type SetOperations struct {
	*ArrayOperations
	set *hashset.Set
}

// NewSetOperations builds a deduplicating set from a private copy of snapshot.
func NewSetOperations(target dates.Date, snapshot []dates.Date, sink Sink) *SetOperations {
	values := slices.Clone(snapshot)

	set := hashset.New()
	for _, d := range values {
		set.Add(d)
	}

	return &SetOperations{
		ArrayOperations: NewArrayOperations(target, values, logging.CategorySet, sink),
		set:             set,
	}
}

// Execute runs the set operations, the array/set analysis, then the array
// operations, and persists the sorted array to dest.
func (s *SetOperations) Execute(ctx context.Context, saver Saver, dest string) error {
	logging.Get(logging.CategorySet).Debug("running set operations",
		zap.Stringer("target", s.target),
		zap.Int("size", s.set.Size()))

	s.FindInSet()
	s.LocateMinMaxInSet()
	s.AnalyzeArrayAndSet()

	return s.runArray(ctx, saver, dest)
}

// FindInSet is a hash lookup; sets are unordered so there is no position.
func (s *SetOperations) FindInSet() bool {
	timer := logging.StartTimer(logging.CategorySet, "search element in HashSet")
	found := s.set.Contains(s.target)
	s.sink.Timing(timer.Stop())

	s.sink.Membership(ContainerSet, s.target, found)
	return found
}

// LocateMinMaxInSet scans every element of the set.
func (s *SetOperations) LocateMinMaxInSet() (MinMax, bool) {
	if s.set.Empty() {
		s.sink.Empty(ContainerSet)
		return MinMax{}, false
	}

	timer := logging.StartTimer(logging.CategorySet, "locate min and max in HashSet")
	var mm MinMax
	for i, v := range s.set.Values() {
		d := v.(dates.Date)
		if i == 0 || d.Before(mm.Min) {
			mm.Min = d
		}
		if i == 0 || d.After(mm.Max) {
			mm.Max = d
		}
	}
	s.sink.Timing(timer.Stop())

	s.sink.MinMax(ContainerSet, mm)
	return mm, true
}

// AnalyzeArrayAndSet compares the array length with the set size and checks
// that every array element is in the set, stopping at the first miss.
func (s *SetOperations) AnalyzeArrayAndSet() SetAnalysis {
	a := SetAnalysis{
		ArrayLen:   len(s.values),
		SetLen:     s.set.Size(),
		AllPresent: true,
	}
	for _, d := range s.values {
		if !s.set.Contains(d) {
			a.AllPresent = false
			break
		}
	}

	s.sink.SetAnalysis(a)
	return a
}

// SetSize returns the number of distinct dates in the set.
func (s *SetOperations) SetSize() int {
	return s.set.Size()
}

// Contains reports whether d is in the set.
func (s *SetOperations) Contains(d dates.Date) bool {
	return s.set.Contains(d)
}
