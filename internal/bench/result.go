// Package bench runs the same search, min/max and sort operations over an
// array of dates and three containers built from it (an array-backed list,
// a priority queue and a hash set), timing each operation.
//
// Every operation returns a structured result and also reports it, together
// with its timing, to a Sink. Rendering is the Sink's business.
package bench

import (
	"datebench/internal/dates"
	"datebench/internal/logging"
)

// Container names the structure an operation ran against.
type Container string

const (
	ContainerArray Container = "array"
	ContainerList  Container = "List"
	ContainerQueue Container = "Queue"
	ContainerSet   Container = "HashSet"
)

// SearchResult is the outcome of a positional search.
// Position is -1 when Found is false.
type SearchResult struct {
	Found    bool
	Position int
}

// NotFound is the SearchResult for an absent target.
var NotFound = SearchResult{Position: -1}

// MinMax holds the smallest and largest date of a non-empty collection.
type MinMax struct {
	Min dates.Date
	Max dates.Date
}

// QueueHeads records the heads observed by peek, poll, peek.
// HasNext is false when the poll removed the last element.
type QueueHeads struct {
	Peeked  dates.Date
	Polled  dates.Date
	Next    dates.Date
	HasNext bool
}

// SetAnalysis compares an array with the set built from it.
type SetAnalysis struct {
	ArrayLen   int
	SetLen     int
	AllPresent bool
}

// Duplicates is the number of array elements that collapsed in the set.
func (a SetAnalysis) Duplicates() int {
	return a.ArrayLen - a.SetLen
}

// Sink receives every timing and result as operations complete.
type Sink interface {
	Timing(m logging.Measurement)
	Search(c Container, target dates.Date, r SearchResult)
	Membership(c Container, target dates.Date, found bool)
	MinMax(c Container, mm MinMax)
	Empty(c Container)
	QueueHeads(h QueueHeads)
	SetAnalysis(a SetAnalysis)
	Saved(dest string, count int)
}

// Discard is a Sink that ignores everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Timing(logging.Measurement)                {}
func (discard) Search(Container, dates.Date, SearchResult) {}
func (discard) Membership(Container, dates.Date, bool)     {}
func (discard) MinMax(Container, MinMax)                   {}
func (discard) Empty(Container)                            {}
func (discard) QueueHeads(QueueHeads)                      {}
func (discard) SetAnalysis(SetAnalysis)                    {}
func (discard) Saved(string, int)                          {}
