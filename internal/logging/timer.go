package logging

import (
	"time"

	"go.uber.org/zap"
)

// Measurement is the elapsed wall-clock cost of one labelled operation.
type Measurement struct {
	Category  Category
	Operation string
	Elapsed   time.Duration
}

// Nanoseconds returns the elapsed time in nanoseconds.
func (m Measurement) Nanoseconds() int64 {
	return m.Elapsed.Nanoseconds()
}

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer, logs the duration at debug level and returns it.
func (t *Timer) Stop() Measurement {
	m := t.measure()
	Get(CategoryPerformance).Debug("operation timed",
		zap.String("category", string(m.Category)),
		zap.String("op", m.Operation),
		zap.Int64("ns", m.Nanoseconds()))
	return m
}

// StopWithThreshold logs a warning if the duration exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) Measurement {
	m := t.measure()
	if m.Elapsed > threshold {
		Get(CategoryPerformance).Warn("operation exceeded threshold",
			zap.String("category", string(m.Category)),
			zap.String("op", m.Operation),
			zap.Duration("elapsed", m.Elapsed),
			zap.Duration("threshold", threshold))
		return m
	}
	Get(CategoryPerformance).Debug("operation timed",
		zap.String("category", string(m.Category)),
		zap.String("op", m.Operation),
		zap.Int64("ns", m.Nanoseconds()))
	return m
}

func (t *Timer) measure() Measurement {
	return Measurement{
		Category:  t.category,
		Operation: t.op,
		Elapsed:   time.Since(t.start),
	}
}

// Recorder collects measurements in the order they were taken.
// The zero value is ready to use.
type Recorder struct {
	measurements []Measurement
}

// Record appends m.
func (r *Recorder) Record(m Measurement) {
	r.measurements = append(r.measurements, m)
}

// Measurements returns a copy of everything recorded so far.
func (r *Recorder) Measurements() []Measurement {
	out := make([]Measurement, len(r.measurements))
	copy(out, r.measurements)
	return out
}

// Total returns the summed elapsed time of every recorded measurement.
func (r *Recorder) Total() time.Duration {
	var total time.Duration
	for _, m := range r.measurements {
		total += m.Elapsed
	}
	return total
}

// Len returns the number of recorded measurements.
func (r *Recorder) Len() int {
	return len(r.measurements)
}
