package bench

import (
	"context"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"slices"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"go.uber.org/zap"
)

// QueueOperations compares a min-ordered priority queue against the raw array.
type QueueOperations struct {
	*ArrayOperations
	queue *priorityqueue.Queue
}

// NewQueueOperations builds a priority queue ordered by ascending date from
// a private copy of snapshot.
func NewQueueOperations(target dates.Date, snapshot []dates.Date, sink Sink) *QueueOperations {
	values := slices.Clone(snapshot)

	queue := priorityqueue.NewWith(dates.Comparator)
	for _, d := range values {
		queue.Enqueue(d)
	}

	return &QueueOperations{
		ArrayOperations: NewArrayOperations(target, values, logging.CategoryQueue, sink),
		queue:           queue,
	}
}

// Execute runs the queue then the array operations and persists the
// sorted array to dest.
func (q *QueueOperations) Execute(ctx context.Context, saver Saver, dest string) error {
	logging.Get(logging.CategoryQueue).Debug("running queue operations",
		zap.Stringer("target", q.target),
		zap.Int("size", q.queue.Size()))

	q.FindInQueue()
	q.LocateMinMaxInQueue()
	q.PerformQueueOperations()

	return q.runArray(ctx, saver, dest)
}

// FindInQueue reports whether the target is queued. A priority queue has
// no meaningful positions, so only membership is reported.
func (q *QueueOperations) FindInQueue() bool {
	timer := logging.StartTimer(logging.CategoryQueue, "search element in Queue")
	found := false
	it := q.queue.Iterator()
	for it.Next() {
		if it.Value().(dates.Date) == q.target {
			found = true
			break
		}
	}
	q.sink.Timing(timer.Stop())

	q.sink.Membership(ContainerQueue, q.target, found)
	return found
}

// LocateMinMaxInQueue scans every element. The head is the minimum, but the
// heap gives no shortcut to the maximum.
func (q *QueueOperations) LocateMinMaxInQueue() (MinMax, bool) {
	if q.queue.Empty() {
		q.sink.Empty(ContainerQueue)
		return MinMax{}, false
	}

	timer := logging.StartTimer(logging.CategoryQueue, "locate min and max in Queue")
	var values []dates.Date
	it := q.queue.Iterator()
	for it.Next() {
		values = append(values, it.Value().(dates.Date))
	}
	mm, _ := ScanMinMax(values)
	q.sink.Timing(timer.Stop())

	q.sink.MinMax(ContainerQueue, mm)
	return mm, true
}

// PerformQueueOperations peeks at the head, polls it, then peeks again.
// The poll removes an element, so the queue is one shorter afterwards.
func (q *QueueOperations) PerformQueueOperations() (QueueHeads, bool) {
	if q.queue.Empty() {
		q.sink.Empty(ContainerQueue)
		return QueueHeads{}, false
	}

	var h QueueHeads
	v, _ := q.queue.Peek()
	h.Peeked = v.(dates.Date)

	v, _ = q.queue.Dequeue()
	h.Polled = v.(dates.Date)

	if v, ok := q.queue.Peek(); ok {
		h.Next = v.(dates.Date)
		h.HasNext = true
	}

	q.sink.QueueHeads(h)
	return h, true
}

// QueueSize returns the number of queued elements.
func (q *QueueOperations) QueueSize() int {
	return q.queue.Size()
}
