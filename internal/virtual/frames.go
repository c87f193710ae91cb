package virtual

// FrameScheduler runs callbacks on the next animation frame. Callbacks
// requested while a frame is being flushed run on the following frame.
type FrameScheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a FrameScheduler driven by an external frame clock: the
// owner calls Flush once per frame (the panel does so from a tea.Tick).
type FrameQueue struct {
	pending []func()
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func()) {
	if fn != nil {
		q.pending = append(q.pending, fn)
	}
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Flush runs the callbacks queued before the call and returns how many ran.
func (q *FrameQueue) Flush() int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
