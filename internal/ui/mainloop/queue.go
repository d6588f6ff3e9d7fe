package mainloop

import "sync"

// Queue is a frame queue: Post may be called from any goroutine, Drain
// runs the queued work on the owning goroutine. Work posted while a drain
// is running waits for the next drain.
type Queue struct {
	mu    sync.Mutex
	items []func()
	wake  func()
}

// NewQueue creates a queue. wake, when set, is called after a post to an
// empty queue so the owner knows a drain is due.
func NewQueue(wake func()) *Queue {
	return &Queue{wake: wake}
}

// Post enqueues fn.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	first := len(q.items) == 0
	q.items = append(q.items, fn)
	wake := q.wake
	q.mu.Unlock()

	if first && wake != nil {
		wake()
	}
}

// Drain runs everything queued so far and returns how many ran.
func (q *Queue) Drain() int {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()

	for _, fn := range items {
		fn()
	}
	return len(items)
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
