// Package mainloop serializes work onto the single goroutine that owns the
// layout state, merging same-key bursts into one run per frame.
package mainloop

import (
	"sync"

	"github.com/bnema/flexpane/internal/application/port"
)

// Coalescer merges bursts of same-key tasks: only the most recent fn
// posted under a key runs when the frame is flushed.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string]bool
	callbacks map[string]func()
	post      port.FramePoster
	destroyed bool
}

var _ port.FrameScheduler = (*Coalescer)(nil)

func NewCoalescer(post port.FramePoster) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		pending:   make(map[string]bool),
		callbacks: make(map[string]func()),
		post:      post,
	}
}

func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.callbacks[key] = fn
	if c.pending[key] {
		c.mu.Unlock()
		return
	}
	c.pending[key] = true
	post := c.post
	c.mu.Unlock()

	post(func() { c.run(key) })
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn := c.callbacks[key]
	delete(c.pending, key)
	delete(c.callbacks, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if fn != nil && !destroyed {
		fn()
	}
}

// Pending returns the number of keys waiting for a frame.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.pending = map[string]bool{}
	c.callbacks = map[string]func(){}
	c.mu.Unlock()
}
