// Package clock provides the real and virtual time sources behind port.Clock.
package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/bnema/flexpane/internal/application/port"
)

// System is the wall clock.
type System struct{}

var _ port.Clock = System{}

func (System) Now() time.Time { return time.Now() }

func (System) AfterFunc(d time.Duration, fn func()) port.Timer {
	return time.AfterFunc(d, fn)
}

// Posted delivers timer callbacks through post, typically the host UI loop.
type Posted struct {
	base port.Clock
	post func(func())
}

// NewPosted wraps base so that fired callbacks run via post.
func NewPosted(base port.Clock, post func(func())) *Posted {
	if post == nil {
		panic("clock.NewPosted: post function cannot be nil")
	}
	return &Posted{base: base, post: post}
}

func (p *Posted) Now() time.Time { return p.base.Now() }

func (p *Posted) AfterFunc(d time.Duration, fn func()) port.Timer {
	return p.base.AfterFunc(d, func() { p.post(fn) })
}

// Fake is a virtual clock. Callbacks run synchronously inside Advance, in
// deadline order.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	seq      int
	fn       func()
	stopped  bool
	fired    bool
}

// NewFake creates a virtual clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) port.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{clock: f, deadline: f.now.Add(d), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves the clock forward and runs every callback that became due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.nextDue(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = next.deadline
		next.fired = true
		fn := next.fn
		f.mu.Unlock()

		fn()
	}
}

// Pending returns the number of armed timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (f *Fake) nextDue(target time.Time) *fakeTimer {
	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	f.timers = live
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].deadline.Equal(f.timers[j].deadline) {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].deadline.Before(f.timers[j].deadline)
	})
	if len(f.timers) == 0 || f.timers[0].deadline.After(target) {
		return nil
	}
	return f.timers[0]
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
