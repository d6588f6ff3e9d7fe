// Package store holds the publish/subscribe registries shared by the layout
// engine: container and resize-panel references, scroll offsets, split-screen
// trees and the drag/drop event channels.
package store

import "sync"

// Subject is an observable value. Subscribers are notified in subscription
// order; a replaying subject hands the current value to new subscribers.
//
// Broadcasts are delivered one at a time in the order their values were
// stored, also across goroutines. A Set made by a subscriber while a
// broadcast is running is delivered once that broadcast has finished.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	has    bool
	replay bool
	equal  func(a, b T) bool
	subs   []subscription[T]
	nextID uint64

	queue      []delivery[T]
	delivering bool
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

type delivery[T any] struct {
	value T
	subs  []subscription[T]
}

// NewBehaviorSubject creates a replaying subject seeded with initial. When
// equal is non-nil, Set skips values equal to the current one.
func NewBehaviorSubject[T any](initial T, equal func(a, b T) bool) *Subject[T] {
	return &Subject[T]{value: initial, has: true, replay: true, equal: equal}
}

// NewReplaySubject creates a replaying subject with no value yet.
func NewReplaySubject[T any](equal func(a, b T) bool) *Subject[T] {
	return &Subject[T]{replay: true, equal: equal}
}

// NewEventSubject creates a subject that only forwards values published
// after a subscriber joined.
func NewEventSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Get returns the current value.
func (s *Subject[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.has
}

// Set stores v and broadcasts it. It reports false when v equals the
// current value and nothing was broadcast.
func (s *Subject[T]) Set(v T) bool {
	s.mu.Lock()
	if s.has && s.equal != nil && s.equal(s.value, v) {
		s.mu.Unlock()
		return false
	}
	s.value = v
	s.has = true
	s.enqueueLocked(v)
	s.deliver()
	return true
}

// Update applies fn to the current value under the subject lock and
// broadcasts the result unless fn reports no change.
func (s *Subject[T]) Update(fn func(current T) (T, bool)) bool {
	s.mu.Lock()
	next, changed := fn(s.value)
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.value = next
	s.has = true
	s.enqueueLocked(next)
	s.deliver()
	return true
}

func (s *Subject[T]) enqueueLocked(v T) {
	s.queue = append(s.queue, delivery[T]{
		value: v,
		subs:  append([]subscription[T](nil), s.subs...),
	})
}

// deliver drains the broadcast queue unless another call is already doing
// so. It is entered with s.mu held and returns with it released.
func (s *Subject[T]) deliver() {
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.queue) > 0 {
		d := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		for _, sub := range d.subs {
			sub.fn(d.value)
		}

		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

// Subscribe registers fn and returns the function that removes it.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[T]{id: id, fn: fn})
	value, replay := s.value, s.replay && s.has
	s.mu.Unlock()

	if replay {
		fn(value)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Subject[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
