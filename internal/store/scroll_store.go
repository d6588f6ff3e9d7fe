package store

import "github.com/bnema/flexpane/internal/domain/entity"

// ScrollStore keeps the scroll offset of scrollable containers by key.
type ScrollStore struct {
	subject *Subject[map[string]entity.Point]
}

func NewScrollStore() *ScrollStore {
	return &ScrollStore{subject: NewBehaviorSubject(map[string]entity.Point{}, nil)}
}

// Set stores an offset. Identical writes are skipped.
func (s *ScrollStore) Set(key string, p entity.Point) bool {
	return s.subject.Update(func(cur map[string]entity.Point) (map[string]entity.Point, bool) {
		if old, ok := cur[key]; ok && old == p {
			return cur, false
		}
		next := make(map[string]entity.Point, len(cur)+1)
		for k, v := range cur {
			next[k] = v
		}
		next[key] = p
		return next, true
	})
}

func (s *ScrollStore) Remove(key string) bool {
	return s.subject.Update(func(cur map[string]entity.Point) (map[string]entity.Point, bool) {
		if _, ok := cur[key]; !ok {
			return cur, false
		}
		next := make(map[string]entity.Point, len(cur))
		for k, v := range cur {
			if k != key {
				next[k] = v
			}
		}
		return next, true
	})
}

func (s *ScrollStore) Get(key string) (entity.Point, bool) {
	cur, _ := s.subject.Get()
	p, ok := cur[key]
	return p, ok
}

// Observe streams the offset of key. Absent keys are filtered and
// consecutive identical offsets are suppressed.
func (s *ScrollStore) Observe(key string, fn func(entity.Point)) (unsubscribe func()) {
	var last entity.Point
	seen := false
	return s.subject.Subscribe(func(cur map[string]entity.Point) {
		p, ok := cur[key]
		if !ok || (seen && p == last) {
			return
		}
		seen, last = true, p
		fn(p)
	})
}
