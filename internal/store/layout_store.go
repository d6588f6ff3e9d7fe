package store

import (
	"sync"

	"github.com/bnema/flexpane/internal/domain/entity"
)

// LayoutStore holds layout metadata and broadcasts grow changes.
type LayoutStore struct {
	mu      sync.RWMutex
	layouts map[string]*entity.Layout
	changes *Subject[string]
}

func NewLayoutStore() *LayoutStore {
	return &LayoutStore{
		layouts: make(map[string]*entity.Layout),
		changes: NewEventSubject[string](),
	}
}

// Register adds or replaces a layout. Re-registering the same pointer is a
// no-op.
func (s *LayoutStore) Register(l *entity.Layout) bool {
	if l == nil {
		return false
	}
	s.mu.Lock()
	if s.layouts[l.Name] == l {
		s.mu.Unlock()
		return false
	}
	s.layouts[l.Name] = l
	s.mu.Unlock()

	s.changes.Set(l.Name)
	return true
}

func (s *LayoutStore) Get(name string) *entity.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layouts[name]
}

func (s *LayoutStore) Remove(name string) bool {
	s.mu.Lock()
	_, ok := s.layouts[name]
	delete(s.layouts, name)
	s.mu.Unlock()

	if ok {
		s.changes.Set(name)
	}
	return ok
}

// Notify announces that the containers of a layout changed size.
func (s *LayoutStore) Notify(name string) {
	s.changes.Set(name)
}

// OnChange subscribes to layout change announcements.
func (s *LayoutStore) OnChange(fn func(name string)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}
