package store

import (
	"sort"
	"sync"

	"github.com/bnema/flexpane/internal/domain/entity"
)

// SplitScreenStore owns one split tree per root. Trees are only mutated
// through the store so every structural change is broadcast.
type SplitScreenStore struct {
	mu      sync.Mutex
	trees   map[string]*entity.SplitTree
	changes *Subject[string]
}

func NewSplitScreenStore() *SplitScreenStore {
	return &SplitScreenStore{
		trees:   make(map[string]*entity.SplitTree),
		changes: NewEventSubject[string](),
	}
}

// Reset replaces the tree of root with a single root node holding comps.
func (s *SplitScreenStore) Reset(root string, comps entity.SplitComponents) {
	s.mu.Lock()
	s.trees[root] = entity.NewSplitTree(root, comps)
	s.mu.Unlock()
	s.changes.Set(root)
}

// RemoveRoot drops the whole tree of root.
func (s *SplitScreenStore) RemoveRoot(root string) bool {
	s.mu.Lock()
	_, ok := s.trees[root]
	delete(s.trees, root)
	s.mu.Unlock()
	if ok {
		s.changes.Set(root)
	}
	return ok
}

// Roots returns the mounted root names, sorted.
func (s *SplitScreenStore) Roots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.trees))
	for root := range s.trees {
		out = append(out, root)
	}
	sort.Strings(out)
	return out
}

// Read runs fn against the tree of root under the store lock. fn must not
// call back into the store.
func (s *SplitScreenStore) Read(root string, fn func(t *entity.SplitTree)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trees[root]
	if !ok {
		return false
	}
	fn(t)
	return true
}

// Mutate runs fn against the tree of root under the store lock and
// broadcasts when fn reports a structural change.
func (s *SplitScreenStore) Mutate(root string, fn func(t *entity.SplitTree) bool) bool {
	s.mu.Lock()
	t, ok := s.trees[root]
	changed := ok && fn(t)
	s.mu.Unlock()
	if changed {
		s.changes.Set(root)
	}
	return changed
}

// Set replaces the components of a node.
func (s *SplitScreenStore) Set(root string, id entity.NodeID, comps entity.SplitComponents) bool {
	return s.Mutate(root, func(t *entity.SplitTree) bool {
		return t.Replace(id, comps)
	})
}

// Alloc adds a child node and returns its id, zero when parent is unknown.
func (s *SplitScreenStore) Alloc(root string, parent entity.NodeID, pos entity.DropPosition, screenKey string, comps entity.SplitComponents) entity.NodeID {
	var id entity.NodeID
	s.Mutate(root, func(t *entity.SplitTree) bool {
		id = t.Alloc(parent, pos, screenKey, comps)
		return id != 0
	})
	return id
}

// Release removes a node and its descendants.
func (s *SplitScreenStore) Release(root string, id entity.NodeID) []entity.NodeID {
	var released []entity.NodeID
	s.Mutate(root, func(t *entity.SplitTree) bool {
		released = t.Release(id)
		return len(released) > 0
	})
	return released
}

// SetBounds records the rendered rectangle of a node. Geometry is not
// structural and is never broadcast.
func (s *SplitScreenStore) SetBounds(root, key string, r entity.Rect) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trees[root]
	if !ok {
		return false
	}
	node := t.Node(t.Find(key))
	if node == nil {
		return false
	}
	node.Bounds, node.HasBounds = r, true
	return true
}

// ClearBounds forgets the rendered rectangles of every node of root. Hosts
// call it before reporting a new frame so hidden nodes are not hit-tested.
func (s *SplitScreenStore) ClearBounds(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trees[root]
	if !ok {
		return
	}
	t.Walk(func(n *entity.SplitNode) bool {
		n.Bounds, n.HasBounds = entity.Rect{}, false
		return true
	})
}

// View snapshots the node of root named key.
func (s *SplitScreenStore) View(root, key string) (entity.NodeView, bool) {
	var (
		view entity.NodeView
		ok   bool
	)
	s.Read(root, func(t *entity.SplitTree) {
		view, ok = t.View(t.Find(key))
	})
	return view, ok
}

// Count returns the number of mounted roots.
func (s *SplitScreenStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trees)
}

// OnChange subscribes to structural change announcements by root name.
func (s *SplitScreenStore) OnChange(fn func(root string)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// Observe streams the view of one node. The current view is delivered
// immediately; afterwards a view is delivered only when the node revision
// changes or the node appears or disappears. Content payload changes alone
// are not delivered.
func (s *SplitScreenStore) Observe(root, key string, fn func(view entity.NodeView, ok bool)) (unsubscribe func()) {
	var (
		lastRev     uint64
		lastPresent bool
	)
	emit := func() {
		view, ok := s.View(root, key)
		if ok == lastPresent && (!ok || view.Revision == lastRev) {
			return
		}
		lastPresent, lastRev = ok, view.Revision
		fn(view, ok)
	}

	view, ok := s.View(root, key)
	lastPresent, lastRev = ok, view.Revision
	fn(view, ok)

	return s.changes.Subscribe(func(changed string) {
		if changed == root {
			emit()
		}
	})
}
