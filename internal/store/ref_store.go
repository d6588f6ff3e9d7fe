package store

import (
	"slices"
	"sort"
)

// LayoutRefs is the ordered set of references registered under one layout.
type LayoutRefs[T any] struct {
	Names []string
	Refs  []*T
}

func (l LayoutRefs[T]) index(name string) int {
	return slices.Index(l.Names, name)
}

// RefStore maps layoutName -> name -> *T. The pointer is the identity of an
// entry: registering the same pointer twice is a no-op.
type RefStore[T any] struct {
	subject *Subject[map[string]LayoutRefs[T]]
	cmp     func(a, b *T) int
}

// NewRefStore creates an empty store. When cmp is non-nil entries of a
// layout are kept sorted by it, otherwise in registration order.
func NewRefStore[T any](cmp func(a, b *T) int) *RefStore[T] {
	return &RefStore[T]{
		subject: NewBehaviorSubject(map[string]LayoutRefs[T]{}, nil),
		cmp:     cmp,
	}
}

// Set registers ref under layout/name, or removes the entry when ref is nil.
// It reports whether anything changed.
func (s *RefStore[T]) Set(layout, name string, ref *T) bool {
	return s.subject.Update(func(cur map[string]LayoutRefs[T]) (map[string]LayoutRefs[T], bool) {
		refs := cur[layout]
		idx := refs.index(name)

		var nextRefs LayoutRefs[T]
		switch {
		case ref == nil && idx < 0:
			return cur, false
		case ref == nil:
			nextRefs = LayoutRefs[T]{
				Names: slices.Delete(slices.Clone(refs.Names), idx, idx+1),
				Refs:  slices.Delete(slices.Clone(refs.Refs), idx, idx+1),
			}
		case idx >= 0 && refs.Refs[idx] == ref:
			return cur, false
		case idx >= 0:
			nextRefs = LayoutRefs[T]{Names: slices.Clone(refs.Names), Refs: slices.Clone(refs.Refs)}
			nextRefs.Refs[idx] = ref
		default:
			nextRefs = LayoutRefs[T]{
				Names: append(slices.Clone(refs.Names), name),
				Refs:  append(slices.Clone(refs.Refs), ref),
			}
		}
		s.sort(&nextRefs)

		next := make(map[string]LayoutRefs[T], len(cur)+1)
		for k, v := range cur {
			next[k] = v
		}
		if len(nextRefs.Names) == 0 {
			delete(next, layout)
		} else {
			next[layout] = nextRefs
		}
		return next, true
	})
}

func (s *RefStore[T]) sort(refs *LayoutRefs[T]) {
	if s.cmp == nil {
		return
	}
	idx := make([]int, len(refs.Names))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.cmp(refs.Refs[idx[a]], refs.Refs[idx[b]]) < 0
	})
	names := make([]string, len(idx))
	items := make([]*T, len(idx))
	for i, j := range idx {
		names[i] = refs.Names[j]
		items[i] = refs.Refs[j]
	}
	refs.Names, refs.Refs = names, items
}

// Remove drops layout/name. Removing the last entry removes the layout.
func (s *RefStore[T]) Remove(layout, name string) bool {
	return s.Set(layout, name, nil)
}

// Get returns the reference registered under layout/name.
func (s *RefStore[T]) Get(layout, name string) *T {
	cur, _ := s.subject.Get()
	refs := cur[layout]
	if idx := refs.index(name); idx >= 0 {
		return refs.Refs[idx]
	}
	return nil
}

// List returns the references of a layout in order.
func (s *RefStore[T]) List(layout string) []*T {
	cur, _ := s.subject.Get()
	return slices.Clone(cur[layout].Refs)
}

// HasLayout reports whether layout has at least one entry.
func (s *RefStore[T]) HasLayout(layout string) bool {
	cur, _ := s.subject.Get()
	_, ok := cur[layout]
	return ok
}

// Layouts returns the registered layout names, sorted.
func (s *RefStore[T]) Layouts() []string {
	cur, _ := s.subject.Get()
	names := make([]string, 0, len(cur))
	for k := range cur {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FindLayout returns the first layout, in name order, holding name.
func (s *RefStore[T]) FindLayout(name string) (string, bool) {
	cur, _ := s.subject.Get()
	for _, layout := range s.Layouts() {
		if cur[layout].index(name) >= 0 {
			return layout, true
		}
	}
	return "", false
}

// Observe streams the references of layout whenever they change. The
// current list is delivered immediately when the layout exists; a nil list
// is delivered once when the layout disappears.
func (s *RefStore[T]) Observe(layout string, fn func([]*T)) (unsubscribe func()) {
	var last []*T
	seen := false
	return s.subject.Subscribe(func(cur map[string]LayoutRefs[T]) {
		refs, ok := cur[layout]
		if !ok {
			if seen && last != nil {
				last = nil
				fn(nil)
			}
			return
		}
		if seen && slices.Equal(last, refs.Refs) {
			return
		}
		seen = true
		last = slices.Clone(refs.Refs)
		fn(slices.Clone(refs.Refs))
	})
}
