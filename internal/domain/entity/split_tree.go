package entity

import (
	"fmt"
	"slices"
)

// DropPosition is the list of a split node an entry lives in.
type DropPosition string

const (
	DropBefore DropPosition = "before"
	DropCenter DropPosition = "center"
	DropAfter  DropPosition = "after"
)

// DropPositions lists the positions in visual order.
var DropPositions = [...]DropPosition{DropBefore, DropCenter, DropAfter}

// Valid reports whether p names one of the three lists.
func (p DropPosition) Valid() bool {
	return p == DropBefore || p == DropCenter || p == DropAfter
}

// NodeID indexes a node inside a SplitTree arena. Zero means no node.
type NodeID int

// DropTarget is one entry of a split node list: a tab in the center list or a
// pane slot in the before/after lists.
type DropTarget struct {
	ContainerName   string
	Origin          string
	NavigationTitle string
	ScreenKey       string
	Content         any
	DropOutside     *DropOutsideOption
	// Child is the node rendered for this entry, zero until one is allocated.
	Child NodeID
	// Group marks the center entry holding the tabs a node had before it
	// was split.
	Group bool
}

func (d DropTarget) structurallyEqual(o DropTarget) bool {
	if d.ContainerName != o.ContainerName || d.Origin != o.Origin ||
		d.NavigationTitle != o.NavigationTitle || d.ScreenKey != o.ScreenKey ||
		d.Child != o.Child || d.Group != o.Group {
		return false
	}
	switch {
	case d.DropOutside == nil && o.DropOutside == nil:
		return true
	case d.DropOutside == nil || o.DropOutside == nil:
		return false
	default:
		return *d.DropOutside == *o.DropOutside
	}
}

// SplitComponents is the mutable projection of a split node.
type SplitComponents struct {
	Direction   Axis
	Before      []DropTarget
	Center      []DropTarget
	After       []DropTarget
	ActiveIndex int
}

// List returns the list at pos.
func (c SplitComponents) List(pos DropPosition) []DropTarget {
	switch pos {
	case DropBefore:
		return c.Before
	case DropAfter:
		return c.After
	default:
		return c.Center
	}
}

// SetList replaces the list at pos.
func (c *SplitComponents) SetList(pos DropPosition, list []DropTarget) {
	switch pos {
	case DropBefore:
		c.Before = list
	case DropAfter:
		c.After = list
	default:
		c.Center = list
	}
}

// Clone copies the lists so the result can be mutated freely.
func (c SplitComponents) Clone() SplitComponents {
	out := c
	out.Before = slices.Clone(c.Before)
	out.Center = slices.Clone(c.Center)
	out.After = slices.Clone(c.After)
	return out
}

// IsSplit reports whether the node shows entries beside its center.
func (c SplitComponents) IsSplit() bool {
	return len(c.Before) > 0 || len(c.After) > 0
}

// IsEmpty reports whether every list is empty.
func (c SplitComponents) IsEmpty() bool {
	return len(c.Before) == 0 && len(c.Center) == 0 && len(c.After) == 0
}

// Active returns the active center entry.
func (c SplitComponents) Active() (DropTarget, bool) {
	if c.ActiveIndex < 0 || c.ActiveIndex >= len(c.Center) {
		return DropTarget{}, false
	}
	return c.Center[c.ActiveIndex], true
}

// Locate finds the list and index holding containerName.
func (c SplitComponents) Locate(containerName string) (DropPosition, int, bool) {
	for _, pos := range DropPositions {
		for i, e := range c.List(pos) {
			if e.ContainerName == containerName {
				return pos, i, true
			}
		}
	}
	return "", -1, false
}

// StructurallyEqual compares everything but content payloads.
func (c SplitComponents) StructurallyEqual(o SplitComponents) bool {
	if c.Direction != o.Direction || c.ActiveIndex != o.ActiveIndex {
		return false
	}
	for _, pos := range DropPositions {
		a, b := c.List(pos), o.List(pos)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].structurallyEqual(b[i]) {
				return false
			}
		}
	}
	return true
}

// SplitNode is one node of a split-screen tree.
type SplitNode struct {
	ID        NodeID
	Parent    NodeID
	Position  DropPosition
	ScreenKey string
	SplitComponents

	// Revision changes only on structural change.
	Revision uint64

	Bounds    Rect
	HasBounds bool
}

// NodeView is an immutable snapshot of a node handed to observers.
type NodeView struct {
	Root     string
	ID       NodeID
	Key      string
	Depth    int
	Revision uint64
	SplitComponents
}

// IsSplit reports whether the viewed node is split.
func (v NodeView) IsSplit() bool { return v.SplitComponents.IsSplit() }

// SplitTree is the arena holding every node of one split-screen root.
// Nodes reference each other by NodeID; keys are derived on demand.
type SplitTree struct {
	Root     string
	nodes    []*SplitNode
	revision uint64
}

// RootID is the id of the root node of every tree.
const RootID NodeID = 1

// NewSplitTree creates a tree whose root node holds comps.
func NewSplitTree(root string, comps SplitComponents) *SplitTree {
	t := &SplitTree{Root: root, nodes: make([]*SplitNode, 1, 8)}
	t.revision++
	t.nodes = append(t.nodes, &SplitNode{
		ID:              RootID,
		ScreenKey:       root,
		SplitComponents: comps.Clone(),
		Revision:        t.revision,
	})
	return t
}

// Node returns the node with id, nil when it does not exist.
func (t *SplitTree) Node(id NodeID) *SplitNode {
	if id <= 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len returns the number of live nodes.
func (t *SplitTree) Len() int {
	n := 0
	for _, node := range t.nodes {
		if node != nil {
			n++
		}
	}
	return n
}

// Depth returns the distance from the root, -1 for unknown ids.
func (t *SplitTree) Depth(id NodeID) int {
	depth := -1
	for node := t.Node(id); node != nil; node = t.Node(node.Parent) {
		depth++
	}
	return depth
}

// Key returns the layout name of a node:
// parentKey_position-depth=screenKey, or the root name for the root.
func (t *SplitTree) Key(id NodeID) string {
	node := t.Node(id)
	if node == nil {
		return ""
	}
	if node.Parent == 0 {
		return t.Root
	}
	return fmt.Sprintf("%s_%s-%d=%s", t.Key(node.Parent), node.Position, t.Depth(id), node.ScreenKey)
}

// Find returns the node whose key is key.
func (t *SplitTree) Find(key string) NodeID {
	for _, node := range t.nodes {
		if node != nil && t.Key(node.ID) == key {
			return node.ID
		}
	}
	return 0
}

// Walk visits live nodes in allocation order until fn returns false.
func (t *SplitTree) Walk(fn func(*SplitNode) bool) {
	for _, node := range t.nodes {
		if node != nil && !fn(node) {
			return
		}
	}
}

// Alloc adds a child node under parent.
func (t *SplitTree) Alloc(parent NodeID, pos DropPosition, screenKey string, comps SplitComponents) NodeID {
	if t.Node(parent) == nil {
		return 0
	}
	t.revision++
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &SplitNode{
		ID:              id,
		Parent:          parent,
		Position:        pos,
		ScreenKey:       screenKey,
		SplitComponents: comps.Clone(),
		Revision:        t.revision,
	})
	return id
}

// Replace stores comps on a node. It reports whether the structural
// projection changed, in which case the node revision is bumped.
func (t *SplitTree) Replace(id NodeID, comps SplitComponents) bool {
	node := t.Node(id)
	if node == nil {
		return false
	}
	changed := !node.SplitComponents.StructurallyEqual(comps)
	node.SplitComponents = comps.Clone()
	if changed {
		t.revision++
		node.Revision = t.revision
	}
	return changed
}

// Reparent moves a node under a new parent at pos.
func (t *SplitTree) Reparent(id, parent NodeID, pos DropPosition) {
	node := t.Node(id)
	if node == nil || t.Node(parent) == nil || id == parent {
		return
	}
	node.Parent = parent
	node.Position = pos
	t.revision++
	node.Revision = t.revision
}

// Release removes a node and all of its descendants and returns their ids.
// The root cannot be released.
func (t *SplitTree) Release(id NodeID) []NodeID {
	if id == RootID || t.Node(id) == nil {
		return nil
	}
	released := []NodeID{id}
	for i := 0; i < len(released); i++ {
		current := released[i]
		for _, node := range t.nodes {
			if node != nil && node.Parent == current {
				released = append(released, node.ID)
			}
		}
	}
	for _, rid := range released {
		t.nodes[rid] = nil
	}
	t.revision++
	return released
}

// Children returns the live direct children of id.
func (t *SplitTree) Children(id NodeID) []NodeID {
	var out []NodeID
	for _, node := range t.nodes {
		if node != nil && node.Parent == id {
			out = append(out, node.ID)
		}
	}
	return out
}

// IsAncestor reports whether a is b or one of its ancestors.
func (t *SplitTree) IsAncestor(a, b NodeID) bool {
	for node := t.Node(b); node != nil; node = t.Node(node.Parent) {
		if node.ID == a {
			return true
		}
	}
	return false
}

// Slot returns the entry in the parent that renders id.
func (t *SplitTree) Slot(id NodeID) (DropTarget, bool) {
	node := t.Node(id)
	if node == nil {
		return DropTarget{}, false
	}
	parent := t.Node(node.Parent)
	if parent == nil {
		return DropTarget{}, false
	}
	for _, e := range parent.List(node.Position) {
		if e.Child == id {
			return e, true
		}
	}
	return DropTarget{}, false
}

// View snapshots a node.
func (t *SplitTree) View(id NodeID) (NodeView, bool) {
	node := t.Node(id)
	if node == nil {
		return NodeView{}, false
	}
	return NodeView{
		Root:            t.Root,
		ID:              id,
		Key:             t.Key(id),
		Depth:           t.Depth(id),
		Revision:        node.Revision,
		SplitComponents: node.SplitComponents.Clone(),
	}, true
}
