package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/logging"
	"github.com/bnema/flexpane/internal/store"
)

// SplitScreenConfig tunes drop routing.
type SplitScreenConfig struct {
	// BoundaryRatio is the share of each node edge treated as a split band.
	BoundaryRatio float64
}

// DefaultSplitScreenConfig returns the stock drop routing settings.
func DefaultSplitScreenConfig() SplitScreenConfig {
	return SplitScreenConfig{BoundaryRatio: entity.DefaultBoundaryRatio}
}

// SplitScreenUseCase owns the structural edits of split-screen trees: it
// routes drops to nodes, splits and collapses nodes, and manages tabs.
//
// Every edit is a DropMovementEvent processed through a FIFO queue, so
// edits emitted while another one is being processed run after it.
type SplitScreenUseCase struct {
	registry *store.Registry
	cfg      SplitScreenConfig

	mu       sync.Mutex
	queue    []queuedMovement
	draining bool
	stops    []func()
}

type queuedMovement struct {
	ctx context.Context
	ev  entity.DropMovementEvent
}

// NewSplitScreenUseCase creates the split-screen controller.
func NewSplitScreenUseCase(registry *store.Registry, cfg SplitScreenConfig) *SplitScreenUseCase {
	if cfg.BoundaryRatio <= 0 {
		cfg.BoundaryRatio = entity.DefaultBoundaryRatio
	}
	return &SplitScreenUseCase{registry: registry, cfg: cfg}
}

// Start subscribes the controller to the drag state and drop movement
// channels of the registry.
func (uc *SplitScreenUseCase) Start(ctx context.Context) {
	ctx = logging.WithComponent(ctx, "split-screen")
	stopDrag := uc.registry.DragState.Subscribe(func(s entity.DragState) {
		uc.HandleDrag(ctx, s)
	})
	stopMove := uc.registry.DropMovement.Subscribe(func(ev entity.DropMovementEvent) {
		uc.Dispatch(ctx, ev)
	})

	uc.mu.Lock()
	uc.stops = append(uc.stops, stopDrag, stopMove)
	uc.mu.Unlock()
}

// Close unsubscribes from the registry.
func (uc *SplitScreenUseCase) Close() {
	uc.mu.Lock()
	stops := uc.stops
	uc.stops = nil
	uc.mu.Unlock()
	for _, stop := range stops {
		stop()
	}
}

// Mount creates the tree of root with entries as its initial tabs.
func (uc *SplitScreenUseCase) Mount(ctx context.Context, root string, direction entity.Axis, entries ...entity.DropTarget) {
	center := make([]entity.DropTarget, len(entries))
	for i, e := range entries {
		if e.Origin == "" {
			e.Origin = e.ContainerName
		}
		if e.ScreenKey == "" {
			e.ScreenKey = entity.NewScreenKey()
		}
		e.Child = 0
		center[i] = e
	}
	uc.registry.SplitScreens.Reset(root, entity.SplitComponents{Direction: direction, Center: center})
	uc.registry.SplitScreenCount.Set(uc.registry.SplitScreens.Count())

	logging.FromContext(logging.WithRoot(ctx, root)).Info().Int("tabs", len(center)).Msg("split screen mounted")
}

// Unmount drops the tree of root.
func (uc *SplitScreenUseCase) Unmount(ctx context.Context, root string) {
	if uc.registry.SplitScreens.RemoveRoot(root) {
		uc.registry.SplitScreenCount.Set(uc.registry.SplitScreens.Count())
		logging.FromContext(logging.WithRoot(ctx, root)).Info().Msg("split screen unmounted")
	}
}

// Dispatch queues a structural edit and drains the queue unless a drain is
// already in progress further up the stack.
func (uc *SplitScreenUseCase) Dispatch(ctx context.Context, ev entity.DropMovementEvent) {
	uc.mu.Lock()
	uc.queue = append(uc.queue, queuedMovement{ctx: ctx, ev: ev})
	if uc.draining {
		uc.mu.Unlock()
		return
	}
	uc.draining = true
	for len(uc.queue) > 0 {
		item := uc.queue[0]
		uc.queue = uc.queue[1:]
		uc.mu.Unlock()

		uc.apply(item.ctx, item.ev)

		uc.mu.Lock()
	}
	uc.draining = false
	uc.mu.Unlock()
}

func (uc *SplitScreenUseCase) apply(ctx context.Context, ev entity.DropMovementEvent) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("state", string(ev.State)).
		Str("root", ev.Root).
		Str("layout", ev.TargetLayoutName).
		Str("container", ev.TargetContainerName).
		Str("order", string(ev.Order)).
		Msg("drop movement")

	var followups []entity.DropMovementEvent
	switch ev.State {
	case entity.MovementAppend:
		res, forward := uc.appendEntry(ev)
		if forward != nil {
			followups = append(followups, *forward)
			break
		}
		if !res.Accepted {
			log.Debug().Str("layout", ev.TargetLayoutName).Msg("drop rejected")
		}
		sendReply(ev.Reply, res)
	case entity.MovementRemove:
		followups = uc.removeEntry(ctx, ev)
	case entity.MovementChange:
		uc.changeEntry(ev)
	default:
		log.Debug().Str("state", string(ev.State)).Msg("unknown movement state")
	}

	for _, f := range followups {
		uc.Dispatch(ctx, f)
	}
}

func sendReply(ch chan<- entity.DropResult, res entity.DropResult) {
	if ch == nil {
		return
	}
	select {
	case ch <- res:
	default:
	}
}

func entryName(origin, nodeKey string, order entity.DropPosition, n int) string {
	return fmt.Sprintf("%s_%s_%s-%d", origin, nodeKey, order, n)
}

func tabName(origin, nodeKey string) string {
	return origin + "_" + nodeKey
}

func newEntry(ev entity.DropMovementEvent, name string) entity.DropTarget {
	e := entity.DropTarget{
		ContainerName: name,
		Origin:        ev.Target.Origin,
		ScreenKey:     ev.Target.ScreenKey,
		Content:       ev.Content,
	}
	if e.Origin == "" {
		e.Origin = ev.TargetContainerName
	}
	if e.ScreenKey == "" {
		e.ScreenKey = entity.NewScreenKey()
	}
	e.NavigationTitle = ev.Target.NavigationTitle
	e.DropOutside = ev.Target.DropOutside
	return e
}

// insertIndex returns where entry goes in list given the anchor named next.
func insertIndex(list []entity.DropTarget, order, anchorOrder entity.DropPosition, next string) int {
	idx := -1
	if next != "" {
		idx = slices.IndexFunc(list, func(e entity.DropTarget) bool { return e.ContainerName == next })
	}
	switch {
	case idx >= 0 && order == entity.DropBefore:
		return idx
	case idx >= 0:
		return idx + 1
	case next != "" && anchorOrder == entity.DropCenter && order == entity.DropAfter:
		return 0
	case next != "" && anchorOrder == entity.DropCenter:
		return len(list)
	case order == entity.DropBefore:
		return 0
	default:
		return len(list)
	}
}

// insertEntry places entry in list next to the anchor named next, then
// drops repeated container names keeping the first occurrence. kept reports
// whether entry survived; dropped holds every discarded entry.
func insertEntry(list []entity.DropTarget, entry entity.DropTarget, order, anchorOrder entity.DropPosition, next string) (out []entity.DropTarget, kept bool, dropped []entity.DropTarget) {
	at := insertIndex(list, order, anchorOrder, next)
	merged := slices.Insert(slices.Clone(list), at, entry)

	seen := make(map[string]bool, len(merged))
	out = make([]entity.DropTarget, 0, len(merged))
	kept = true
	for i, e := range merged {
		if seen[e.ContainerName] {
			if i == at {
				kept = false
			}
			dropped = append(dropped, e)
			continue
		}
		seen[e.ContainerName] = true
		out = append(out, e)
	}
	return out, kept, dropped
}

func releaseDropped(t *entity.SplitTree, dropped []entity.DropTarget) {
	for _, d := range dropped {
		if d.Child != 0 {
			t.Release(d.Child)
		}
	}
}

// appendEntry applies an append event. It returns a forwarded event when
// the edit has to be carried out by another node.
func (uc *SplitScreenUseCase) appendEntry(ev entity.DropMovementEvent) (entity.DropResult, *entity.DropMovementEvent) {
	res := entity.DropResult{CorrelationID: ev.ID, Root: ev.Root, Point: ev.Point}
	if ev.Target == nil || !ev.Order.Valid() {
		return res, nil
	}

	var forward *entity.DropMovementEvent
	uc.registry.SplitScreens.Mutate(ev.Root, func(t *entity.SplitTree) bool {
		id := t.Find(ev.TargetLayoutName)
		if t.Node(id) == nil {
			return false
		}
		var landed entity.NodeID
		var changed bool
		if ev.Order == entity.DropCenter {
			landed, changed, forward = appendTab(t, id, ev)
		} else {
			landed, changed, forward = appendSide(t, id, ev)
		}
		if landed != 0 {
			res.Accepted = true
			res.TargetLayoutName = t.Key(landed)
		}
		return changed
	})
	return res, forward
}

func forwardTo(t *entity.SplitTree, ev entity.DropMovementEvent, id entity.NodeID) *entity.DropMovementEvent {
	fwd := ev
	fwd.TargetLayoutName = t.Key(id)
	return &fwd
}

// appendSide splits node id and places the dropped content before or after
// its center.
func appendSide(t *entity.SplitTree, id entity.NodeID, ev entity.DropMovementEvent) (entity.NodeID, bool, *entity.DropMovementEvent) {
	node := t.Node(id)

	if parent := t.Node(node.Parent); parent != nil && ev.ParentOrder == "" &&
		!node.IsSplit() && parent.IsSplit() && parent.Direction == ev.Target.Direction {
		if slot, ok := t.Slot(id); ok {
			fwd := forwardTo(t, ev, node.Parent)
			fwd.NextContainerName = slot.ContainerName
			fwd.ParentOrder = node.Position
			return 0, false, fwd
		}
	}

	key := t.Key(id)
	comps := node.SplitComponents.Clone()
	if !comps.IsSplit() && len(comps.Center) > 0 {
		groupKey := entity.NewScreenKey()
		group := t.Alloc(id, entity.DropCenter, groupKey, entity.SplitComponents{
			Direction:   comps.Direction,
			Center:      comps.Center,
			ActiveIndex: comps.ActiveIndex,
		})
		for _, child := range t.Children(id) {
			if child != group && t.Node(child).Position == entity.DropCenter {
				t.Reparent(child, group, entity.DropCenter)
			}
		}
		title := ""
		if active, ok := comps.Active(); ok {
			title = active.NavigationTitle
		}
		comps.Center = []entity.DropTarget{{
			ContainerName:   "group=" + groupKey,
			NavigationTitle: title,
			ScreenKey:       groupKey,
			Child:           group,
			Group:           true,
		}}
		comps.ActiveIndex = 0
	}
	comps.Direction = ev.Target.Direction

	anchorOrder := ev.ParentOrder
	if anchorOrder == "" {
		anchorOrder = ev.Order
	}
	listPos := ev.Order
	if anchorOrder != ev.Order && anchorOrder != entity.DropCenter {
		listPos = anchorOrder
	}

	list := comps.List(listPos)
	entry := newEntry(ev, "")
	entry.ContainerName = entryName(entry.Origin, key, ev.Order, len(list))
	inner := entry
	entry.Child = t.Alloc(id, listPos, entry.ScreenKey, entity.SplitComponents{
		Direction: ev.Target.Direction,
		Center:    []entity.DropTarget{inner},
	})

	list, kept, dropped := insertEntry(list, entry, ev.Order, anchorOrder, ev.NextContainerName)
	releaseDropped(t, dropped)
	comps.SetList(listPos, list)
	changed := t.Replace(id, comps)
	if !kept {
		return 0, changed, nil
	}
	return entry.Child, true, nil
}

// appendTab adds the dropped content as a tab of node id.
func appendTab(t *entity.SplitTree, id entity.NodeID, ev entity.DropMovementEvent) (entity.NodeID, bool, *entity.DropMovementEvent) {
	node := t.Node(id)
	comps := node.SplitComponents.Clone()

	if comps.IsSplit() {
		for _, e := range comps.Center {
			if e.Group && t.Node(e.Child) != nil {
				return 0, false, forwardTo(t, ev, e.Child)
			}
		}
	}

	if len(comps.Center) >= 2 {
		ai := comps.ActiveIndex
		if ai < 0 || ai >= len(comps.Center) {
			ai = 0
		}
		active := comps.Center[ai]
		if t.Node(active.Child) == nil {
			inner := active
			inner.Child = 0
			active.Child = t.Alloc(id, entity.DropCenter, entity.NewScreenKey(), entity.SplitComponents{
				Direction: comps.Direction,
				Center:    []entity.DropTarget{inner},
			})
			comps.Center[ai] = active
			t.Replace(id, comps)
		}
		fwd := forwardTo(t, ev, active.Child)
		return 0, true, fwd
	}

	entry := newEntry(ev, "")
	entry.ContainerName = tabName(entry.Origin, t.Key(id))
	center, kept, dropped := insertEntry(comps.Center, entry, entity.DropAfter, entity.DropCenter, "")
	if !kept && len(dropped) == 1 {
		return 0, false, nil
	}
	releaseDropped(t, dropped)
	comps.Center = center
	if kept {
		comps.ActiveIndex = slices.IndexFunc(center, func(e entity.DropTarget) bool {
			return e.ContainerName == entry.ContainerName
		})
	} else if comps.ActiveIndex >= len(center) {
		comps.ActiveIndex = len(center) - 1
	}
	changed := t.Replace(id, comps)
	if !kept {
		return 0, changed, nil
	}
	return id, changed, nil
}

// locateEntry finds the node holding containerName, searching owner first
// and then its descendants.
func locateEntry(t *entity.SplitTree, owner entity.NodeID, containerName string) (entity.NodeID, entity.DropPosition, int) {
	if node := t.Node(owner); node != nil {
		if pos, idx, ok := node.Locate(containerName); ok {
			return owner, pos, idx
		}
	}
	var (
		found entity.NodeID
		pos   entity.DropPosition
		idx   = -1
	)
	t.Walk(func(n *entity.SplitNode) bool {
		if n.ID == owner || !t.IsAncestor(owner, n.ID) {
			return true
		}
		if p, i, ok := n.Locate(containerName); ok {
			found, pos, idx = n.ID, p, i
			return false
		}
		return true
	})
	return found, pos, idx
}

func (uc *SplitScreenUseCase) removeEntry(ctx context.Context, ev entity.DropMovementEvent) []entity.DropMovementEvent {
	ownerKey := ev.TargetParentLayoutName
	if ownerKey == "" {
		ownerKey = ev.TargetLayoutName
	}

	var followups []entity.DropMovementEvent
	uc.registry.SplitScreens.Mutate(ev.Root, func(t *entity.SplitTree) bool {
		holder, pos, idx := locateEntry(t, t.Find(ownerKey), ev.TargetContainerName)
		if holder == 0 {
			logging.FromContext(ctx).Debug().
				Str("layout", ownerKey).
				Str("container", ev.TargetContainerName).
				Msg("remove target not found")
			return false
		}

		node := t.Node(holder)
		wasSplit := node.IsSplit()
		comps := node.SplitComponents.Clone()
		list := comps.List(pos)
		removed := list[idx]
		list = slices.Delete(list, idx, idx+1)

		if ev.NextContainerName != "" && ev.Target != nil {
			replacement := newEntry(ev, ev.NextContainerName)
			if pos != entity.DropCenter {
				inner := replacement
				replacement.Child = t.Alloc(holder, pos, replacement.ScreenKey, entity.SplitComponents{
					Direction: ev.Target.Direction,
					Center:    []entity.DropTarget{inner},
				})
			}
			list = slices.Insert(list, idx, replacement)
		}
		comps.SetList(pos, list)

		if pos == entity.DropCenter {
			switch {
			case len(list) == 0:
				comps.ActiveIndex = 0
			case idx < comps.ActiveIndex:
				comps.ActiveIndex--
			case comps.ActiveIndex >= len(list):
				comps.ActiveIndex = len(list) - 1
			}
		}

		t.Replace(holder, comps)
		if removed.Child != 0 {
			t.Release(removed.Child)
		}

		followups = normalize(t, holder, wasSplit, ev.Root)
		return true
	})
	return followups
}

// normalize collapses a node that stopped being split and reports the
// removal of a node that became empty to its parent.
func normalize(t *entity.SplitTree, id entity.NodeID, wasSplit bool, root string) []entity.DropMovementEvent {
	node := t.Node(id)
	if node == nil {
		return nil
	}

	if node.IsEmpty() {
		if node.Parent == 0 {
			return nil
		}
		slot, ok := t.Slot(id)
		if !ok {
			t.Release(id)
			return nil
		}
		return []entity.DropMovementEvent{{
			State:                  entity.MovementRemove,
			Root:                   root,
			TargetParentLayoutName: t.Key(node.Parent),
			TargetLayoutName:       t.Key(id),
			TargetContainerName:    slot.ContainerName,
		}}
	}

	if wasSplit && !node.IsSplit() && len(node.Center) == 1 && node.Center[0].Group {
		group := t.Node(node.Center[0].Child)
		if group == nil {
			return nil
		}
		comps := group.SplitComponents.Clone()
		for _, child := range t.Children(group.ID) {
			t.Reparent(child, id, t.Node(child).Position)
		}
		t.Release(group.ID)
		t.Replace(id, comps)
		return normalize(t, id, comps.IsSplit(), root)
	}
	return nil
}

func (uc *SplitScreenUseCase) changeEntry(ev entity.DropMovementEvent) {
	uc.registry.SplitScreens.Mutate(ev.Root, func(t *entity.SplitTree) bool {
		holder, pos, idx := locateEntry(t, t.Find(ev.TargetLayoutName), ev.TargetContainerName)
		if holder == 0 {
			return false
		}
		comps := t.Node(holder).SplitComponents.Clone()
		list := comps.List(pos)
		if ev.Target != nil {
			list[idx].NavigationTitle = ev.Target.NavigationTitle
		}
		if ev.Content != nil {
			list[idx].Content = ev.Content
		}
		return t.Replace(holder, comps)
	})
}

// ActivateTab selects the center entry at index.
func (uc *SplitScreenUseCase) ActivateTab(ctx context.Context, root, layoutName string, index int) bool {
	return uc.registry.SplitScreens.Mutate(root, func(t *entity.SplitTree) bool {
		id := t.Find(layoutName)
		node := t.Node(id)
		if node == nil || index < 0 || index >= len(node.Center) {
			return false
		}
		comps := node.SplitComponents.Clone()
		comps.ActiveIndex = index
		return t.Replace(id, comps)
	})
}

// CloseTab removes the center entry at index. Closing the last tab of a
// node removes the node from its parent.
func (uc *SplitScreenUseCase) CloseTab(ctx context.Context, root, layoutName string, index int) {
	var ev *entity.DropMovementEvent
	uc.registry.SplitScreens.Read(root, func(t *entity.SplitTree) {
		id := t.Find(layoutName)
		node := t.Node(id)
		if node == nil || index < 0 || index >= len(node.Center) {
			return
		}
		if len(node.Center) == 1 && node.Parent != 0 {
			if slot, ok := t.Slot(id); ok {
				ev = &entity.DropMovementEvent{
					State:                  entity.MovementRemove,
					Root:                   root,
					TargetParentLayoutName: t.Key(node.Parent),
					TargetLayoutName:       layoutName,
					TargetContainerName:    slot.ContainerName,
				}
				return
			}
		}
		ev = &entity.DropMovementEvent{
			State:               entity.MovementRemove,
			Root:                root,
			TargetLayoutName:    layoutName,
			TargetContainerName: node.Center[index].ContainerName,
		}
	})
	if ev != nil {
		uc.Dispatch(ctx, *ev)
	}
}

// Move relocates an entry to another node: the content is appended at the
// destination and, once accepted, removed from its source. The new entry is
// named after the full source name so a move inside one list never collides
// with the entry it replaces. Move must not be
// called from a drop movement subscriber.
func (uc *SplitScreenUseCase) Move(
	ctx context.Context,
	root, fromLayout, containerName, toLayout string,
	order entity.DropPosition,
	direction entity.Axis,
) entity.DropResult {
	var (
		entry entity.DropTarget
		found bool
	)
	uc.registry.SplitScreens.Read(root, func(t *entity.SplitTree) {
		holder, pos, idx := locateEntry(t, t.Find(fromLayout), containerName)
		if holder != 0 {
			entry, found = t.Node(holder).List(pos)[idx], true
		}
	})
	if !found {
		return entity.DropResult{Root: root}
	}

	reply := make(chan entity.DropResult, 1)
	uc.Dispatch(ctx, entity.DropMovementEvent{
		ID:                  entity.NewCorrelationID(),
		State:               entity.MovementAppend,
		Root:                root,
		TargetLayoutName:    toLayout,
		TargetContainerName: containerName,
		Content:             entry.Content,
		Order:               order,
		Target: &entity.DropTargetInfo{
			Origin:          containerName,
			NavigationTitle: entry.NavigationTitle,
			ScreenKey:       entry.ScreenKey,
			Direction:       direction,
			DropOutside:     entry.DropOutside,
		},
		Reply: reply,
	})

	var res entity.DropResult
	select {
	case res = <-reply:
	default:
	}
	if res.Accepted {
		uc.Dispatch(ctx, entity.DropMovementEvent{
			State:               entity.MovementRemove,
			Root:                root,
			TargetLayoutName:    fromLayout,
			TargetContainerName: containerName,
		})
	}
	return res
}
