package usecase

import (
	"context"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/logging"
)

type dropHit struct {
	root     string
	key      string
	bounds   entity.Rect
	boundary entity.Boundary
	self     bool
}

// HandleDrag reacts to a broadcast drag state: it moves the drop preview
// while dragging and routes terminal drop states to Drop.
func (uc *SplitScreenUseCase) HandleDrag(ctx context.Context, s entity.DragState) {
	if s.IsDragging {
		uc.Preview(s)
		return
	}
	uc.registry.DropPreview.Set(entity.DropPreview{})
	if s.IsDrop {
		uc.Drop(ctx, s)
	}
}

// Preview publishes the highlight for the node under the pointer.
func (uc *SplitScreenUseCase) Preview(s entity.DragState) {
	hit, ok := uc.locate(s)
	if !ok || hit.self {
		uc.registry.DropPreview.Set(entity.DropPreview{})
		return
	}
	uc.registry.DropPreview.Set(entity.DropPreview{
		Visible:    true,
		Root:       hit.root,
		LayoutName: hit.key,
		Boundary:   hit.boundary,
		Rect:       hit.boundary.Preview().Apply(hit.bounds),
	})
}

// Drop routes a terminal drop state to the deepest unsplit node under the
// pointer. The drag source receives exactly one DropResult.
func (uc *SplitScreenUseCase) Drop(ctx context.Context, s entity.DragState) {
	log := logging.FromContext(ctx)
	res := entity.DropResult{CorrelationID: s.CorrelationID, Point: s.Point}

	hit, ok := uc.locate(s)
	switch {
	case !ok:
		if s.DropOutside != nil && !uc.insideAnyRoot(s.Point) {
			res.Outside = s.DropOutside
			log.Debug().Str("container", s.ContainerName).Msg("dropped outside split screens")
		}
		sendReply(s.Reply, res)
		return
	case hit.self:
		log.Debug().Str("container", s.ContainerName).Str("layout", hit.key).Msg("ignoring drop onto itself")
		sendReply(s.Reply, res)
		return
	}

	origin := s.ContainerName
	uc.Dispatch(ctx, entity.DropMovementEvent{
		ID:                  s.CorrelationID,
		State:               entity.MovementAppend,
		Root:                hit.root,
		TargetLayoutName:    hit.key,
		TargetContainerName: s.ContainerName,
		Content:             s.Content,
		Order:               hit.boundary.Position(),
		Point:               s.Point,
		Target: &entity.DropTargetInfo{
			Origin:          origin,
			NavigationTitle: s.NavigationTitle,
			ScreenKey:       s.ScreenKey,
			Direction:       hit.boundary.Axis(),
			DropOutside:     s.DropOutside,
		},
		Reply: s.Reply,
	})
}

func (uc *SplitScreenUseCase) locate(s entity.DragState) (dropHit, bool) {
	for _, root := range uc.registry.SplitScreens.Roots() {
		var (
			hit   dropHit
			found bool
		)
		uc.registry.SplitScreens.Read(root, func(t *entity.SplitTree) {
			best, bestDepth := entity.NodeID(0), -1
			t.Walk(func(n *entity.SplitNode) bool {
				if !n.HasBounds || n.IsSplit() || !n.Bounds.Contains(s.Point) {
					return true
				}
				if d := t.Depth(n.ID); d > bestDepth {
					best, bestDepth = n.ID, d
				}
				return true
			})
			node := t.Node(best)
			if node == nil {
				return
			}
			boundary, _ := entity.ClassifyBoundary(node.Bounds, s.Point, uc.cfg.BoundaryRatio)
			hit = dropHit{
				root:     root,
				key:      t.Key(best),
				bounds:   node.Bounds,
				boundary: boundary,
				self:     isSelfDrop(t, best, s.ContainerName),
			}
			found = true
		})
		if found {
			return hit, true
		}
	}
	return dropHit{}, false
}

// isSelfDrop reports whether dropping containerName on node id would drop
// content onto itself or into one of its own descendants.
func isSelfDrop(t *entity.SplitTree, id entity.NodeID, containerName string) bool {
	if containerName == "" {
		return false
	}
	if node := t.Node(id); node != nil && !node.IsSplit() &&
		len(node.Center) == 1 && node.Center[0].ContainerName == containerName {
		return true
	}
	for cur := id; cur != 0; {
		node := t.Node(cur)
		if node == nil {
			return false
		}
		if slot, ok := t.Slot(cur); ok && slot.ContainerName == containerName {
			return true
		}
		cur = node.Parent
	}
	return false
}

func (uc *SplitScreenUseCase) insideAnyRoot(p entity.Point) bool {
	inside := false
	for _, root := range uc.registry.SplitScreens.Roots() {
		uc.registry.SplitScreens.Read(root, func(t *entity.SplitTree) {
			if n := t.Node(entity.RootID); n != nil && n.HasBounds && n.Bounds.Contains(p) {
				inside = true
			}
		})
	}
	return inside
}
