package usecase

import (
	"context"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/gesture"
	"github.com/bnema/flexpane/internal/logging"
	"github.com/bnema/flexpane/internal/store"
)

// DragSource describes draggable content rendered in a split-screen node.
type DragSource struct {
	Root            string
	LayoutName      string
	ContainerName   string
	NavigationTitle string
	ScreenKey       string
	Content         any
	DropOutside     *entity.DropOutsideOption
	CustomData      map[string]any

	// OnResult receives the outcome of every completed drop.
	OnResult func(entity.DropResult)
}

// DragSourceUseCase turns gesture callbacks into broadcast drag states and
// removes moved content from its source once a drop is accepted.
type DragSourceUseCase struct {
	registry *store.Registry
	frames   port.FrameScheduler
	clock    port.Clock
	cfg      gesture.Config
}

// NewDragSourceUseCase creates the drag source use case.
func NewDragSourceUseCase(registry *store.Registry, frames port.FrameScheduler, clock port.Clock, cfg gesture.Config) *DragSourceUseCase {
	return &DragSourceUseCase{registry: registry, frames: frames, clock: clock, cfg: cfg}
}

// Bind creates the gesture machine driving drags of src.
func (uc *DragSourceUseCase) Bind(ctx context.Context, src DragSource) *gesture.Machine {
	ctx = logging.WithComponent(ctx, "drag-source")
	frameKey := "drag:" + src.Root + "/" + src.ContainerName

	state := func(p entity.Point) entity.DragState {
		return entity.DragState{
			Point:           p,
			Root:            src.Root,
			SourceLayout:    src.LayoutName,
			ContainerName:   src.ContainerName,
			NavigationTitle: src.NavigationTitle,
			ScreenKey:       src.ScreenKey,
			Content:         src.Content,
			DropOutside:     src.DropOutside,
			CustomData:      src.CustomData,
		}
	}
	dragging := func(p entity.Point) {
		s := state(p)
		s.IsDragging = true
		uc.frames.Post(frameKey, func() { uc.registry.DragState.Set(s) })
	}
	abandon := func(p entity.Point) {
		s := state(p)
		uc.frames.Post(frameKey, func() { uc.registry.DragState.Set(s) })
	}

	return gesture.NewMachine(uc.cfg, uc.clock, gesture.Handlers{
		OnDragStart: func(p entity.Point) {
			logging.FromContext(ctx).Debug().Str("container", src.ContainerName).Msg("drag started")
			dragging(p)
		},
		OnDragMove: dragging,
		OnDragEnd: func(p entity.Point) {
			uc.frames.Post(frameKey, func() { uc.drop(ctx, src, state(p)) })
		},
		OnNotDrag: abandon,
		OnCancel:  abandon,
	})
}

func (uc *DragSourceUseCase) drop(ctx context.Context, src DragSource, s entity.DragState) {
	log := logging.FromContext(ctx)

	reply := make(chan entity.DropResult, 1)
	s.IsDrop = true
	s.CorrelationID = entity.NewCorrelationID()
	s.Reply = reply
	uc.registry.DragState.Set(s)

	var res entity.DropResult
	select {
	case res = <-reply:
	default:
		res = entity.DropResult{CorrelationID: s.CorrelationID, Point: s.Point}
	}

	if res.Accepted {
		log.Debug().
			Str("container", src.ContainerName).
			Str("target", res.TargetLayoutName).
			Msg("drop accepted, removing from source")
		uc.registry.DropMovement.Set(entity.DropMovementEvent{
			State:               entity.MovementRemove,
			Root:                src.Root,
			TargetLayoutName:    src.LayoutName,
			TargetContainerName: src.ContainerName,
		})
	}
	if src.OnResult != nil {
		src.OnResult(res)
	}
}
