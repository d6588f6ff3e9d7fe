package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/flex"
	"github.com/bnema/flexpane/internal/logging"
	"github.com/bnema/flexpane/internal/store"
)

// ResizeConfig tunes divider dragging.
type ResizeConfig struct {
	DoubleClickWindow time.Duration
	TouchMultiplier   float64
}

// DefaultResizeConfig returns the stock divider settings.
func DefaultResizeConfig() ResizeConfig {
	return ResizeConfig{DoubleClickWindow: 500 * time.Millisecond, TouchMultiplier: 2}
}

// ResizePanelUseCase drives divider drags between adjacent containers.
type ResizePanelUseCase struct {
	registry   *store.Registry
	containers *ManageContainersUseCase
	clock      port.Clock
	hints      port.SizeHints
	cfg        ResizeConfig

	mu        sync.Mutex
	lastClick map[string]time.Time
}

// NewResizePanelUseCase creates the divider controller. hints may be nil.
func NewResizePanelUseCase(
	registry *store.Registry,
	containers *ManageContainersUseCase,
	clock port.Clock,
	hints port.SizeHints,
	cfg ResizeConfig,
) *ResizePanelUseCase {
	if cfg.TouchMultiplier <= 0 {
		cfg.TouchMultiplier = 1
	}
	return &ResizePanelUseCase{
		registry:   registry,
		containers: containers,
		clock:      clock,
		hints:      hints,
		cfg:        cfg,
		lastClick:  make(map[string]time.Time),
	}
}

// ResizeSession is one divider drag, from press to release.
type ResizeSession struct {
	uc            *ResizePanelUseCase
	layoutName    string
	containerName string
	axis          entity.Axis
	mode          entity.MovementMode
	count         int
	parentSize    float64
	totalMovement float64
	ended         bool
}

// Begin starts dragging the divider after containerName. It snapshots the
// container count and the parent size for the whole drag.
func (uc *ResizePanelUseCase) Begin(ctx context.Context, layoutName, containerName string) (*ResizeSession, bool) {
	log := logging.FromContext(logging.WithContainer(logging.WithLayout(ctx, layoutName), containerName))

	layout := uc.registry.Layouts.Get(layoutName)
	if layout == nil || uc.registry.Containers.Get(layoutName, containerName) == nil {
		log.Debug().Msg("resize target not mounted")
		return nil, false
	}

	uc.registry.Cursor.Set(layout.Axis.Cursor())
	uc.registry.Resizing.Set(true)

	log.Debug().
		Str("mode", string(layout.MovementMode)).
		Float64("parent_size", layout.ClientSize).
		Msg("resize started")

	return &ResizeSession{
		uc:            uc,
		layoutName:    layoutName,
		containerName: containerName,
		axis:          layout.Axis,
		mode:          layout.MovementMode,
		count:         len(uc.registry.Containers.List(layoutName)),
		parentSize:    layout.ClientSize,
	}, true
}

// TotalMovement returns the signed distance dragged so far.
func (s *ResizeSession) TotalMovement() float64 {
	return s.totalMovement
}

// MoveTouch applies the movement between two touch points along the axis,
// scaled by the touch multiplier.
func (s *ResizeSession) MoveTouch(ctx context.Context, prev, cur entity.Point) bool {
	return s.Move(ctx, s.axis.Coord(cur.Sub(prev))*s.uc.cfg.TouchMultiplier)
}

// Move applies one pointer movement. It reports whether any grow changed;
// a move that would push a container past its maximum is rejected whole.
func (s *ResizeSession) Move(ctx context.Context, movement float64) bool {
	if s.ended || movement == 0 || s.parentSize <= 0 {
		return false
	}
	log := logging.FromContext(ctx)
	s.totalMovement += movement

	containers := s.uc.registry.Containers.List(s.layoutName)
	origin := slices.IndexFunc(containers, func(c *entity.Container) bool { return c.Name == s.containerName })
	if origin < 0 || origin+1 >= len(containers) {
		return false
	}

	divorce := s.mode != entity.MovementBulldozer
	target := flex.FindNotClosed(containers, origin, -1)
	if (divorce && s.totalMovement > 0) || (!divorce && movement > 0) || target < 0 {
		target = origin
	}
	next := flex.FindNotClosed(containers, origin+1, 1)
	if (divorce && s.totalMovement < 0) || (!divorce && movement < 0) || next < 0 {
		next = origin + 1
	}

	sizes := flex.Sizes(containers, s.parentSize)
	targetSize := sizes[target] + movement
	nextSize := sizes[next] - movement

	tc, nc := containers[target], containers[next]
	if maxSize := s.axis.MaxSize(tc.Constraints); maxSize > 0 && targetSize > maxSize {
		return false
	}
	if maxSize := s.axis.MaxSize(nc.Constraints); maxSize > 0 && nextSize > maxSize {
		return false
	}

	switch {
	case flex.IsOverMove(targetSize, s.axis.MinSize(tc.Constraints)):
		tc.SetGrow(0)
	case flex.IsOverMove(nextSize, s.axis.MinSize(nc.Constraints)):
		nc.SetGrow(0)
	default:
		tc.SetGrow(flex.MathGrow(targetSize, s.parentSize, s.count))
		nc.SetGrow(flex.MathGrow(nextSize, s.parentSize, s.count))
	}

	log.Trace().
		Str("target", tc.Name).
		Str("next", nc.Name).
		Float64("movement", movement).
		Float64("target_grow", flex.GetGrow(tc)).
		Float64("next_grow", flex.GetGrow(nc)).
		Msg("resize move")

	s.uc.registry.Layouts.Notify(s.layoutName)
	return true
}

// End finishes the drag, restores the cursor and records size hints.
func (s *ResizeSession) End(ctx context.Context) {
	if s.ended {
		return
	}
	s.ended = true
	s.uc.registry.Cursor.Set("")
	s.uc.registry.Resizing.Set(false)

	if s.uc.hints != nil {
		for _, c := range s.uc.registry.Containers.List(s.layoutName) {
			s.uc.hints.Remember(ctx, c.Name, flex.GetGrow(c))
		}
	}
	logging.FromContext(ctx).Debug().
		Str("layout", s.layoutName).
		Float64("total_movement", s.totalMovement).
		Msg("resize ended")
}

// Click records a click on the divider after containerName. A second click
// inside the double-click window toggles the container without restoring
// its previous size, and Click reports true.
func (uc *ResizePanelUseCase) Click(ctx context.Context, layoutName, containerName string) bool {
	now := uc.clock.Now()
	key := layoutName + "/" + containerName

	uc.mu.Lock()
	last, ok := uc.lastClick[key]
	if ok && now.Sub(last) <= uc.cfg.DoubleClickWindow {
		delete(uc.lastClick, key)
		uc.mu.Unlock()

		logging.FromContext(ctx).Debug().Str("container", containerName).Msg("divider double click")
		uc.containers.Send(layoutName, containerName, entity.ContainerStateRequest{
			Mode:        entity.RequestToggle,
			OpenOptions: &entity.OpenOptions{IsPrevSizeOpen: false},
		})
		return true
	}
	uc.lastClick[key] = now
	uc.mu.Unlock()
	return false
}
