// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/flex"
	"github.com/bnema/flexpane/internal/logging"
	"github.com/bnema/flexpane/internal/store"
)

// ErrNoLayout is returned when a container is mounted into an unknown layout.
var ErrNoLayout = errors.New("layout not registered")

// ManageContainersUseCase mounts containers into layouts and executes
// open/close/toggle commands against them.
type ManageContainersUseCase struct {
	registry   *store.Registry
	clock      port.Clock
	hints      port.SizeHints
	transition time.Duration

	mu        sync.Mutex
	listeners map[string]func()
}

// NewManageContainersUseCase creates the container command use case.
// hints may be nil.
func NewManageContainersUseCase(
	registry *store.Registry,
	clock port.Clock,
	hints port.SizeHints,
	transition time.Duration,
) *ManageContainersUseCase {
	return &ManageContainersUseCase{
		registry:   registry,
		clock:      clock,
		hints:      hints,
		transition: transition,
		listeners:  make(map[string]func()),
	}
}

// RegisterLayout makes a layout available to its containers.
func (uc *ManageContainersUseCase) RegisterLayout(ctx context.Context, layout *entity.Layout) {
	log := logging.FromContext(ctx)
	if uc.registry.Layouts.Register(layout) {
		log.Debug().
			Str("layout", layout.Name).
			Str("axis", layout.Axis.String()).
			Str("mode", string(layout.MovementMode)).
			Msg("layout registered")
	}
}

// UnregisterLayout unmounts every container of a layout and drops it.
func (uc *ManageContainersUseCase) UnregisterLayout(ctx context.Context, layoutName string) {
	for _, c := range uc.registry.Containers.List(layoutName) {
		uc.Unmount(ctx, layoutName, c.Name)
	}
	uc.registry.Layouts.Remove(layoutName)
}

// Measure records the measured bounds of a layout.
func (uc *ManageContainersUseCase) Measure(layoutName string, bounds entity.Rect) {
	layout := uc.registry.Layouts.Get(layoutName)
	if layout == nil {
		return
	}
	size := layout.Axis.Size(bounds)
	if layout.Bounds == bounds && layout.ClientSize == size {
		return
	}
	layout.Bounds = bounds
	layout.ClientSize = size
	uc.registry.Layouts.Notify(layoutName)
}

// Mount registers a container, applies its size hint, reruns the initial
// distribution of the layout and starts listening for commands.
func (uc *ManageContainersUseCase) Mount(ctx context.Context, c *entity.Container) error {
	ctx = logging.WithContainer(logging.WithLayout(ctx, c.LayoutName), c.Name)
	log := logging.FromContext(ctx)

	layout := uc.registry.Layouts.Get(c.LayoutName)
	if layout == nil {
		return ErrNoLayout
	}

	if uc.hints != nil {
		if grow, ok := uc.hints.Lookup(ctx, c.Name); ok {
			c.WithGrow(grow)
			c.IsInitialResizable = false
			log.Debug().Float64("grow", grow).Msg("applied size hint")
		}
	}

	if !uc.registry.Containers.Set(c.LayoutName, c.Name, c) {
		return nil
	}
	if c.IsResizePanel {
		uc.registry.ResizePanels.Set(c.LayoutName, c.Name, &entity.ResizePanel{
			ContainerName: c.Name,
			LayoutName:    c.LayoutName,
		})
	}

	flex.Remain(uc.registry.Containers.List(c.LayoutName))
	uc.listen(ctx, c.LayoutName, c.Name)
	uc.registry.Layouts.Notify(c.LayoutName)

	log.Debug().Float64("grow", flex.GetGrow(c)).Msg("container mounted")
	return nil
}

// Unmount removes a container and its command channels.
func (uc *ManageContainersUseCase) Unmount(ctx context.Context, layoutName, name string) {
	uc.mu.Lock()
	key := layoutName + "/" + name
	if stop, ok := uc.listeners[key]; ok {
		stop()
		delete(uc.listeners, key)
	}
	uc.mu.Unlock()

	removed := uc.registry.Containers.Remove(layoutName, name)
	uc.registry.ResizePanels.Remove(layoutName, name)
	uc.registry.ReleaseContainer(layoutName, name)
	if removed {
		uc.registry.Layouts.Notify(layoutName)
		logging.FromContext(ctx).Debug().Str("layout", layoutName).Str("container", name).Msg("container unmounted")
	}
}

func (uc *ManageContainersUseCase) listen(ctx context.Context, layoutName, name string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	key := layoutName + "/" + name
	if _, ok := uc.listeners[key]; ok {
		return
	}
	uc.listeners[key] = uc.registry.Requests(layoutName, name).Subscribe(func(req entity.ContainerStateRequest) {
		uc.Apply(ctx, layoutName, name, req)
	})
}

// Send publishes a command on the container's command channel.
func (uc *ManageContainersUseCase) Send(layoutName, name string, req entity.ContainerStateRequest) {
	uc.registry.Requests(layoutName, name).Set(req)
}

// Toggle opens a closed container or closes an open one.
func (uc *ManageContainersUseCase) Toggle(layoutName, name string) {
	uc.Send(layoutName, name, entity.ContainerStateRequest{Mode: entity.RequestToggle})
}

// Open opens a container.
func (uc *ManageContainersUseCase) Open(layoutName, name string, opts *entity.OpenOptions) {
	uc.Send(layoutName, name, entity.ContainerStateRequest{Mode: entity.RequestOpen, OpenOptions: opts})
}

// Close closes a container.
func (uc *ManageContainersUseCase) Close(layoutName, name string, opts *entity.CloseOptions) {
	uc.Send(layoutName, name, entity.ContainerStateRequest{Mode: entity.RequestClose, CloseOptions: opts})
}

// Apply executes a command immediately. It reports whether any grow
// changed. Unknown layouts or containers are ignored.
func (uc *ManageContainersUseCase) Apply(ctx context.Context, layoutName, name string, req entity.ContainerStateRequest) bool {
	log := logging.FromContext(ctx)

	layout := uc.registry.Layouts.Get(layoutName)
	containers := uc.registry.Containers.List(layoutName)
	target := uc.registry.Containers.Get(layoutName, name)
	if layout == nil || target == nil {
		log.Debug().Str("layout", layoutName).Str("container", name).Msg("command target not mounted")
		return false
	}

	opening := flex.IsClosed(target)
	switch req.Mode {
	case entity.RequestOpen:
		if !opening {
			return false
		}
	case entity.RequestClose:
		if opening {
			return false
		}
	case entity.RequestToggle:
	default:
		log.Debug().Str("mode", string(req.Mode)).Msg("unknown command mode")
		return false
	}

	var res flex.Result
	if opening {
		opts := entity.OpenOptions{}
		if maxSize := layout.Axis.MaxSize(target.Constraints); maxSize > 0 && layout.ClientSize > 0 {
			opts.OpenGrowImportant = flex.MathGrow(maxSize, layout.ClientSize, len(containers))
		}
		if req.OpenOptions != nil {
			opts.IsPrevSizeOpen = req.OpenOptions.IsPrevSizeOpen
			opts.IsResize = req.OpenOptions.IsResize
			if req.OpenOptions.OpenGrowImportant > 0 {
				opts.OpenGrowImportant = req.OpenOptions.OpenGrowImportant
			}
		}
		res = flex.OpenFlex(target, containers, opts, layout.ClientSize)
	} else {
		opts := entity.CloseOptions{}
		if req.CloseOptions != nil {
			opts = *req.CloseOptions
		}
		res = flex.CloseFlex(target, containers, opts)
	}

	log.Debug().
		Str("layout", layoutName).
		Str("container", name).
		Bool("open", opening).
		Float64("grow", res.Grow).
		Msg("container command applied")

	uc.registry.Layouts.Notify(layoutName)
	uc.settle(ctx, layoutName, target, opening, res, req)
	return true
}

func (uc *ManageContainersUseCase) settle(
	ctx context.Context,
	layoutName string,
	target *entity.Container,
	open bool,
	res flex.Result,
	req entity.ContainerStateRequest,
) {
	done := func() {
		for _, c := range res.Affected {
			c.Transitioning = false
			if uc.hints != nil {
				uc.hints.Remember(ctx, c.Name, flex.GetGrow(c))
			}
		}
		uc.registry.Layouts.Notify(layoutName)

		if open && req.OnOpen != nil {
			req.OnOpen()
		}
		if !open && req.OnClose != nil {
			req.OnClose()
		}
		uc.registry.Spread(layoutName, target.Name).Set(entity.ContainerState{
			LayoutName:    layoutName,
			ContainerName: target.Name,
			IsOpen:        open,
			Grow:          res.Grow,
		})
	}

	if uc.transition <= 0 {
		done()
		return
	}
	uc.clock.AfterFunc(uc.transition, done)
}

// FitContent sizes a container to its measured content.
func (uc *ManageContainersUseCase) FitContent(ctx context.Context, layoutName, name string, contentSize float64) bool {
	layout := uc.registry.Layouts.Get(layoutName)
	target := uc.registry.Containers.Get(layoutName, name)
	if layout == nil || target == nil || !target.FitContent {
		return false
	}
	grow := flex.FitContent(target, uc.registry.Containers.List(layoutName), contentSize, layout.ClientSize)
	logging.FromContext(ctx).Debug().Str("container", name).Float64("grow", grow).Msg("fit to content")
	uc.registry.Layouts.Notify(layoutName)
	return true
}
