// Package tui hosts the layout engine in a Bubble Tea terminal playground:
// a row of flex panels with draggable dividers above a split-screen
// workspace whose tabs can be dragged into new splits.
package tui

import (
	"context"
	"fmt"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/application/usecase"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/gesture"
	"github.com/bnema/flexpane/internal/infrastructure/clock"
	"github.com/bnema/flexpane/internal/infrastructure/config"
	"github.com/bnema/flexpane/internal/logging"
	"github.com/bnema/flexpane/internal/store"
	"github.com/bnema/flexpane/internal/ui/mainloop"
)

const (
	// PanelLayout is the name of the flex row layout.
	PanelLayout = "panels"
	// WorkspaceRoot is the name of the split-screen root.
	WorkspaceRoot = "workspace"
)

// Engine wires the layout use cases around one registry. Timer callbacks
// and frame work are queued and run by Drain on the owning goroutine.
type Engine struct {
	Registry   *store.Registry
	Containers *usecase.ManageContainersUseCase
	Resize     *usecase.ResizePanelUseCase
	Split      *usecase.SplitScreenUseCase
	Drag       *usecase.DragSourceUseCase

	queue  *mainloop.Queue
	frames *mainloop.Coalescer
	clock  port.Clock
}

// GestureConfig converts the gesture section of the config.
func GestureConfig(cfg *config.Config) gesture.Config {
	return gesture.Config{
		MouseHoldDelay:   cfg.Gesture.MouseHoldDelay(),
		TouchHoldDelay:   cfg.Gesture.TouchHoldDelay(),
		ScrollThreshold:  cfg.Gesture.ScrollThreshold,
		ResumeDelay:      cfg.Gesture.ResumeDelay(),
		BlockActiveInput: cfg.Gesture.BlockActiveInput,
	}
}

// NewEngine creates the engine. base is the time source, hints may be nil
// and wake is called whenever queued work is waiting for Drain.
func NewEngine(cfg *config.Config, base port.Clock, hints port.SizeHints, wake func()) *Engine {
	if base == nil {
		base = clock.System{}
	}
	queue := mainloop.NewQueue(wake)
	clk := clock.NewPosted(base, queue.Post)
	frames := mainloop.NewCoalescer(queue.Post)
	registry := store.NewRegistry()

	containers := usecase.NewManageContainersUseCase(registry, clk, hints, cfg.Animation.Transition())
	resize := usecase.NewResizePanelUseCase(registry, containers, clk, hints, usecase.ResizeConfig{
		DoubleClickWindow: cfg.Resize.DoubleClickWindow(),
		TouchMultiplier:   cfg.Resize.TouchMultiplier,
	})
	split := usecase.NewSplitScreenUseCase(registry, usecase.SplitScreenConfig{
		BoundaryRatio: cfg.SplitScreen.BoundaryRatio,
	})
	drag := usecase.NewDragSourceUseCase(registry, frames, clk, GestureConfig(cfg))

	return &Engine{
		Registry:   registry,
		Containers: containers,
		Resize:     resize,
		Split:      split,
		Drag:       drag,
		queue:      queue,
		frames:     frames,
		clock:      clk,
	}
}

// Mount registers the panel row and the workspace. Every panel but the
// last owns a divider; the last one sizes to its content on request.
func (e *Engine) Mount(ctx context.Context, mode entity.MovementMode, panels, tabs []string) error {
	e.Split.Start(ctx)

	layout := entity.NewLayout(PanelLayout, entity.AxisRow)
	layout.MovementMode = mode
	e.Containers.RegisterLayout(ctx, layout)

	for i, name := range panels {
		c := entity.NewContainer(PanelLayout, name, i)
		c.IsResizePanel = i < len(panels)-1
		c.FitContent = i == len(panels)-1
		c.Constraints.MinWidth = 3
		if err := e.Containers.Mount(ctx, c); err != nil {
			return fmt.Errorf("mount panel %s: %w", name, err)
		}
	}

	entries := make([]entity.DropTarget, 0, len(tabs))
	for _, name := range tabs {
		entries = append(entries, entity.DropTarget{
			ContainerName:   name,
			NavigationTitle: name,
			Content:         "content of " + name,
			DropOutside: &entity.DropOutsideOption{
				OpenURL:     "flexpane://" + name,
				WidthRatio:  0.5,
				HeightRatio: 0.5,
				NewTab:      true,
			},
		})
	}
	e.Split.Mount(ctx, WorkspaceRoot, entity.AxisRow, entries...)

	logging.FromContext(ctx).Info().
		Int("panels", len(panels)).
		Int("tabs", len(tabs)).
		Str("mode", string(mode)).
		Msg("playground mounted")
	return nil
}

// Reconfigure applies a reloaded config on the goroutine that drains the
// engine. Only the movement mode of the panel row is applied live.
func (e *Engine) Reconfigure(ctx context.Context, cfg *config.Config) {
	e.queue.Post(func() {
		mode, err := entity.ParseMovementMode(cfg.Resize.MovementMode)
		if err != nil {
			return
		}
		layout := e.Registry.Layouts.Get(PanelLayout)
		if layout == nil || layout.MovementMode == mode {
			return
		}
		layout.MovementMode = mode
		e.Registry.Layouts.Notify(PanelLayout)
		logging.FromContext(ctx).Info().Str("mode", string(mode)).Msg("movement mode reloaded")
	})
}

// Drain runs queued timer callbacks and frame work.
func (e *Engine) Drain() int {
	return e.queue.Drain()
}

// Close stops listening to the registry and drops pending frames.
func (e *Engine) Close(ctx context.Context) {
	e.Split.Close()
	e.frames.Destroy()
	e.Containers.UnregisterLayout(ctx, PanelLayout)
	e.Split.Unmount(ctx, WorkspaceRoot)
}
