package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/cli/styles"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/infrastructure/config"
	"github.com/bnema/flexpane/internal/logging"
)

// Options configures a playground run.
type Options struct {
	Config *config.Config
	Theme  *styles.Theme
	// Hints may be nil to disable size hints.
	Hints port.SizeHints
	// Mode overrides the configured movement mode when set.
	Mode   entity.MovementMode
	Panels []string
	Tabs   []string
	// Watch, when set, reloads the config file while the playground runs.
	// It is ignored when Mode is set.
	Watch *config.Manager
}

// Run mounts the playground and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	mode := opts.Mode
	if mode == "" {
		parsed, err := entity.ParseMovementMode(cfg.Resize.MovementMode)
		if err != nil {
			return err
		}
		mode = parsed
	}

	wake := make(chan struct{}, 1)
	engine := NewEngine(cfg, nil, opts.Hints, func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	if err := engine.Mount(ctx, mode, opts.Panels, opts.Tabs); err != nil {
		return err
	}
	defer engine.Close(ctx)

	if opts.Watch != nil && opts.Mode == "" {
		opts.Watch.OnConfigChange(func(c *config.Config) { engine.Reconfigure(ctx, c) })
		if err := opts.Watch.Watch(ctx); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("config watch failed")
		}
	}

	fps := 60
	if interval := cfg.Animation.FrameIntervalMs; interval > 0 {
		fps = max(1, 1000/interval)
	}

	model := NewModel(ctx, engine, opts.Theme, cfg.Resize.KeyboardStep, wake)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFPS(fps),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run playground: %w", err)
	}
	return nil
}
