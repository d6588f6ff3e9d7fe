package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/application/usecase"
	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/infrastructure/clock"
	"github.com/bnema/flexpane/internal/logging"
	"github.com/bnema/flexpane/internal/ui/tui"
)

var demoFlags struct {
	panels  []string
	tabs    []string
	mode    string
	session string
	fresh   bool
	noHints bool
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive layout playground",
	Long: `Run the layout engine in the terminal.

The top row holds flex panels separated by draggable dividers. Drag a
divider with the mouse or select it with tab and nudge it with the arrow
keys. Press a panel number to close or reopen it.

The bottom area is a split-screen workspace. Hold a tab, then drag it onto
an edge of a pane to split it, onto another pane's center to stack it, or
over the panels to drop it outside.

Examples:
  flexpane demo
  flexpane demo --panels files,editor,terminal,outline --mode bulldozer
  flexpane demo --fresh              # ignore remembered panel sizes`,
	Annotations: map[string]string{
		annotationFileLog: "true",
	},
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringSliceVar(&demoFlags.panels, "panels", []string{"files", "editor", "preview"}, "panel names, left to right")
	demoCmd.Flags().StringSliceVar(&demoFlags.tabs, "tabs", []string{"notes", "logs", "shell"}, "workspace tab names")
	demoCmd.Flags().StringVar(&demoFlags.mode, "mode", "", "divider movement mode (divorce or bulldozer)")
	demoCmd.Flags().StringVar(&demoFlags.session, "session", "", "size hint session (default from config)")
	demoCmd.Flags().BoolVar(&demoFlags.fresh, "fresh", false, "use a new random size hint session")
	demoCmd.Flags().BoolVar(&demoFlags.noHints, "no-hints", false, "do not read or write size hints")
	demoCmd.MarkFlagsMutuallyExclusive("session", "fresh")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if len(demoFlags.panels) == 0 {
		return fmt.Errorf("at least one panel is required")
	}

	var mode entity.MovementMode
	if demoFlags.mode != "" {
		if mode, err = entity.ParseMovementMode(demoFlags.mode); err != nil {
			return err
		}
	}

	var hints port.SizeHints
	if app.Hints != nil && !demoFlags.noHints {
		session := app.Config.SizeHints.Session
		switch {
		case demoFlags.fresh:
			session = uuid.NewString()
		case demoFlags.session != "":
			session = demoFlags.session
		}
		service := usecase.NewSizeHintService(app.Hints, session, clock.System{})
		cached, err := usecase.NewCachedSizeHints(app.Ctx(), service)
		if err != nil {
			logging.FromContext(app.Ctx()).Warn().Err(err).Str("session", session).Msg("size hint preload failed, reading through")
			hints = service
		} else {
			defer cached.Flush()
			hints = cached
		}
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.Options{
		Config: app.Config,
		Theme:  app.Theme,
		Hints:  hints,
		Mode:   mode,
		Panels: demoFlags.panels,
		Tabs:   demoFlags.tabs,
		Watch:  app.ConfigManager,
	})
}
