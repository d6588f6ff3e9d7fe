// Package cmd provides Cobra CLI commands for flexpane.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/flexpane/internal/cli"
	"github.com/bnema/flexpane/internal/domain/build"
)

// Command annotations read by the root pre-run.
const (
	annotationFileLog  = "flexpane/file-log"
	annotationDatabase = "flexpane/database"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "flexpane",
		Short: "Flex panel layout engine with a terminal playground",
		Long: `flexpane - resizable flex panels and drag-to-split screens.

The layout engine grows and shrinks named containers along a row, lets
dividers between them be dragged in divorce or bulldozer mode, and routes
tabs dragged onto a workspace into nested split screens.

Use 'flexpane demo' to try it in the terminal, or explore the subcommands
to inspect the configuration and the persisted size hints.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigFile:   configFile,
				FileLog:      cmd.Annotations[annotationFileLog] == "true",
				OpenDatabase: cmd.Annotations[annotationDatabase] == "true",
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/flexpane/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
