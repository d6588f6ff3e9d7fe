package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/flexpane/internal/cli/styles"
	"github.com/bnema/flexpane/internal/logging"
)

var hintsFlags struct {
	session string
	all     bool
}

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "Manage remembered panel sizes",
	Long: `Manage the size hints remembered between playground runs.

Hints are grouped by session. The default session comes from the
size_hints.session config key.`,
}

var hintsListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List the size hints of a session",
	Annotations: map[string]string{annotationDatabase: "true"},
	RunE:        runHintsList,
}

var hintsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the size hints of a session",
	Long: `Forget the size hints of a session, or of every session with --all.

Examples:
  flexpane hints clear
  flexpane hints clear --session work
  flexpane hints clear --all`,
	Annotations: map[string]string{annotationDatabase: "true"},
	RunE:        runHintsClear,
}

func init() {
	hintsCmd.PersistentFlags().StringVar(&hintsFlags.session, "session", "", "size hint session (default from config)")
	hintsClearCmd.Flags().BoolVar(&hintsFlags.all, "all", false, "clear every session")
	hintsClearCmd.MarkFlagsMutuallyExclusive("session", "all")
	hintsCmd.AddCommand(hintsListCmd, hintsClearCmd)
	rootCmd.AddCommand(hintsCmd)
}

func hintsSession(configured string) string {
	if hintsFlags.session != "" {
		return hintsFlags.session
	}
	return configured
}

func runHintsList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if a.Hints == nil {
		return fmt.Errorf("size hints are disabled (size_hints.enabled = false)")
	}

	session := hintsSession(a.Config.SizeHints.Session)
	hints, err := a.Hints.List(a.Ctx(), session)
	if err != nil {
		return fmt.Errorf("list size hints: %w", err)
	}
	if len(hints) == 0 {
		fmt.Println(a.Theme.Subtle.Render(fmt.Sprintf("  no size hints in session %q", session)))
		return nil
	}

	fmt.Println(a.Theme.Title.Render("Size hints") + " " + a.Theme.Subtitle.Render(session))
	height := min(len(hints)+1, 20)
	table := styles.NewStyledTable(a.Theme, styles.SizeHintColumns(), styles.SizeHintRows(hints, time.Now()), 66, height)
	fmt.Println(a.Theme.Box.Render(table.View()))
	return nil
}

func runHintsClear(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if a.Hints == nil {
		return fmt.Errorf("size hints are disabled (size_hints.enabled = false)")
	}
	ctx := a.Ctx()
	log := logging.FromContext(ctx)

	if hintsFlags.all {
		if err := a.Hints.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear size hints: %w", err)
		}
		log.Info().Msg("cleared all size hints")
		fmt.Println(a.Theme.SuccessStyle.Render("  cleared every size hint session"))
		return nil
	}

	session := hintsSession(a.Config.SizeHints.Session)
	if err := a.Hints.DeleteSession(ctx, session); err != nil {
		return fmt.Errorf("clear size hints: %w", err)
	}
	log.Info().Str("session", session).Msg("cleared size hints")
	fmt.Println(a.Theme.SuccessStyle.Render(fmt.Sprintf("  cleared session %q", session)))
	return nil
}
