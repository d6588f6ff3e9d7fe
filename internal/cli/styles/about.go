package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/flexpane/internal/domain/build"
)

// AboutRenderer renders build info.
type AboutRenderer struct {
	theme *Theme
}

// NewAboutRenderer creates a new about renderer with the given theme.
func NewAboutRenderer(theme *Theme) *AboutRenderer {
	return &AboutRenderer{theme: theme}
}

// Render renders build info next to a small logo.
func (r *AboutRenderer) Render(info build.Info) string {
	logoStyle := lipgloss.NewStyle().Foreground(r.theme.Accent).Bold(true).MarginLeft(2)
	logo := logoStyle.Render("┌─┬──┐\n│ │  │\n├─┴──┤\n└────┘")

	keyStyle := r.theme.Subtle
	valStyle := r.theme.Highlight
	line := func(k, v string) string {
		return fmt.Sprintf("%s %s", keyStyle.Render(fmt.Sprintf("%-8s", k)), valStyle.Render(v))
	}
	lines := lipgloss.JoinVertical(lipgloss.Left,
		line("Version", info.Version),
		line("Commit", info.Commit),
		line("Built", info.BuildDate),
		line("Go", info.GoVersion),
		keyStyle.Render(build.RepoURL()),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, "   ", lines)
}
