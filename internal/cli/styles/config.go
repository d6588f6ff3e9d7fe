package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPath renders a labelled file path.
func (r *ConfigRenderer) RenderPath(label, path string) string {
	labelStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("  %s %s", labelStyle.Render(label), r.theme.Subtle.Render(path))
}

// RenderSchemaWritten renders the confirmation after writing the schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	return fmt.Sprintf("  %s %s", r.theme.SuccessStyle.Render("schema written"), r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render("error"), err.Error())
}
