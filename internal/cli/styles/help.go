package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// PlaygroundKeyMap defines keybindings for the layout playground.
type PlaygroundKeyMap struct {
	TogglePanel key.Binding
	NextDivider key.Binding
	PrevDivider key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Mode        key.Binding
	Fit         key.Binding
	NextNode    key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	CloseTab    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k PlaygroundKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePanel, k.Grow, k.Shrink, k.Mode, k.CloseTab, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k PlaygroundKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePanel, k.Fit, k.Mode},
		{k.NextDivider, k.PrevDivider, k.Grow, k.Shrink},
		{k.NextNode, k.NextTab, k.PrevTab, k.CloseTab},
		{k.Help, k.Quit},
	}
}

// DefaultPlaygroundKeyMap returns the default playground keybindings.
func DefaultPlaygroundKeyMap() PlaygroundKeyMap {
	return PlaygroundKeyMap{
		TogglePanel: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle panel"),
		),
		NextDivider: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next divider"),
		),
		PrevDivider: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev divider"),
		),
		Grow: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move divider"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move divider"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "divorce/bulldozer"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit last panel"),
		),
		NextNode: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next pane"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close tab"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
