package styles

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/flexpane/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Cell.
		Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// SizeHintColumns returns columns for the size hint table.
func SizeHintColumns() []table.Column {
	return []table.Column{
		{Title: "Container", Width: 32},
		{Title: "Grow", Width: 8},
		{Title: "Updated", Width: 20},
	}
}

// SizeHintRows converts hints to table rows, newest first as given.
func SizeHintRows(hints []*entity.SizeHint, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(hints))
	for _, h := range hints {
		rows = append(rows, table.Row{
			h.ContainerName,
			strconv.FormatFloat(h.Grow, 'f', 3, 64),
			relativeTime(h.UpdatedAt, now),
		})
	}
	return rows
}

// relativeTime renders t relative to now in coarse units.
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h ago"
	default:
		return t.Format("2006-01-02 15:04")
	}
}
