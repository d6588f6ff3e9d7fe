package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/flexpane/internal/cli/styles"
	"github.com/bnema/flexpane/internal/domain/entity"
)

// paint selects the theme style a cell is rendered with.
type paint uint8

const (
	paintNone paint = iota
	paintText
	paintMuted
	paintTitle
	paintBorder
	paintBorderActive
	paintDivider
	paintDividerActive
	paintTab
	paintTabActive
	paintPreview
	paintClosed
)

// canvas is a grid of cells painted back to front and rendered once.
type canvas struct {
	w, h   int
	runes  []rune
	paints []paint
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, runes: make([]rune, w*h), paints: make([]paint, w*h)}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.paints[y*c.w+x] = p
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.runes[y*c.w+x]
}

// text writes s from (x, y), clipped to limit cells.
func (c *canvas) text(x, y int, s string, limit int, p paint) {
	for _, r := range s {
		if limit <= 0 {
			return
		}
		c.set(x, y, r, p)
		x++
		limit--
	}
}

// cells converts a surface rectangle to whole cells.
func cells(r entity.Rect) (x, y, w, h int) {
	return int(r.X), int(r.Y), int(r.W), int(r.H)
}

// box draws a single-line border around r.
func (c *canvas) box(r entity.Rect, p paint) {
	x, y, w, h := cells(r)
	if w < 2 || h < 2 {
		return
	}
	for i := x + 1; i < x+w-1; i++ {
		c.set(i, y, '─', p)
		c.set(i, y+h-1, '─', p)
	}
	for j := y + 1; j < y+h-1; j++ {
		c.set(x, j, '│', p)
		c.set(x+w-1, j, '│', p)
	}
	c.set(x, y, '┌', p)
	c.set(x+w-1, y, '┐', p)
	c.set(x, y+h-1, '└', p)
	c.set(x+w-1, y+h-1, '┘', p)
}

// fill sets every cell of r to ch.
func (c *canvas) fill(r entity.Rect, ch rune, p paint) {
	x, y, w, h := cells(r)
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			c.set(i, j, ch, p)
		}
	}
}

// tint repaints r keeping its runes.
func (c *canvas) tint(r entity.Rect, p paint) {
	x, y, w, h := cells(r)
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if i >= 0 && j >= 0 && i < c.w && j < c.h {
				c.paints[j*c.w+i] = p
			}
		}
	}
}

func paintStyles(t *styles.Theme) map[paint]lipgloss.Style {
	return map[paint]lipgloss.Style{
		paintText:          t.Normal,
		paintMuted:         t.Subtle,
		paintTitle:         t.Title,
		paintBorder:        t.PaneBorder,
		paintBorderActive:  t.PaneBorderActive,
		paintDivider:       t.Divider,
		paintDividerActive: t.DividerActive,
		paintTab:           t.InactiveTab,
		paintTabActive:     t.ActiveTab,
		paintPreview:       t.Preview,
		paintClosed:        t.Closed,
	}
}

// render joins the cells row by row, styling runs of equal paint.
func (c *canvas) render(table map[paint]lipgloss.Style) string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.paints[y*c.w+x] == c.paints[y*c.w+start] {
				continue
			}
			run := string(c.runes[y*c.w+start : y*c.w+x])
			if style, ok := table[c.paints[y*c.w+start]]; ok {
				run = style.Render(run)
			}
			sb.WriteString(run)
			start = x
		}
	}
	return sb.String()
}

// plain renders without styles, used by tests and non-color output.
func (c *canvas) plain() string {
	return c.render(nil)
}
