package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/flexpane/internal/domain/entity"
)

func TestCanvasBox(t *testing.T) {
	c := newCanvas(4, 3)
	c.box(entity.Rect{X: 0, Y: 0, W: 4, H: 3}, paintBorder)

	assert.Equal(t, "┌──┐\n│  │\n└──┘", c.plain())
}

func TestCanvasTextIsClipped(t *testing.T) {
	c := newCanvas(6, 1)
	c.text(1, 0, "hello", 3, paintText)
	c.text(5, 0, "xy", 5, paintText)

	assert.Equal(t, " hel x", c.plain())
}

func TestCanvasTintKeepsRunes(t *testing.T) {
	c := newCanvas(3, 1)
	c.text(0, 0, "abc", 3, paintText)
	c.tint(entity.Rect{X: 1, Y: 0, W: 5, H: 1}, paintPreview)

	assert.Equal(t, 'b', c.at(1, 0))
	assert.Equal(t, paintPreview, c.paints[2])
	assert.Equal(t, paintText, c.paints[0])
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := newCanvas(2, 2)
	c.set(-1, 0, 'x', paintText)
	c.set(2, 1, 'x', paintText)
	c.fill(entity.Rect{X: 1, Y: 1, W: 4, H: 4}, '#', paintText)

	assert.Equal(t, "  \n #", c.plain())
}
