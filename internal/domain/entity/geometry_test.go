package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundary(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 100}

	tests := []struct {
		name     string
		p        Point
		want     Boundary
		inside   bool
		position DropPosition
		axis     Axis
	}{
		{"left band", Point{X: 10, Y: 50}, BoundaryLeft, true, DropBefore, AxisRow},
		{"right band", Point{X: 90, Y: 50}, BoundaryRight, true, DropAfter, AxisRow},
		{"top band", Point{X: 50, Y: 10}, BoundaryTop, true, DropBefore, AxisColumn},
		{"bottom band", Point{X: 50, Y: 95}, BoundaryBottom, true, DropAfter, AxisColumn},
		{"center", Point{X: 50, Y: 50}, BoundaryCenter, true, DropCenter, AxisRow},
		{"corner prefers horizontal band", Point{X: 5, Y: 5}, BoundaryLeft, true, DropBefore, AxisRow},
		{"outside", Point{X: 150, Y: 50}, BoundaryCenter, false, DropCenter, AxisRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, inside := ClassifyBoundary(r, tt.p, DefaultBoundaryRatio)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.inside, inside)
			assert.Equal(t, tt.position, got.Position())
			assert.Equal(t, tt.axis, got.Axis())
		})
	}
}

func TestPreviewRectApply(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 200, H: 100}

	assert.Equal(t, Rect{X: 110, Y: 20, W: 100, H: 100}, BoundaryRight.Preview().Apply(r))
	assert.Equal(t, Rect{X: 10, Y: 70, W: 200, H: 50}, BoundaryBottom.Preview().Apply(r))
	assert.Equal(t, r, BoundaryCenter.Preview().Apply(r))
}

func TestAxis(t *testing.T) {
	c := SizeConstraints{MinWidth: 10, MaxWidth: 200, MinHeight: 5}

	assert.Equal(t, "ew-resize", AxisRow.Cursor())
	assert.Equal(t, "ns-resize", AxisColumn.Cursor())
	assert.Equal(t, 10.0, AxisRow.MinSize(c))
	assert.Equal(t, 200.0, AxisRow.MaxSize(c))
	assert.Equal(t, 5.0, AxisColumn.MinSize(c))
	assert.Equal(t, 0.0, AxisColumn.MaxSize(c))
	assert.Equal(t, 30.0, AxisColumn.Size(Rect{W: 10, H: 30}))

	a, err := ParseAxis("column")
	assert.NoError(t, err)
	assert.Equal(t, AxisColumn, a)
	_, err = ParseAxis("diagonal")
	assert.Error(t, err)
}
