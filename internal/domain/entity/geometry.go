// Package entity defines the domain entities of the panel layout engine.
package entity

import "math"

// Point is a pointer position in surface coordinates.
type Point struct {
	X, Y float64
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect represents a node or container position and size on the surface.
type Rect struct {
	X, Y float64 // Top-left position
	W, H float64 // Width and height
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Boundary names the band of a rectangle a pointer falls in.
type Boundary string

const (
	BoundaryCenter Boundary = "center"
	BoundaryLeft   Boundary = "left"
	BoundaryRight  Boundary = "right"
	BoundaryTop    Boundary = "top"
	BoundaryBottom Boundary = "bottom"
)

// DefaultBoundaryRatio is the share of each edge treated as a drop band.
const DefaultBoundaryRatio = 0.2

// ClassifyBoundary returns the band of r that p falls in and whether p is
// inside r at all. Edge bands are ratio wide; horizontal bands win over
// vertical ones when both match.
func ClassifyBoundary(r Rect, p Point, ratio float64) (Boundary, bool) {
	if !r.Contains(p) || r.Empty() {
		return BoundaryCenter, false
	}
	if ratio <= 0 || ratio >= 0.5 || math.IsNaN(ratio) {
		ratio = DefaultBoundaryRatio
	}

	bandX := r.W * ratio
	bandY := r.H * ratio

	switch {
	case p.X < r.X+bandX:
		return BoundaryLeft, true
	case p.X > r.Right()-bandX:
		return BoundaryRight, true
	case p.Y < r.Y+bandY:
		return BoundaryTop, true
	case p.Y > r.Bottom()-bandY:
		return BoundaryBottom, true
	default:
		return BoundaryCenter, true
	}
}

// Position maps a band onto the drop position it represents.
func (b Boundary) Position() DropPosition {
	switch b {
	case BoundaryLeft, BoundaryTop:
		return DropBefore
	case BoundaryRight, BoundaryBottom:
		return DropAfter
	default:
		return DropCenter
	}
}

// Axis maps a band onto the direction a split along it would take.
// Center bands keep the row axis.
func (b Boundary) Axis() Axis {
	if b == BoundaryTop || b == BoundaryBottom {
		return AxisColumn
	}
	return AxisRow
}

// PreviewRect is a drop preview expressed as fractions of the node bounds.
type PreviewRect struct {
	Left, Top, Width, Height float64
}

// Preview returns the fractional rectangle highlighted for a band.
func (b Boundary) Preview() PreviewRect {
	switch b {
	case BoundaryLeft:
		return PreviewRect{Left: 0, Top: 0, Width: 0.5, Height: 1}
	case BoundaryRight:
		return PreviewRect{Left: 0.5, Top: 0, Width: 0.5, Height: 1}
	case BoundaryTop:
		return PreviewRect{Left: 0, Top: 0, Width: 1, Height: 0.5}
	case BoundaryBottom:
		return PreviewRect{Left: 0, Top: 0.5, Width: 1, Height: 0.5}
	default:
		return PreviewRect{Left: 0, Top: 0, Width: 1, Height: 1}
	}
}

// Apply projects a fractional preview onto concrete bounds.
func (p PreviewRect) Apply(r Rect) Rect {
	return Rect{
		X: r.X + r.W*p.Left,
		Y: r.Y + r.H*p.Top,
		W: r.W * p.Width,
		H: r.H * p.Height,
	}
}
