package entity

import "fmt"

// Axis is the direction containers of a layout are placed along.
type Axis int

const (
	AxisRow    Axis = iota // side by side, sized by width
	AxisColumn             // stacked, sized by height
)

type axisModel struct {
	name   string
	cursor string
	size   func(Rect) float64
	coord  func(Point) float64
	start  func(Rect) float64
	min    func(SizeConstraints) float64
	max    func(SizeConstraints) float64
}

var axisModels = [...]axisModel{
	AxisRow: {
		name:   "row",
		cursor: "ew-resize",
		size:   func(r Rect) float64 { return r.W },
		coord:  func(p Point) float64 { return p.X },
		start:  func(r Rect) float64 { return r.X },
		min:    func(c SizeConstraints) float64 { return c.MinWidth },
		max:    func(c SizeConstraints) float64 { return c.MaxWidth },
	},
	AxisColumn: {
		name:   "column",
		cursor: "ns-resize",
		size:   func(r Rect) float64 { return r.H },
		coord:  func(p Point) float64 { return p.Y },
		start:  func(r Rect) float64 { return r.Y },
		min:    func(c SizeConstraints) float64 { return c.MinHeight },
		max:    func(c SizeConstraints) float64 { return c.MaxHeight },
	},
}

func (a Axis) model() axisModel {
	if a == AxisColumn {
		return axisModels[AxisColumn]
	}
	return axisModels[AxisRow]
}

// ParseAxis accepts "row" and "column".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "row", "":
		return AxisRow, nil
	case "column":
		return AxisColumn, nil
	default:
		return AxisRow, fmt.Errorf("unknown axis %q", s)
	}
}

func (a Axis) String() string { return a.model().name }

// Cursor is the resize cursor shown while dragging a divider on this axis.
func (a Axis) Cursor() string { return a.model().cursor }

// Size returns the extent of r along the axis.
func (a Axis) Size(r Rect) float64 { return a.model().size(r) }

// Coord returns the coordinate of p along the axis.
func (a Axis) Coord(p Point) float64 { return a.model().coord(p) }

// Start returns the leading edge of r along the axis.
func (a Axis) Start(r Rect) float64 { return a.model().start(r) }

// MinSize returns the minimum constraint along the axis, 0 when unset.
func (a Axis) MinSize(c SizeConstraints) float64 { return a.model().min(c) }

// MaxSize returns the maximum constraint along the axis, 0 when unset.
func (a Axis) MaxSize(c SizeConstraints) float64 { return a.model().max(c) }
