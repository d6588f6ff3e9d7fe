package entity

import "fmt"

// MovementMode selects how a divider drag treats containers beyond its
// immediate neighbours.
type MovementMode string

const (
	// MovementDivorce only moves the neighbours on each side of a divider.
	MovementDivorce MovementMode = "divorce"
	// MovementBulldozer pushes through closed neighbours in the drag direction.
	MovementBulldozer MovementMode = "bulldozer"
)

// ParseMovementMode validates a movement mode name. Empty means divorce.
func ParseMovementMode(s string) (MovementMode, error) {
	switch MovementMode(s) {
	case MovementDivorce, "":
		return MovementDivorce, nil
	case MovementBulldozer:
		return MovementBulldozer, nil
	default:
		return MovementDivorce, fmt.Errorf("unknown movement mode %q", s)
	}
}

// SizeConstraints are the optional min/max extents of a container.
// Zero means unconstrained.
type SizeConstraints struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// Container is a single flex-sized panel inside a layout.
//
// The pointer identity of a Container is its reference identity in the
// stores: re-registering the same pointer is a no-op.
type Container struct {
	Name       string
	LayoutName string
	Order      int

	// Flex is the live grow value, nil until one has been applied.
	Flex *float64
	// DataGrow is the cached grow attribute, kept in sync with Flex.
	DataGrow *float64
	// PrevGrow is the grow recorded when the container was last closed.
	PrevGrow *float64

	Constraints SizeConstraints

	// IsResizePanel marks the container as owning a divider after it.
	IsResizePanel bool
	// ResizePanelDisabled is set while a close requested the divider be hidden.
	ResizePanelDisabled bool
	// IsInitialResizable asks the initial distribution to recompute this
	// container's grow instead of keeping its cached one.
	IsInitialResizable bool
	// Distributed marks a grow assigned by the initial distribution rather
	// than by the user or a hint.
	Distributed bool
	// FitContent sizes the container to its measured content.
	FitContent bool

	Transitioning bool
}

// NewContainer creates a container with an optional initial grow.
func NewContainer(layoutName, name string, order int) *Container {
	return &Container{Name: name, LayoutName: layoutName, Order: order}
}

// WithGrow sets the cached grow attribute and returns c for chaining.
func (c *Container) WithGrow(grow float64) *Container {
	c.DataGrow = &grow
	return c
}

// SetGrow applies grow to both the live value and the cached attribute.
func (c *Container) SetGrow(grow float64) {
	live, data := grow, grow
	c.Flex = &live
	c.DataGrow = &data
	c.Distributed = false
}

// SetPrevGrow records the grow to restore on a later open.
func (c *Container) SetPrevGrow(grow float64) {
	c.PrevGrow = &grow
}

// Layout is the parent of a set of containers sharing an axis.
type Layout struct {
	Name         string
	Axis         Axis
	MovementMode MovementMode
	// ClientSize is the measured size of the layout along its axis.
	ClientSize float64
	// Bounds is the last rectangle the renderer reported for the layout.
	Bounds Rect
}

// NewLayout creates a layout with the default movement mode.
func NewLayout(name string, axis Axis) *Layout {
	return &Layout{Name: name, Axis: axis, MovementMode: MovementDivorce}
}

// ResizePanel is the divider registered after a container.
type ResizePanel struct {
	ContainerName string
	LayoutName    string
	Bounds        Rect
}
