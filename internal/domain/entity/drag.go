package entity

import "github.com/google/uuid"

// PointerKind distinguishes mouse input from touch input.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

func (k PointerKind) String() string {
	if k == PointerTouch {
		return "touch"
	}
	return "mouse"
}

// DropOutsideOption describes what a drag source wants when content is
// dropped outside every split-screen root.
type DropOutsideOption struct {
	OpenURL     string
	WidthRatio  float64
	HeightRatio float64
	NewTab      bool
}

// DropResult is the reply sent back to a drag source once its drop has been
// processed.
type DropResult struct {
	CorrelationID string
	Accepted      bool
	Root          string
	// TargetLayoutName is the node key the content landed in.
	TargetLayoutName string
	// Outside is set when the drop landed outside every root.
	Outside *DropOutsideOption
	Point   Point
}

// DragState is broadcast by drag sources while a drag is in progress.
type DragState struct {
	IsDragging bool
	IsDrop     bool
	Point      Point

	Root            string
	SourceLayout    string
	ContainerName   string
	NavigationTitle string
	ScreenKey       string
	Content         any
	DropOutside     *DropOutsideOption
	CustomData      map[string]any

	CorrelationID string
	// Reply receives exactly one DropResult for a terminal drop state.
	Reply chan<- DropResult
}

// Terminal reports whether the state ends the drag.
func (s DragState) Terminal() bool {
	return !s.IsDragging
}

// MovementState is the kind of a drop movement event.
type MovementState string

const (
	MovementAppend MovementState = "append"
	MovementRemove MovementState = "remove"
	MovementChange MovementState = "change"
)

// DropTargetInfo is the payload describing the content being dropped.
type DropTargetInfo struct {
	Origin          string
	NavigationTitle string
	ScreenKey       string
	Direction       Axis
	DropOutside     *DropOutsideOption
}

// DropMovementEvent is a structural command against a split-screen tree.
type DropMovementEvent struct {
	ID    string
	State MovementState
	Root  string

	TargetParentLayoutName string
	TargetLayoutName       string
	TargetContainerName    string

	Content any
	// NextContainerName anchors the insertion next to an existing entry.
	NextContainerName string
	// ParentOrder is the anchor's own list when propagated to a parent.
	ParentOrder DropPosition
	Order       DropPosition
	Point       Point
	Target      *DropTargetInfo

	Reply chan<- DropResult
}

// NewScreenKey returns a fresh random key identifying a rendered content
// instance.
func NewScreenKey() string {
	return uuid.NewString()
}

// NewCorrelationID returns a fresh id tying a drop to its reply.
func NewCorrelationID() string {
	return uuid.NewString()
}

// DropPreview is the highlight shown over the node a drag hovers.
type DropPreview struct {
	Visible    bool
	Root       string
	LayoutName string
	Boundary   Boundary
	Rect       Rect
}
