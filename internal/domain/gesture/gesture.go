// Package gesture disambiguates press-and-hold drags from scrolls.
//
// Transition is a pure function over tagged states; Machine executes the
// effects it returns, owning the timers.
package gesture

import (
	"math"
	"time"

	"github.com/bnema/flexpane/internal/domain/entity"
)

// Config tunes gesture recognition.
type Config struct {
	// MouseHoldDelay and TouchHoldDelay are how long a press must be held
	// before a drag starts. Zero starts the drag immediately.
	MouseHoldDelay time.Duration
	TouchHoldDelay time.Duration
	// ScrollThreshold is the movement, in surface units, that turns a
	// pending press into a scroll.
	ScrollThreshold float64
	// ResumeDelay is the quiet period after scrolling before a hold can
	// start again.
	ResumeDelay time.Duration
	// BlockActiveInput ignores presses on the focused element.
	BlockActiveInput bool
}

// DefaultConfig returns the stock timings: mouse presses are held before a
// drag starts, touches drag immediately.
func DefaultConfig() Config {
	return Config{
		MouseHoldDelay:  300 * time.Millisecond,
		ScrollThreshold: 10,
		ResumeDelay:     400 * time.Millisecond,
	}
}

// HoldDelay returns the hold delay for a pointer kind.
func (c Config) HoldDelay(kind entity.PointerKind) time.Duration {
	if kind == entity.PointerTouch {
		return c.TouchHoldDelay
	}
	return c.MouseHoldDelay
}

// Phase names a state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseDragging
	PhaseScrolling
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseDragging:
		return "dragging"
	case PhaseScrolling:
		return "scrolling"
	default:
		return "idle"
	}
}

// State is one of Idle, Pending, Dragging or Scrolling.
type State interface {
	Phase() Phase
}

type Idle struct{}

// Pending waits for the hold timer.
type Pending struct {
	Start entity.Point
	Kind  entity.PointerKind
}

type Dragging struct {
	Last entity.Point
	Kind entity.PointerKind
}

// Scrolling waits for the pointer to rest before arming a new hold.
type Scrolling struct {
	Last entity.Point
	Kind entity.PointerKind
}

func (Idle) Phase() Phase      { return PhaseIdle }
func (Pending) Phase() Phase   { return PhasePending }
func (Dragging) Phase() Phase  { return PhaseDragging }
func (Scrolling) Phase() Phase { return PhaseScrolling }

// TimerKind identifies one of the two single-shot timers.
type TimerKind int

const (
	TimerHold TimerKind = iota
	TimerResume
	timerCount
)

// Event is an input to Transition.
type Event interface{ isEvent() }

// Start is a pointer press.
type Start struct {
	Point entity.Point
	Kind  entity.PointerKind
	// Editable marks presses on text inputs.
	Editable bool
	// Focused marks presses on the currently focused element.
	Focused bool
}

type Move struct{ Point entity.Point }

type End struct{ Point entity.Point }

// Cancel covers pointer-cancel, escape and window blur.
type Cancel struct{}

type TimerFired struct{ Timer TimerKind }

func (Start) isEvent()      {}
func (Move) isEvent()       {}
func (End) isEvent()        {}
func (Cancel) isEvent()     {}
func (TimerFired) isEvent() {}

// Effect is an instruction returned by Transition.
type Effect interface{ isEffect() }

// ArmTimer replaces any running timer of the same kind.
type ArmTimer struct {
	Timer TimerKind
	Delay time.Duration
}

type ClearTimer struct{ Timer TimerKind }

type DragStart struct{ Point entity.Point }

type DragMove struct{ Point entity.Point }

type DragEnd struct{ Point entity.Point }

// NotDrag reports that the press turned into a scroll.
type NotDrag struct{ Point entity.Point }

// DragCancel ends a drag without a drop.
type DragCancel struct{ Point entity.Point }

func (ArmTimer) isEffect()   {}
func (ClearTimer) isEffect() {}
func (DragStart) isEffect()  {}
func (DragMove) isEffect()   {}
func (DragEnd) isEffect()    {}
func (NotDrag) isEffect()    {}
func (DragCancel) isEffect() {}

func exceeds(cfg Config, from, to entity.Point) bool {
	d := to.Sub(from)
	return math.Abs(d.X) > cfg.ScrollThreshold || math.Abs(d.Y) > cfg.ScrollThreshold
}

func press(cfg Config, p entity.Point, kind entity.PointerKind) (State, []Effect) {
	delay := cfg.HoldDelay(kind)
	effects := []Effect{ClearTimer{TimerHold}, ClearTimer{TimerResume}}
	if delay <= 0 {
		return Dragging{Last: p, Kind: kind}, append(effects, DragStart{p})
	}
	return Pending{Start: p, Kind: kind}, append(effects, ArmTimer{Timer: TimerHold, Delay: delay})
}

// Transition computes the next state and the effects to run.
func Transition(cfg Config, s State, ev Event) (State, []Effect) {
	if s == nil {
		s = Idle{}
	}

	if start, ok := ev.(Start); ok {
		if start.Editable || (cfg.BlockActiveInput && start.Focused) {
			return s, nil
		}
		// A second pointer during a drag does not restart it.
		if _, dragging := s.(Dragging); dragging {
			return s, nil
		}
		return press(cfg, start.Point, start.Kind)
	}

	switch st := s.(type) {
	case Pending:
		switch e := ev.(type) {
		case Move:
			if exceeds(cfg, st.Start, e.Point) {
				return Scrolling{Last: e.Point, Kind: st.Kind}, []Effect{
					ClearTimer{TimerHold},
					NotDrag{e.Point},
					ArmTimer{Timer: TimerResume, Delay: cfg.ResumeDelay},
				}
			}
		case TimerFired:
			if e.Timer == TimerHold {
				return Dragging{Last: st.Start, Kind: st.Kind}, []Effect{DragStart{st.Start}}
			}
		case End, Cancel:
			return Idle{}, []Effect{ClearTimer{TimerHold}}
		}

	case Scrolling:
		switch e := ev.(type) {
		case Move:
			return Scrolling{Last: e.Point, Kind: st.Kind}, []Effect{
				ArmTimer{Timer: TimerResume, Delay: cfg.ResumeDelay},
			}
		case TimerFired:
			if e.Timer == TimerResume {
				return press(cfg, st.Last, st.Kind)
			}
		case End, Cancel:
			return Idle{}, []Effect{ClearTimer{TimerResume}}
		}

	case Dragging:
		switch e := ev.(type) {
		case Move:
			return Dragging{Last: e.Point, Kind: st.Kind}, []Effect{DragMove{e.Point}}
		case End:
			return Idle{}, []Effect{DragEnd{e.Point}}
		case Cancel:
			return Idle{}, []Effect{DragCancel{st.Last}}
		}
	}

	return s, nil
}
