package gesture

import (
	"sync"

	"github.com/bnema/flexpane/internal/application/port"
	"github.com/bnema/flexpane/internal/domain/entity"
)

// Handlers receive the drag lifecycle. Any of them may be nil.
type Handlers struct {
	OnDragStart func(entity.Point)
	OnDragMove  func(entity.Point)
	OnDragEnd   func(entity.Point)
	OnNotDrag   func(entity.Point)
	OnCancel    func(entity.Point)
}

// Machine feeds events through Transition and runs the resulting effects.
// Handlers are invoked outside the machine lock, so they may feed new
// events back.
type Machine struct {
	mu       sync.Mutex
	cfg      Config
	clock    port.Clock
	state    State
	timers   [timerCount]port.Timer
	gens     [timerCount]uint64
	handlers Handlers
}

// NewMachine creates an idle machine.
func NewMachine(cfg Config, clock port.Clock, handlers Handlers) *Machine {
	return &Machine{cfg: cfg, clock: clock, state: Idle{}, handlers: handlers}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Handle applies one event.
func (m *Machine) Handle(ev Event) {
	m.mu.Lock()
	callbacks := m.apply(ev)
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

// Stop clears every timer and returns to idle without emitting anything.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for kind := range m.timers {
		m.clearTimer(TimerKind(kind))
	}
	m.state = Idle{}
}

func (m *Machine) apply(ev Event) []func() {
	next, effects := Transition(m.cfg, m.state, ev)
	m.state = next

	var callbacks []func()
	emit := func(fn func(entity.Point), p entity.Point) {
		if fn != nil {
			callbacks = append(callbacks, func() { fn(p) })
		}
	}

	for _, eff := range effects {
		switch e := eff.(type) {
		case ArmTimer:
			m.armTimer(e.Timer, e)
		case ClearTimer:
			m.clearTimer(e.Timer)
		case DragStart:
			emit(m.handlers.OnDragStart, e.Point)
		case DragMove:
			emit(m.handlers.OnDragMove, e.Point)
		case DragEnd:
			emit(m.handlers.OnDragEnd, e.Point)
		case NotDrag:
			emit(m.handlers.OnNotDrag, e.Point)
		case DragCancel:
			emit(m.handlers.OnCancel, e.Point)
		}
	}
	return callbacks
}

func (m *Machine) armTimer(kind TimerKind, e ArmTimer) {
	m.clearTimer(kind)
	gen := m.gens[kind]
	m.timers[kind] = m.clock.AfterFunc(e.Delay, func() { m.fire(kind, gen) })
}

func (m *Machine) clearTimer(kind TimerKind) {
	m.gens[kind]++
	if t := m.timers[kind]; t != nil {
		t.Stop()
		m.timers[kind] = nil
	}
}

func (m *Machine) fire(kind TimerKind, gen uint64) {
	m.mu.Lock()
	if m.gens[kind] != gen {
		m.mu.Unlock()
		return
	}
	m.timers[kind] = nil
	callbacks := m.apply(TimerFired{Timer: kind})
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}
