package gesture

import (
	"testing"
	"time"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func pt(x, y float64) entity.Point { return entity.Point{X: x, Y: y} }

func TestTransitionTable(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		state   State
		event   Event
		want    State
		effects []Effect
	}{
		{
			name:  "press arms hold timer",
			state: Idle{},
			event: Start{Point: pt(1, 1)},
			want:  Pending{Start: pt(1, 1)},
			effects: []Effect{
				ClearTimer{TimerHold}, ClearTimer{TimerResume},
				ArmTimer{Timer: TimerHold, Delay: 300 * time.Millisecond},
			},
		},
		{
			name:  "small move keeps pending",
			state: Pending{Start: pt(0, 0)},
			event: Move{Point: pt(5, 9)},
			want:  Pending{Start: pt(0, 0)},
		},
		{
			name:  "large move becomes scroll",
			state: Pending{Start: pt(0, 0)},
			event: Move{Point: pt(0, 11)},
			want:  Scrolling{Last: pt(0, 11)},
			effects: []Effect{
				ClearTimer{TimerHold}, NotDrag{pt(0, 11)},
				ArmTimer{Timer: TimerResume, Delay: 400 * time.Millisecond},
			},
		},
		{
			name:    "hold timer starts drag at press point",
			state:   Pending{Start: pt(3, 4)},
			event:   TimerFired{TimerHold},
			want:    Dragging{Last: pt(3, 4)},
			effects: []Effect{DragStart{pt(3, 4)}},
		},
		{
			name:    "stale resume fire while pending is ignored",
			state:   Pending{Start: pt(3, 4)},
			event:   TimerFired{TimerResume},
			want:    Pending{Start: pt(3, 4)},
			effects: nil,
		},
		{
			name:    "release before hold",
			state:   Pending{Start: pt(0, 0)},
			event:   End{Point: pt(0, 0)},
			want:    Idle{},
			effects: []Effect{ClearTimer{TimerHold}},
		},
		{
			name:    "scroll move re-arms resume",
			state:   Scrolling{Last: pt(0, 20)},
			event:   Move{Point: pt(0, 40)},
			want:    Scrolling{Last: pt(0, 40)},
			effects: []Effect{ArmTimer{Timer: TimerResume, Delay: 400 * time.Millisecond}},
		},
		{
			name:  "resume after scroll arms hold again",
			state: Scrolling{Last: pt(0, 40)},
			event: TimerFired{TimerResume},
			want:  Pending{Start: pt(0, 40)},
			effects: []Effect{
				ClearTimer{TimerHold}, ClearTimer{TimerResume},
				ArmTimer{Timer: TimerHold, Delay: 300 * time.Millisecond},
			},
		},
		{
			name:    "drag move",
			state:   Dragging{Last: pt(0, 0)},
			event:   Move{Point: pt(9, 9)},
			want:    Dragging{Last: pt(9, 9)},
			effects: []Effect{DragMove{pt(9, 9)}},
		},
		{
			name:    "drag end",
			state:   Dragging{Last: pt(9, 9)},
			event:   End{Point: pt(10, 10)},
			want:    Idle{},
			effects: []Effect{DragEnd{pt(10, 10)}},
		},
		{
			name:    "drag cancel reports last point",
			state:   Dragging{Last: pt(9, 9)},
			event:   Cancel{},
			want:    Idle{},
			effects: []Effect{DragCancel{pt(9, 9)}},
		},
		{
			name:  "editable target ignored",
			state: Idle{},
			event: Start{Point: pt(1, 1), Editable: true},
			want:  Idle{},
		},
		{
			name:  "second pointer during drag ignored",
			state: Dragging{Last: pt(1, 1)},
			event: Start{Point: pt(5, 5)},
			want:  Dragging{Last: pt(1, 1)},
		},
		{
			name:  "move while idle ignored",
			state: Idle{},
			event: Move{Point: pt(5, 5)},
			want:  Idle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := Transition(cfg, tt.state, tt.event)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.effects, effects)
		})
	}
}

func TestTransitionImmediateHold(t *testing.T) {
	cfg := DefaultConfig()

	got, effects := Transition(cfg, Idle{}, Start{Point: pt(2, 2), Kind: entity.PointerTouch})

	assert.Equal(t, Dragging{Last: pt(2, 2), Kind: entity.PointerTouch}, got)
	assert.Contains(t, effects, Effect(DragStart{pt(2, 2)}))

	got, effects = Transition(cfg, Idle{}, Start{Point: pt(2, 2), Kind: entity.PointerMouse})
	assert.Equal(t, PhasePending, got.Phase())
	assert.Contains(t, effects, Effect(ArmTimer{Timer: TimerHold, Delay: 300 * time.Millisecond}))
}

func TestTransitionBlockActiveInput(t *testing.T) {
	cfg := DefaultConfig()
	ev := Start{Point: pt(1, 1), Focused: true}

	got, _ := Transition(cfg, Idle{}, ev)
	assert.Equal(t, PhasePending, got.Phase())

	cfg.BlockActiveInput = true
	got, effects := Transition(cfg, Idle{}, ev)
	assert.Equal(t, PhaseIdle, got.Phase())
	assert.Nil(t, effects)
}
