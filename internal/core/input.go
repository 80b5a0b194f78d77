package core

// Action is a semantic input, independent of the key or gesture that
// produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // w, k, up arrow, upward drag
	ActionDown           // s, j, down arrow, downward drag
	ActionLeft           // a, h, left arrow, leftward drag
	ActionRight          // d, l, right arrow, rightward drag
	ActionBack           // esc
	ActionRestart        // r
	ActionQuit           // q, ctrl+c
	ActionPause          // p, space

	numActions
)

var actionNames = [numActions]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "Unknown"
}

// ClassifySwipe turns a drag delta into a directional action.
// Drags no longer than threshold on both axes return ActionNone.
// The axis with the larger magnitude wins; ties go to the vertical axis.
func ClassifySwipe(dx, dy, threshold int) Action {
	ax, ay := Abs(dx), Abs(dy)
	switch {
	case ax <= threshold && ay <= threshold:
		return ActionNone
	case ax > ay && dx > 0:
		return ActionRight
	case ax > ay:
		return ActionLeft
	case dy > 0:
		return ActionDown
	default:
		return ActionUp
	}
}

// InputFrame is the set of actions collected between two ticks.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint16
}

func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < numActions {
		f.bits |= 1 << a
	}
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < numActions && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}
