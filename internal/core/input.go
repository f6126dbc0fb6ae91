package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // Left arrow, A, H
	ActionRight        // Right arrow, D, L
	ActionUp           // Up arrow, W, K
	ActionDown         // Down arrow, S, J
	ActionQuit         // Q, Ctrl+C, Esc, window close
)

// Directions lists the four movement actions in a stable order.
var Directions = [4]Action{ActionLeft, ActionRight, ActionUp, ActionDown}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Opposite returns the direction pointing the other way, or ActionNone.
func (a Action) Opposite() Action {
	switch a {
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	case ActionUp:
		return ActionDown
	case ActionDown:
		return ActionUp
	default:
		return ActionNone
	}
}

// InputFrame is the snapshot of held actions for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{
		Actions: make(map[Action]bool),
	}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// HeldKeys turns a stream of key presses into held directions.
// Terminals report presses (and auto-repeats) but never releases, so each
// press keeps its direction held for a fixed number of ticks.
type HeldKeys struct {
	holdTicks int
	remaining map[Action]int
}

// NewHeldKeys creates a tracker that holds each press for holdTicks ticks.
func NewHeldKeys(holdTicks int) *HeldKeys {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &HeldKeys{
		holdTicks: holdTicks,
		remaining: make(map[Action]int, len(Directions)),
	}
}

// Press registers a key press. Pressing a direction releases its opposite.
func (h *HeldKeys) Press(a Action) {
	if a.Opposite() == ActionNone {
		return
	}
	delete(h.remaining, a.Opposite())
	h.remaining[a] = h.holdTicks
}

// Frame returns the directions currently held.
func (h *HeldKeys) Frame() InputFrame {
	f := NewInputFrame()
	for a, n := range h.remaining {
		if n > 0 {
			f.Set(a)
		}
	}
	return f
}

// Tick ages every held direction by one tick.
func (h *HeldKeys) Tick() {
	for a := range h.remaining {
		h.remaining[a]--
		if h.remaining[a] <= 0 {
			delete(h.remaining, a)
		}
	}
}
