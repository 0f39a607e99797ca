package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game flow to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up, menu up
	ActionDown           // S, Down arrow - move down, menu down
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back
	ActionPause          // P - pause/unpause game
	ActionRestart        // R - restart after game over or victory
	ActionSave           // F5 - save game
	ActionLoad           // F9 - load game
	ActionQuit           // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// Held actions are down this frame; pressed actions went down this frame
// and were not down on the previous one.
type InputFrame struct {
	Held    map[Action]bool
	Pressed map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held:    make(map[Action]bool),
		Pressed: make(map[Action]bool),
	}
}

// Hold marks an action as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Press marks an action as both held and newly pressed this frame.
func (f *InputFrame) Press(a Action) {
	f.Hold(a)
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
}

// IsHeld returns true if the action is down this frame.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// WasPressed returns true if the action went down this frame.
func (f InputFrame) WasPressed(a Action) bool {
	return f.Pressed[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Held)
	clear(f.Pressed)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	return clone
}

// EdgeDetector derives pressed-this-frame edges from successive held sets.
type EdgeDetector struct {
	last map[Action]bool
}

// NewEdgeDetector creates a detector with nothing held.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{last: make(map[Action]bool)}
}

// Frame builds the input frame for the actions held this tick.
func (d *EdgeDetector) Frame(held []Action) InputFrame {
	frame := NewInputFrame()
	now := make(map[Action]bool, len(held))
	for _, a := range held {
		if a == ActionNone {
			continue
		}
		now[a] = true
		if d.last[a] {
			frame.Hold(a)
		} else {
			frame.Press(a)
		}
	}
	d.last = now
	return frame
}

// Reset forgets the previous frame so every held action counts as a new press.
func (d *EdgeDetector) Reset() {
	clear(d.last)
}
