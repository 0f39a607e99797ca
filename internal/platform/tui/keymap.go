package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Terminals report presses and auto-repeats but never releases, so a key
// counts as held for a while after its last event. The first event has to
// bridge the auto-repeat delay; later repeats only the repeat interval.
const (
	DefaultRepeatDelay = 550 * time.Millisecond
	DefaultHoldWindow  = 180 * time.Millisecond
)

// KeyMap defines the key bindings for the dungeon.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Save    key.Binding
	Load    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Save: key.NewBinding(
			key.WithKeys("f5", "ctrl+s"),
			key.WithHelp("f5", "save"),
		),
		Load: key.NewBinding(
			key.WithKeys("f9", "ctrl+l"),
			key.WithHelp("f9", "load"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Back, k.Pause, k.Restart},
		{k.Save, k.Load, k.Help, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys     KeyMap
	bindings []actionBinding
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{
		keys: keys,
		bindings: []actionBinding{
			{keys.Quit, core.ActionQuit},
			{keys.Up, core.ActionUp},
			{keys.Down, core.ActionDown},
			{keys.Left, core.ActionLeft},
			{keys.Right, core.ActionRight},
			{keys.Confirm, core.ActionConfirm},
			{keys.Back, core.ActionBack},
			{keys.Pause, core.ActionPause},
			{keys.Restart, core.ActionRestart},
			{keys.Save, core.ActionSave},
			{keys.Load, core.ActionLoad},
		},
	}
}

// Keys returns the bindings the mapper was built from.
func (km *KeyMapper) Keys() KeyMap { return km.keys }

// MapKey translates a key message to an action. Unbound keys yield ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	for _, b := range km.bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// HoldTracker turns a stream of key events into a held set per tick.
// An action is held for delay after its first event and for window after
// each auto-repeat.
type HoldTracker struct {
	delay  time.Duration
	window time.Duration
	seen   map[core.Action]holdState
}

type holdState struct {
	last      time.Time
	repeating bool
}

// NewHoldTracker creates a tracker. Non-positive durations use
// DefaultRepeatDelay and DefaultHoldWindow.
func NewHoldTracker(delay, window time.Duration) *HoldTracker {
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{delay: delay, window: window, seen: make(map[core.Action]holdState)}
}

// Touch records a key event for the action at now.
func (h *HoldTracker) Touch(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	_, held := h.seen[a]
	h.seen[a] = holdState{last: now, repeating: held}
}

// Held returns the actions still held at now and forgets expired ones.
func (h *HoldTracker) Held(now time.Time) []core.Action {
	held := make([]core.Action, 0, len(h.seen))
	for a, st := range h.seen {
		limit := h.delay
		if st.repeating {
			limit = h.window
		}
		if now.Sub(st.last) > limit {
			delete(h.seen, a)
			continue
		}
		held = append(held, a)
	}
	return held
}

// Release forgets every held action.
func (h *HoldTracker) Release() {
	clear(h.seen)
}
