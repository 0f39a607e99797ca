// Package audio tracks ambient music and sound effects for a session.
//
// Terminals have no mixer, so a Tracker keeps the playback state machine a
// real backend would have and counts bell rings for the display to emit.
package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrUnknownTrack is returned for names missing from the catalog.
var ErrUnknownTrack = errors.New("audio: unknown track")

// Service is what the game needs from an audio backend.
type Service interface {
	PlayAmbient(track string, volume float64) error
	Pause()
	Resume()
	PlayEffect(name string) error
}

// State is the ambient playback state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// DefaultEffectsVolume is the effect volume of a new Tracker.
	DefaultEffectsVolume = 0.8

	// recentEffects bounds the effect history kept by Played.
	recentEffects = 32
)

// Tracker is a Service that records what would be playing.
type Tracker struct {
	mu      sync.Mutex
	tracks  map[string]bool
	effects map[string]bool
	logger  *log.Logger
	bell    bool

	state         State
	current       string
	volume        float64
	effectsVolume float64
	played        []string
	rings         int
}

// NewTracker creates a stopped tracker knowing the given tracks and effects.
// A nil logger discards output.
func NewTracker(tracks, effects []string, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		tracks:        make(map[string]bool, len(tracks)),
		effects:       make(map[string]bool, len(effects)),
		logger:        logger,
		effectsVolume: DefaultEffectsVolume,
	}
	for _, name := range tracks {
		t.tracks[name] = true
	}
	for _, name := range effects {
		t.effects[name] = true
	}
	return t
}

// WithBell makes audible effects queue a terminal bell ring, drained with
// TakeBells.
func (t *Tracker) WithBell() *Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bell = true
	return t
}

// TakeBells returns the bell rings queued since the last call.
func (t *Tracker) TakeBells() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.rings
	t.rings = 0
	return n
}

// PlayAmbient starts a looping track. Asking for the current track again is
// a no-op, even while paused.
func (t *Tracker) PlayAmbient(track string, volume float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.tracks[track] {
		t.logger.Warn("ambient track not found", "track", track)
		return fmt.Errorf("%w: %q", ErrUnknownTrack, track)
	}
	if track == t.current && t.state != Stopped {
		return nil
	}

	t.current = track
	t.volume = clampVolume(volume)
	t.state = Playing
	t.logger.Info("ambient started", "track", track, "volume", t.volume)
	return nil
}

// Stop ends ambient playback.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Stopped {
		return
	}
	t.state = Stopped
	t.current = ""
	t.logger.Info("ambient stopped")
}

// Pause suspends a playing track.
func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Playing {
		return
	}
	t.state = Paused
	t.logger.Info("ambient paused", "track", t.current)
}

// Resume continues a paused track.
func (t *Tracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Paused {
		return
	}
	t.state = Playing
	t.logger.Info("ambient resumed", "track", t.current)
}

// PlayEffect fires a one-shot sound.
func (t *Tracker) PlayEffect(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.effects[name] {
		t.logger.Warn("sound effect not found", "effect", name)
		return fmt.Errorf("%w: %q", ErrUnknownTrack, name)
	}
	if len(t.played) == recentEffects {
		t.played = append(t.played[:0], t.played[1:]...)
	}
	t.played = append(t.played, name)
	if t.bell && t.effectsVolume > 0 {
		t.rings++
	}
	t.logger.Debug("effect played", "effect", name)
	return nil
}

// SetEffectsVolume changes the effect volume, clamped to [0, 1]. Zero
// silences the bell.
func (t *Tracker) SetEffectsVolume(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.effectsVolume = clampVolume(v)
}

// State returns the ambient state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Current returns the ambient track and its volume.
func (t *Tracker) Current() (string, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.volume
}

// Played returns the most recent effects, oldest first.
func (t *Tracker) Played() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.played...)
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

// Nop is a Service that does nothing.
type Nop struct{}

func (Nop) PlayAmbient(string, float64) error { return nil }
func (Nop) Pause()                            {}
func (Nop) Resume()                           {}
func (Nop) PlayEffect(string) error           { return nil }
