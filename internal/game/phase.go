// Package game runs the top-level state machine: menu, play, pause, game
// over, victory, and the fade that hides a room swap.
package game

import "fmt"

// Phase is the top-level game state.
type Phase int

const (
	PhaseMainMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseMainMenu:
		return "MainMenu"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	case PhaseVictory:
		return "Victory"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// FadeState is the room transition sub-state inside PhasePlaying.
type FadeState int

const (
	FadeIdle FadeState = iota
	FadingOut
	FadingIn
)

func (s FadeState) String() string {
	switch s {
	case FadeIdle:
		return "Idle"
	case FadingOut:
		return "FadingOut"
	case FadingIn:
		return "FadingIn"
	default:
		return fmt.Sprintf("FadeState(%d)", int(s))
	}
}

// DefaultFadeSpeed is the opacity change per second.
const DefaultFadeSpeed = 3.0

// Fade ramps a full-screen overlay from clear to black and back.
type Fade struct {
	speed float64
	alpha float64
	state FadeState
}

// NewFade creates an idle fade. A non-positive speed uses DefaultFadeSpeed.
func NewFade(speed float64) *Fade {
	if speed <= 0 {
		speed = DefaultFadeSpeed
	}
	return &Fade{speed: speed}
}

// Begin starts fading out. It returns false if a fade is already running.
func (f *Fade) Begin() bool {
	if f.state != FadeIdle {
		return false
	}
	f.state = FadingOut
	f.alpha = 0
	return true
}

// Advance moves the fade forward by dt seconds. It returns true exactly on
// the tick the overlay reaches full opacity, when the room should change.
func (f *Fade) Advance(dt float64) bool {
	switch f.state {
	case FadingOut:
		f.alpha += f.speed * dt
		if f.alpha >= 1 {
			f.alpha = 1
			f.state = FadingIn
			return true
		}
	case FadingIn:
		f.alpha -= f.speed * dt
		if f.alpha <= 0 {
			f.alpha = 0
			f.state = FadeIdle
		}
	}
	return false
}

// Alpha returns the overlay opacity in [0, 1].
func (f *Fade) Alpha() float64 { return f.alpha }

// State returns the sub-state.
func (f *Fade) State() FadeState { return f.state }

// Active reports whether a fade is running.
func (f *Fade) Active() bool { return f.state != FadeIdle }

// Reset stops the fade and clears the overlay.
func (f *Fade) Reset() {
	f.state = FadeIdle
	f.alpha = 0
}
