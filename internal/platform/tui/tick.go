// Package tui provides the Bubble Tea integration for the dungeon: the
// frame loop, input mapping, the run history board and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// maxFrameDelta caps the simulated time of one frame after a stall, so a
// suspended terminal does not teleport enemies or finish a fade at once.
const maxFrameDelta = 0.1

// TickMsg asks the model to step the flow by one frame.
type TickMsg time.Time

// tickCmd schedules the next frame at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into elapsed seconds. The first frame
// uses the nominal frame length.
type frameClock struct {
	nominal float64
	last    time.Time
}

func newFrameClock(cfg core.RuntimeConfig) frameClock {
	return frameClock{nominal: cfg.FrameSeconds()}
}

// advance returns the seconds since the previous frame, clamped to
// [0, maxFrameDelta].
func (c *frameClock) advance(now time.Time) float64 {
	dt := c.nominal
	if !c.last.IsZero() {
		dt = core.ClampF(now.Sub(c.last).Seconds(), 0, maxFrameDelta)
	}
	c.last = now
	return dt
}
