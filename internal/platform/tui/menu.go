package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/game"
)

const (
	menuTitle    = "D U N G E O N   O F   A L G O R I T H M S"
	menuSubtitle = "The Memory Leak Chronicle"
	menuControls = "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
)

// drawMenu renders the main menu onto the screen.
func drawMenu(s *core.Screen, f *game.Flow) {
	y := max(s.Height()/2-5, 0)

	s.DrawTextCentered(y, menuTitle, core.ColorGold)
	s.DrawTextCentered(y+2, menuSubtitle, core.ColorGray)

	y += 5
	for i, opt := range f.MenuOptions() {
		cursor, color := "  ", core.ColorWhite
		if i == f.MenuIndex() {
			cursor, color = "> ", core.ColorYellow
		}
		s.DrawTextCentered(y+i*2, cursor+opt+"  ", color)
	}

	s.DrawTextCentered(s.Height()-1, menuControls, core.ColorGray)
}

// drawPhaseBanner boxes the pause, game over and victory messages in the
// middle of the play area.
func drawPhaseBanner(s *core.Screen, f *game.Flow) {
	var lines []string
	color := core.ColorWhite
	score := fmt.Sprintf("Score: %d", f.Player().Score)

	switch f.Phase() {
	case game.PhasePaused:
		lines = []string{"PAUSED", "", "P to resume"}
		color = core.ColorCyan
	case game.PhaseGameOver:
		lines = []string{"GAME OVER", score, "R to restart"}
		color = core.ColorRed
	case game.PhaseVictory:
		lines = []string{"VICTORY!", score, "R to play again"}
		color = core.ColorGold
	default:
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4

	top := (s.Height() - len(lines) - 2) / 2
	border := "+" + strings.Repeat("-", width-2) + "+"
	s.DrawTextCentered(top, border, color)
	for i, l := range lines {
		s.DrawTextCentered(top+1+i, "|"+padCenter(l, width-2)+"|", color)
	}
	s.DrawTextCentered(top+1+len(lines), border, color)
}

// padCenter pads text with spaces on both sides to the given width.
func padCenter(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-len(text)-left)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
