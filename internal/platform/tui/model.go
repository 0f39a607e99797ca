package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/game"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

var (
	hudStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpBar  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// bellRinger is implemented by audio services that queue terminal bells.
type bellRinger interface {
	TakeBells() int
}

// Model is the Bubble Tea model that drives one game flow.
type Model struct {
	flow     *game.Flow
	screen   *core.Screen
	renderer *render.ScreenRenderer
	config   core.RuntimeConfig
	keys     *KeyMapper
	holds    *HoldTracker
	edges    *core.EdgeDetector
	help     help.Model
	tileSize int
	width    int
	height   int
	clock    frameClock
	now      func() time.Time
	ring     bool
	quitting bool
}

// NewModel creates a model for the flow. tileSize is the world size of one
// terminal cell.
func NewModel(flow *game.Flow, cfg core.RuntimeConfig, tileSize int) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if tileSize <= 0 {
		tileSize = 16
	}
	m := Model{
		flow:     flow,
		config:   cfg,
		keys:     NewKeyMapper(DefaultKeyMap()),
		holds:    NewHoldTracker(DefaultRepeatDelay, DefaultHoldWindow),
		edges:    core.NewEdgeDetector(),
		help:     help.New(),
		tileSize: tileSize,
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		clock:    newFrameClock(cfg),
		now:      time.Now,
	}
	m.screen = core.NewScreen(1, 1)
	m.renderer = render.NewScreenRenderer(m.screen, tileSize, tileSize)
	m.layout()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the key as held; the next tick turns it into input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "f2":
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	m.holds.Touch(m.keys.MapKey(msg), m.now())
	return m, nil
}

// handleTick advances the flow by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.clock.advance(now)
	frame := m.edges.Frame(m.holds.Held(now))
	res := m.flow.Step(frame, dt)
	m.ring = false
	if b, ok := m.flow.Audio().(bellRinger); ok {
		m.ring = b.TakeBells() > 0
	}
	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// layout sizes the play area between the HUD line and the help footer.
func (m *Model) layout() {
	m.help.Width = m.width
	footer := lipgloss.Height(m.help.View(m.keys.Keys()))
	m.screen.Resize(max(m.width, 1), max(m.height-1-footer, 1))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	if m.flow.Phase() == game.PhaseMainMenu {
		drawMenu(m.screen, m.flow)
	} else {
		m.follow()
		m.flow.Draw(m.renderer)
		drawPhaseBanner(m.screen, m.flow)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		hudStyle.Render(centerText(m.flow.Title(), m.width)),
		RenderScreen(m.screen),
		helpBar.Render(m.help.View(m.keys.Keys())),
	)
	if m.ring {
		// The renderer is the only writer to the terminal.
		view = "\a" + view
	}
	return view
}

// follow centers the room on screen, or scrolls it with the player when it
// does not fit.
func (m Model) follow() {
	room := m.flow.Graph().Current()
	cols := room.WidthPixels() / m.tileSize
	rows := room.HeightPixels() / m.tileSize
	px, py := m.flow.Player().Center().X, m.flow.Player().Center().Y
	m.renderer.SetOffset(
		cameraOffset(cols, m.screen.Width(), int(px)/m.tileSize),
		cameraOffset(rows, m.screen.Height(), int(py)/m.tileSize),
	)
}

// cameraOffset returns the screen cell of world cell 0 along one axis.
func cameraOffset(mapCells, viewCells, focus int) int {
	if mapCells <= viewCells {
		return (viewCells - mapCells) / 2
	}
	return core.Clamp(viewCells/2-focus, viewCells-mapCells, 0)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".dungeon", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("room%d_%s.txt", m.flow.RoomID(), timestamp))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Flow returns the flow the model drives.
func (m Model) Flow() *game.Flow { return m.flow }

// Run starts a local Bubble Tea program for the flow.
func Run(flow *game.Flow, cfg core.RuntimeConfig, tileSize int) error {
	p := tea.NewProgram(
		NewModel(flow, cfg, tileSize),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
