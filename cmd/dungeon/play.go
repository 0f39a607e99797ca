package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/observe"
	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var (
	flagLogPath string
	flagBell    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the dungeon in this terminal",
	Long: `Start a game in this terminal.

Controls:
  WASD/Arrows  - Move (menu: navigate)
  Enter/Space  - Select
  P            - Pause
  R            - Restart (after game over or victory)
  F5/Ctrl+S    - Save
  F9/Ctrl+L    - Load
  ?            - Toggle full help
  F2           - Screenshot to ~/.dungeon/screenshots
  Q/Ctrl+C     - Quit

The game logs to a file so the screen stays clean; use --log to move it.

Examples:
  dungeon play
  dungeon play --difficulty easy
  dungeon play --config ./my-dungeon.yaml --fps 30
  dungeon play --bell`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogPath, "log", "~/.dungeon/dungeon.log", "Log file path")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell for sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(flagLogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	// Open save storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		logger.Warn("could not open save database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	deps := tui.Deps{
		Config:  cfg,
		Store:   store,
		Logger:  logger,
		Metrics: observe.Default(),
		Bell:    flagBell,
	}
	flow, err := tui.NewFlow(deps)
	if err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Gameplay.TickRate,
	}

	logger.Info("game started", "difficulty", cfg.Gameplay.Difficulty, "tick_rate", rc.TickRate)
	if err := tui.Run(flow, rc, cfg.Gameplay.TileSize); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	logger.Info("game ended", "room", flow.RoomID(), "score", flow.Player().Score)
	return nil
}

// openLogger opens a log file for the session. An empty path discards logs.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dungeon",
	})
	return logger, func() { f.Close() }, nil
}
