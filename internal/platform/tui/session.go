package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dungeon/internal/audio"
	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/game"
	"github.com/vovakirdan/tui-dungeon/internal/observe"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
	"github.com/vovakirdan/tui-dungeon/internal/world"
)

// Deps are the shared services a play session is built from.
type Deps struct {
	Config  config.Config
	Store   *storage.Store // Optional; nil disables save, load and run history
	Slot    int            // Save slot; 0 means storage.DefaultSlot
	Logger  *log.Logger
	Metrics *observe.Metrics
	Bell    bool // Ring the terminal bell for sound effects
}

// NewFlow builds an independent game flow for one player.
func NewFlow(d Deps) (*game.Flow, error) {
	cfg := d.Config
	maps := world.MapsFor(cfg)

	tracker := audio.NewTracker(cfg.World.Tracks, cfg.World.Effects, d.Logger)
	if v := cfg.World.EffectsVolume; v != nil {
		tracker.SetEffectsVolume(*v)
	}
	if d.Bell {
		tracker.WithBell()
	}

	opts := game.Options{
		Gameplay:      cfg.Gameplay,
		AmbientTrack:  cfg.World.AmbientTrack,
		AmbientVolume: cfg.World.AmbientVolume,
		Build: func() (*world.Graph, error) {
			return world.Build(cfg, maps)
		},
		Audio:   tracker,
		Logger:  d.Logger,
		Metrics: d.Metrics,
	}
	if d.Store != nil {
		slot := d.Store.Slot(d.Slot)
		opts.Store = slot
		opts.Runs = slot
	}
	return game.New(opts)
}
