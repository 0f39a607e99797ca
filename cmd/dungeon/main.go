// dungeon is a terminal dungeon crawler: three rooms, a handful of
// monsters and one chest at the end.
//
// Usage:
//
//	dungeon play             - Play locally in this terminal
//	dungeon serve            - Start SSH server for remote play
//	dungeon rooms            - Print the room graph and its warnings
//	dungeon save             - Show the stored save slots
//	dungeon scores           - Show the run history
//
// Global flags:
//
//	--config <path>      - Dungeon config YAML (default: search order, then embedded)
//	--db <path>          - Set database path (default: ~/.dungeon/dungeon.db)
//	--fps <rate>         - Override the tick rate
//	--difficulty <name>  - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register enemy archetypes
	_ "github.com/vovakirdan/tui-dungeon/internal/bestiary"
	"github.com/vovakirdan/tui-dungeon/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagFPS        int
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Dungeon of Algorithms - a dungeon crawler in your terminal",
	Long: `Dungeon of Algorithms is a top-down dungeon crawler played in the
terminal, locally or over SSH. Walk through the doorways, grab the coins,
dodge the slimes and find the chest.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  rooms    - Print the room graph
  save     - Show or clear save slots
  scores   - View the run history

Examples:
  dungeon play
  dungeon play --difficulty hard
  dungeon serve --ssh :2222
  dungeon rooms --config ./my-dungeon.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to dungeon config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dungeon/dungeon.db", "Path to save database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the dungeon config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Gameplay.TickRate = flagFPS
	}
	return cfg, nil
}
