package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dungeon/internal/platform/tui"
	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var flagPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Shows every finished run, best first. In a terminal this opens the
interactive board; --plain prints the top 10 instead.

Examples:
  dungeon scores
  dungeon scores --plain`,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the top 10 as text")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening save database: %w", err)
	}
	defer store.Close()

	width, height, termErr := term.GetSize(int(os.Stdout.Fd()))
	if !flagPlain && termErr == nil {
		_, err := tui.RunScoreboard(store, width, height)
		return err
	}
	return printScores(store)
}

func printScores(store *storage.Store) error {
	runs, err := store.TopRuns(10)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Println("Hall of Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dungeon play' and find the chest to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-9s  %-4s  %-6s  %s\n", "Rank", "Score", "Outcome", "Room", "Mode", "Date")
	fmt.Printf("  %-4s  %-6s  %-9s  %-4s  %-6s  %s\n", "----", "-----", "-------", "----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-9s  %-4d  %-6s  %s\n",
			i+1, r.Score, r.Outcome, r.RoomID, r.Difficulty,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Victories: %d  Best: %d  Average: %.0f\n",
			st.Runs, st.Victories, st.HighScore, st.AvgScore)
	}
	return nil
}
