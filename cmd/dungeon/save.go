package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

var (
	flagClear bool
	flagUser  string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Show the stored save slots",
	Long: `Lists the save slots in the database. Slot 1 belongs to local play;
SSH players get a slot derived from their user name.

Examples:
  dungeon save
  dungeon save --user alice   # Only the slot of SSH user alice
  dungeon save --clear        # Delete every save`,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every save slot")
	saveCmd.Flags().StringVar(&flagUser, "user", "", "Only show the slot of this SSH user")
}

func runSave(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening save database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("All saves cleared.")
		return nil
	}

	var saves []storage.SaveData
	if flagUser != "" {
		d, ok, err := store.Load(storage.SlotFor(flagUser))
		if err != nil {
			return err
		}
		if ok {
			saves = append(saves, d)
		}
	} else if saves, err = store.List(); err != nil {
		return err
	}

	if len(saves) == 0 {
		fmt.Println("No save found.")
		fmt.Println()
		fmt.Println("Press F5 in 'dungeon play' to save your position.")
		return nil
	}

	fmt.Printf("  %-8s  %-4s  %-18s  %s\n", "Slot", "Room", "Position", "Saved")
	fmt.Printf("  %-8s  %-4s  %-18s  %s\n", "----", "----", "--------", "-----")
	for _, d := range saves {
		fmt.Printf("  %-8d  %-4d  %-18s  %s\n",
			d.Slot, d.RoomID,
			fmt.Sprintf("(%.0f, %.0f)", d.Pos.X, d.Pos.Y),
			d.SavedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}
