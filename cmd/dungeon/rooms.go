package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/world"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Print the room graph",
	Long: `Builds the dungeon from the config and prints every room, its exits
and what lives in it, followed by the registered enemy archetypes and any
problems found in the room graph.

Examples:
  dungeon rooms
  dungeon rooms --config ./my-dungeon.yaml`,
	RunE: runRooms,
}

func runRooms(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	graph, err := world.Build(cfg, world.MapsFor(cfg))
	if err != nil {
		return err
	}

	start, _ := graph.CurrentID()
	fmt.Println("Rooms:")
	fmt.Println()
	fmt.Printf("  %-4s  %-9s  %-28s  %-5s  %-7s  %s\n", "ID", "Size", "Exits", "Items", "Enemies", "Ambient")
	fmt.Printf("  %-4s  %-9s  %-28s  %-5s  %-7s  %s\n", "--", "----", "-----", "-----", "-------", "-------")

	for _, id := range graph.Rooms() {
		r, _ := graph.Room(id)
		marker := " "
		if id == start {
			marker = "*"
		}
		fmt.Printf("%s %-4d  %-9s  %-28s  %-5d  %-7d  %s\n",
			marker, id,
			fmt.Sprintf("%dx%d", r.WidthPixels(), r.HeightPixels()),
			exitList(r),
			len(r.Items()),
			len(r.Enemies()),
			r.Ambient,
		)
	}
	fmt.Println()
	fmt.Println("* start room")

	fmt.Println()
	fmt.Println("Archetypes:")
	for _, a := range registry.List() {
		fmt.Printf("  %-8s  %s\n", a.Name, a.Behavior)
	}

	issues := graph.Validate()
	fmt.Println()
	if len(issues) == 0 {
		fmt.Println("No problems found.")
		return nil
	}
	fmt.Printf("Warnings (%d):\n", len(issues))
	for _, is := range issues {
		fmt.Printf("  - %s\n", is)
	}
	return nil
}

// exitList renders a room's connections as "East->2, West->1".
func exitList(r *world.Room) string {
	var parts []string
	for _, d := range world.Directions {
		if id, ok := r.Neighbor(d); ok {
			parts = append(parts, fmt.Sprintf("%s->%d", d, id))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
