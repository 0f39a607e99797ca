// Package world holds the rooms of the dungeon and the graph connecting them.
package world

import (
	"fmt"
	"strings"
)

// Direction names a room exit.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction.
var Directions = []Direction{North, South, East, West}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// ParseDirection converts a case-insensitive name such as "east".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "south", "s":
		return South, nil
	case "east", "e":
		return East, nil
	case "west", "w":
		return West, nil
	default:
		return 0, fmt.Errorf("world: unknown direction %q", s)
	}
}
