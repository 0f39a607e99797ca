// Package registry provides a global registry of enemy archetypes.
// Archetypes register themselves in init() functions, allowing the world
// builder to spawn enemies by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/entity"
)

// Spawn describes one enemy placement from the world definition.
type Spawn struct {
	ID     int
	Pos    core.Vec2
	Path   []core.Vec2 // Patrol waypoints, archetype may ignore
	Radius float64     // Aggro radius, 0 keeps the archetype default
}

// Factory builds a fully configured enemy for a spawn.
type Factory func(s Spawn) *entity.Enemy

// ArchetypeInfo contains metadata about a registered archetype.
type ArchetypeInfo struct {
	Name     string
	Behavior string
}

var (
	factories = make(map[string]Factory)
	behaviors = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an archetype factory to the registry.
// Typically called from an archetype's init() function.
// Panics if an archetype with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: archetype %q already registered", name))
	}

	factories[name] = f

	// Describe the behavior by building a throwaway instance
	e := f(Spawn{})
	behaviors[name] = behaviorName(e.Behavior())
}

// List returns information about all registered archetypes, sorted by name.
func List() []ArchetypeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ArchetypeInfo, 0, len(factories))
	for name := range factories {
		result = append(result, ArchetypeInfo{
			Name:     name,
			Behavior: behaviors[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create spawns a new enemy of the named archetype.
// Returns an error if the archetype is not registered.
func Create(name string, s Spawn) (*entity.Enemy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown archetype %q", name)
	}

	return f(s), nil
}

// Exists checks if an archetype with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

func behaviorName(b entity.Behavior) string {
	switch b.(type) {
	case entity.Stationary, *entity.Stationary:
		return "stationary"
	case *entity.Patrol:
		return "patrol"
	case entity.Chase, *entity.Chase:
		return "chase"
	case *entity.Guard:
		return "guard"
	default:
		return fmt.Sprintf("%T", b)
	}
}
