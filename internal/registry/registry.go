// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the CLI to
// discover and build scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/polycollide/internal/scene"
)

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID          string
	Name        string
	Description string
	Procedural  bool
}

// Factory creates a new scene. Procedural factories derive their layout
// from seed; fixed scenes ignore it.
type Factory func(seed int64) (*scene.Scene, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SceneInfo)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from an init() function.
// Panics if a scene with the same ID is already registered or the factory
// fails for seed 0.
func Register(id string, procedural bool, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	// Get name by creating a temporary instance
	s, err := f(0)
	if err != nil {
		panic(fmt.Sprintf("registry: scene %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = SceneInfo{
		ID:          id,
		Name:        s.Name,
		Description: s.Description,
		Procedural:  procedural,
	}
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string, seed int64) (*scene.Scene, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}
	return f(seed)
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
