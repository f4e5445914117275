// Package roster provides a global registry for genome archetype
// factories. Archetypes register themselves in init() functions, allowing
// config loading and CLI tooling to build entrants without hardcoded
// dependencies.
package roster

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/shell-derby/internal/genome"
)

// Factory builds one genome from the caller's RNG. Factories must stay
// inside the genome's declared trait bounds; names come from the
// registration, not the factory.
type Factory func(rng *rand.Rand) genome.Genome

// ArchetypeInfo contains metadata about a registered archetype.
type ArchetypeInfo struct {
	ID          string
	Description string
}

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds an archetype factory to the roster.
// Typically called from an init() function.
// Panics if an archetype with the same ID is already registered.
func Register(id, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("roster: archetype %q already registered", id))
	}

	factories[id] = f
	descriptions[id] = description
}

// List returns information about all registered archetypes, sorted by ID.
func List() []ArchetypeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ArchetypeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ArchetypeInfo{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a genome from a registered archetype.
// Returns an error if the archetype ID is not registered.
func Create(id string, rng *rand.Rand) (genome.Genome, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return genome.Genome{}, fmt.Errorf("roster: unknown archetype %q", id)
	}

	return f(rng), nil
}

// Exists checks if an archetype with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
