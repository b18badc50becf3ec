// Package registry provides a global registry of glyph sets.
// Built-in sets register themselves in init(); callers may add more, which
// lets the CLI and the config loader resolve a set by ID without knowing
// where it came from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-rain/internal/rain"
)

// SetInfo contains metadata about a registered glyph set.
type SetInfo struct {
	ID     string
	Title  string
	Glyphs int
	Width  int
	Sample string
}

var (
	sets = make(map[string]rain.GlyphSet)
	mu   sync.RWMutex
)

// Register adds a glyph set to the registry.
// Panics if the set has no ID, no runes, or duplicates an existing ID.
func Register(s rain.GlyphSet) {
	mu.Lock()
	defer mu.Unlock()

	if s.ID == "" {
		panic("registry: glyph set has no id")
	}
	if len(s.Runes) == 0 {
		panic(fmt.Sprintf("registry: glyph set %q is empty", s.ID))
	}
	if _, exists := sets[s.ID]; exists {
		panic(fmt.Sprintf("registry: glyph set %q already registered", s.ID))
	}

	sets[s.ID] = s
}

// List returns information about all registered sets, sorted by ID.
func List() []SetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SetInfo, 0, len(sets))
	for id, s := range sets {
		n := len(s.Runes)
		if n > 12 {
			n = 12
		}
		result = append(result, SetInfo{
			ID:     id,
			Title:  s.Title,
			Glyphs: len(s.Runes),
			Width:  s.Width(),
			Sample: string(s.Runes[:n]),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the glyph set with the given ID.
// Returns an error if the ID is not registered.
func Lookup(id string) (rain.GlyphSet, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := sets[id]
	if !ok {
		return rain.GlyphSet{}, fmt.Errorf("registry: unknown glyph set %q", id)
	}

	return s, nil
}

// Exists checks if a glyph set with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sets[id]
	return ok
}
