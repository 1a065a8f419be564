// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/scores"
)

// Game is the interface every arcade game implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform writes Input, calls Tick once per frame and draws Frame.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "blocks").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Input returns the buffer the driver writes intents into before Tick.
	Input() *InputState

	// Tick runs one frame. An error means the best-score flush failed;
	// the game keeps its state and retries on the next frame.
	Tick() (core.TickResult, error)

	// Frame returns a snapshot for rendering.
	Frame() core.Frame

	// Status returns the current phase.
	Status() core.Status

	// Setting returns the (level, variant) the current run is scored under.
	Setting() core.Setting

	// Score returns the points of the current run.
	Score() uint32
}

// InputState is re-exported so drivers need only this package.
type InputState = core.InputState

// Env is what a factory gets to build a game.
type Env struct {
	Rand   *rand.Rand
	Scores scores.Store
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID           string
	Title        string
	Order        int    // position in the Next/Prev cycle
	Levels       int    // score table rows
	Variants     int    // score table columns
	VariantLabel string // what the variant dimension means, e.g. "robots"
	VariantMin   int    // lowest selectable variant
}

// Factory is a function that creates a new instance of a game.
type Factory func(env Env) Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered games in cycle order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns the metadata of a registered game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(env), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Next returns the game after id in cycle order, wrapping around.
func Next(id string) string {
	return step(id, 1)
}

// Prev returns the game before id in cycle order, wrapping around.
func Prev(id string) string {
	return step(id, -1)
}

func step(id string, delta int) string {
	games := List()
	if len(games) == 0 {
		return id
	}
	for i, g := range games {
		if g.ID == id {
			return games[(i+delta+len(games))%len(games)].ID
		}
	}
	return games[0].ID
}
