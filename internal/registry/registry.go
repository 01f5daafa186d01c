// Package registry maps game ids to factories. Game packages register
// themselves from init so the front ends never import them by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for ids nobody registered.
var ErrUnknownGame = errors.New("unknown game")

// Game is what every tile game exposes to the platform. Games stay free of
// terminal and network code; input arrives as abstract actions and output
// goes into a core.Screen.
type Game interface {
	// ID is the stable key used on the command line and in score storage,
	// e.g. "2048" or "numbertiles".
	ID() string

	// Title is the display name, e.g. "Number Tiles".
	Title() string

	// Reset starts a fresh game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick worth of input (Left, Drop, Pause...).
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game. Base is set for variants and
// names the game they are a mode of.
type GameInfo struct {
	ID    string
	Title string
	Base  string
}

// IsVariant reports whether the entry is a mode of another game.
func (i GameInfo) IsVariant() bool { return i.Base != "" }

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. It panics when id is taken.
func Register(id string, f Factory) {
	add(id, "", f)
}

// RegisterVariant adds a mode of an already registered base game. Variants
// get their own scores but are reached through the base game in menus.
func RegisterVariant(id, base string, f Factory) {
	add(id, base, f)
}

func add(id, base string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	if base != "" {
		if _, ok := entries[base]; !ok {
			panic(fmt.Sprintf("registry: variant %q of unregistered game %q", id, base))
		}
	}

	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title(), Base: base},
		factory: f,
	}
}

// List returns every registered game and variant, sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Variants returns the ids registered as modes of base, sorted.
func Variants(base string) []string {
	var ids []string
	for _, info := range List() {
		if info.Base == base {
			ids = append(ids, info.ID)
		}
	}
	return ids
}

// Lookup returns the metadata for id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
