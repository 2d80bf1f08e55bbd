package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene owned by the SceneManager.
// Only one scene is active at a time.
type Scene interface {
	// Init builds the scene's entities. An error aborts the scene switch.
	Init() error

	// Uninit releases every entity the scene created.
	Uninit()

	// Update advances the scene by one fixed tick.
	Update()

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// DebugService is the debug UI seen from the scene side.
// It decides whether Update may run and whether collision volumes are drawn.
type DebugService interface {
	// UpdateEnabled reports whether the scene may advance this tick
	// (false while paused, true once for a single step).
	UpdateEnabled() bool
	// CollisionVisible reports whether collision volumes should be drawn.
	CollisionVisible() bool
}

// NoDebug is a DebugService that always updates and never shows collision volumes.
type NoDebug struct{}

// UpdateEnabled implements DebugService.
func (NoDebug) UpdateEnabled() bool { return true }

// CollisionVisible implements DebugService.
func (NoDebug) CollisionVisible() bool { return false }
