// Package object defines the sprites of the game and how they move and draw.
package object

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/sound"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   Input
	Screen  Screen
	Margin  float64 // Distance past the screen edge after which moving sprites are removed
	Spawner Spawner
	Sound   sound.Player
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas   *draw.Canvas   // Half-block pixel canvas in logical coordinates
	Term     *draw.Terminal // Text output over the canvas
	Renderer *lipgloss.Renderer
}

// Screen represents the logical playfield dimensions.
type Screen struct {
	Width  int
	Height int
}

// NewScreen returns a screen of the given size.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height}
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object to ctx.Canvas or ctx.Term.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Collider is implemented by objects that take part in collision checks.
type Collider interface {
	Bounds() physics.Rect
}

// Collides reports whether the bounds of a and b overlap.
func Collides(a, b Collider) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
