package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Owner tells which side fired a laser.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerAlien
)

// Laser dimensions in logical units.
const (
	LaserWidth  = 1.0
	LaserHeight = 2.0
)

// Laser is a projectile moving straight up or down.
type Laser struct {
	Rect      physics.Rect
	VY        float64 // Negative moves up
	Owner     Owner
	fromY     float64 // Top edge before the last move
	destroyed bool
}

// NewLaser creates a laser whose top edge is centered on (x, y).
func NewLaser(x, y, vy float64, owner Owner) *Laser {
	return &Laser{
		Rect:  physics.Rect{X: x - LaserWidth/2, Y: y, W: LaserWidth, H: LaserHeight},
		VY:    vy,
		Owner: owner,
		fromY: y,
	}
}

// MarkDestroyed marks the laser for removal.
func (l *Laser) MarkDestroyed() {
	l.destroyed = true
}

// IsDestroyed returns true if the laser is marked for destruction.
func (l *Laser) IsDestroyed() bool {
	return l.destroyed
}

// Bounds returns the area the laser covered during its last move, so a
// fast laser cannot pass through something thinner than its step.
func (l *Laser) Bounds() physics.Rect {
	top := min(l.fromY, l.Rect.Y)
	bottom := max(l.fromY, l.Rect.Y) + l.Rect.H
	return physics.Rect{X: l.Rect.X, Y: top, W: l.Rect.W, H: bottom - top}
}

// Update moves the laser and removes it once it is well past the screen.
func (l *Laser) Update(ctx UpdateContext) (bool, error) {
	if l.destroyed {
		return true, nil
	}

	l.fromY = l.Rect.Y
	l.Rect.Y += l.VY * ctx.Delta.Seconds()

	if l.Rect.Y <= -ctx.Margin || l.Rect.Y >= float64(ctx.Screen.Height)+ctx.Margin {
		return true, nil
	}
	return false, nil
}

// Draw renders the laser.
func (l *Laser) Draw(ctx DrawContext) error {
	color := draw.ColorWhite
	if l.Owner == OwnerAlien {
		color = draw.ColorYellow
	}
	ctx.Canvas.FillRect(l.Rect.X, l.Rect.Y, l.Rect.W, l.Rect.H, color)
	return nil
}
