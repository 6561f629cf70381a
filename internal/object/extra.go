package object

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// ExtraSprite is the bonus ship.
var ExtraSprite = draw.Sprite{
	"  ###  ",
	" ##### ",
	"# # # #",
}

// Side is the screen edge the extra appears from.
type Side int

const (
	SideLeft  Side = iota // Appears past the left edge and flies right
	SideRight             // Appears past the right edge and flies left
)

// Extra is the bonus ship sweeping across the top of the screen.
type Extra struct {
	Rect      physics.Rect
	VX        float64
	Value     int
	destroyed bool
}

// NewExtra creates an extra just outside the given side of the screen.
func NewExtra(side Side, screenWidth, y, speed float64) *Extra {
	w := float64(ExtraSprite.Width())
	h := float64(ExtraSprite.Height())
	e := &Extra{
		Rect:  physics.Rect{Y: y, W: w, H: h},
		Value: config.ScoreExtra,
	}
	if side == SideRight {
		e.Rect.X = screenWidth
		e.VX = -speed
	} else {
		e.Rect.X = -w
		e.VX = speed
	}
	return e
}

// MarkDestroyed marks the extra for removal.
func (e *Extra) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the extra is marked for destruction.
func (e *Extra) IsDestroyed() bool {
	return e.destroyed
}

// Bounds returns the extra's collision rect.
func (e *Extra) Bounds() physics.Rect {
	return e.Rect
}

// Update moves the extra and removes it once it has crossed the screen.
func (e *Extra) Update(ctx UpdateContext) (bool, error) {
	if e.destroyed {
		return true, nil
	}

	e.Rect.X += e.VX * ctx.Delta.Seconds()

	if e.VX < 0 && e.Rect.Right() < -ctx.Margin {
		return true, nil
	}
	if e.VX > 0 && e.Rect.Left() > float64(ctx.Screen.Width)+ctx.Margin {
		return true, nil
	}
	return false, nil
}

// Draw renders the extra.
func (e *Extra) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawSprite(e.Rect.X, e.Rect.Y, ExtraSprite, draw.ColorYellow)
	return nil
}
