package object

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/draw"
)

// star is one background pixel drifting down.
type star struct {
	x, y  float64
	speed float64
}

// Background is a slowly falling star field drawn under everything else.
type Background struct {
	stars  []star
	width  float64
	height float64
}

// NewBackground scatters count stars across the screen.
func NewBackground(screen Screen, count int, rng *rand.Rand) *Background {
	b := &Background{
		stars:  make([]star, count),
		width:  float64(screen.Width),
		height: float64(screen.Height),
	}
	for i := range b.stars {
		b.stars[i] = star{
			x:     rng.Float64() * b.width,
			y:     rng.Float64() * b.height,
			speed: 1 + rng.Float64()*3,
		}
	}
	return b
}

// Update drifts the stars and wraps them back to the top.
func (b *Background) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	for i := range b.stars {
		s := &b.stars[i]
		s.y += s.speed * dt
		for s.y >= b.height {
			s.y -= b.height
		}
	}
	return false, nil
}

// Draw renders the stars.
func (b *Background) Draw(ctx DrawContext) error {
	for _, s := range b.stars {
		ctx.Canvas.SetFloat(s.x, s.y, draw.ColorStar)
	}
	return nil
}
