package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/sound"
)

// PlayerSprite is the player's ship.
var PlayerSprite = draw.Sprite{
	"   #   ",
	" ##### ",
	"#######",
}

// Player is the ship at the bottom of the screen.
type Player struct {
	Rect       physics.Rect
	Speed      float64 // Units per second
	MaxX       float64 // Right bound; the left bound is 0
	LaserSpeed float64 // Upward speed of fired lasers

	// Shooting
	FireRate     float64 // Minimum seconds between shots
	fireCooldown float64 // Time until next shot allowed
}

// NewPlayer creates a ship whose bottom edge is centered on (x, bottom).
func NewPlayer(x, bottom, maxX, speed, laserSpeed, fireRate float64) *Player {
	w := float64(PlayerSprite.Width())
	h := float64(PlayerSprite.Height())
	return &Player{
		Rect:       physics.Rect{X: x - w/2, Y: bottom - h, W: w, H: h},
		Speed:      speed,
		MaxX:       maxX,
		LaserSpeed: laserSpeed,
		FireRate:   fireRate,
	}
}

// Update moves the ship and fires when allowed.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	if ctx.Input.Left {
		p.Rect.X -= p.Speed * dt
	}
	if ctx.Input.Right {
		p.Rect.X += p.Speed * dt
	}
	p.Rect.X = physics.Clamp(p.Rect.X, 0, p.MaxX-p.Rect.W)

	if p.fireCooldown > 0 {
		p.fireCooldown -= dt
	}
	if ctx.Input.Space && p.fireCooldown <= 0 && ctx.Spawner != nil {
		p.fireCooldown = p.FireRate
		cx, _ := p.Rect.Center()
		ctx.Spawner.Spawn(NewLaser(cx, p.Rect.Top()-LaserHeight, -p.LaserSpeed, OwnerPlayer))
		if ctx.Sound != nil {
			ctx.Sound.Play(sound.EffectLaser)
		}
	}

	return false, nil
}

// Bounds returns the ship's collision rect.
func (p *Player) Bounds() physics.Rect {
	return p.Rect
}

// Draw renders the ship.
func (p *Player) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawSprite(p.Rect.X, p.Rect.Y, PlayerSprite, draw.ColorCyan)
	return nil
}
