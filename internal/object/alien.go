package object

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// AlienColor is the tier of an alien; it decides looks and point value.
type AlienColor int

const (
	AlienRed AlienColor = iota
	AlienPurple
	AlienGreen
)

// alienFrameTime is how long each animation frame is shown, in seconds.
const alienFrameTime = 0.5

// alienSprites holds two animation frames per tier.
var alienSprites = map[AlienColor][2]draw.Sprite{
	AlienRed: {
		{" ### ", "# # #", " # # "},
		{" ### ", "# # #", "#   #"},
	},
	AlienPurple: {
		{"#   #", "#####", " # # "},
		{" # # ", "#####", "#   #"},
	},
	AlienGreen: {
		{"#####", "# # #", "## ##"},
		{"#####", "# # #", " # # "},
	},
}

var alienColors = map[AlienColor]draw.Color{
	AlienRed:    draw.ColorRed,
	AlienPurple: draw.ColorPurple,
	AlienGreen:  draw.ColorGreen,
}

// AlienColorForRow returns the tier of aliens in the given formation row.
// The top row is red, the next two purple, the rest green.
func AlienColorForRow(row int) AlienColor {
	switch {
	case row == 0:
		return AlienRed
	case row <= 2:
		return AlienPurple
	default:
		return AlienGreen
	}
}

// Value returns the points awarded for destroying an alien of this tier.
func (c AlienColor) Value() int {
	switch c {
	case AlienRed:
		return config.ScoreRedAlien
	case AlienPurple:
		return config.ScorePurpleAlien
	case AlienGreen:
		return config.ScoreGreenAlien
	default:
		return 0
	}
}

// Color returns the pixel color aliens of this tier are drawn with.
func (c AlienColor) Color() draw.Color {
	return alienColors[c]
}

func (c AlienColor) String() string {
	switch c {
	case AlienRed:
		return "red"
	case AlienPurple:
		return "purple"
	case AlienGreen:
		return "green"
	default:
		return "unknown"
	}
}

// AlienSize returns the width and height of an alien sprite.
func AlienSize() (float64, float64) {
	s := alienSprites[AlienGreen][0]
	return float64(s.Width()), float64(s.Height())
}

// Alien is one member of the invading formation.
// The formation, not the alien, decides where it moves.
type Alien struct {
	Rect      physics.Rect
	Color     AlienColor
	Value     int
	frame     int
	animTime  float64
	destroyed bool
}

// NewAlien creates an alien with its top-left corner at (x, y).
func NewAlien(color AlienColor, x, y float64) *Alien {
	w, h := AlienSize()
	return &Alien{
		Rect:  physics.Rect{X: x, Y: y, W: w, H: h},
		Color: color,
		Value: color.Value(),
	}
}

// Move shifts the alien by (dx, dy).
func (a *Alien) Move(dx, dy float64) {
	a.Rect = a.Rect.Translate(dx, dy)
}

// MarkDestroyed marks the alien for removal.
func (a *Alien) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the alien is marked for destruction.
func (a *Alien) IsDestroyed() bool {
	return a.destroyed
}

// Bounds returns the alien's collision rect.
func (a *Alien) Bounds() physics.Rect {
	return a.Rect
}

// Update advances the animation.
func (a *Alien) Update(ctx UpdateContext) (bool, error) {
	if a.destroyed {
		return true, nil
	}
	a.animTime += ctx.Delta.Seconds()
	for a.animTime >= alienFrameTime {
		a.animTime -= alienFrameTime
		a.frame = 1 - a.frame
	}
	return false, nil
}

// Draw renders the current animation frame.
func (a *Alien) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawSprite(a.Rect.X, a.Rect.Y, alienSprites[a.Color][a.frame], a.Color.Color())
	return nil
}
