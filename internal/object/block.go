package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// ObstacleShape is the mask every obstacle is built from; 'x' is a block.
var ObstacleShape = []string{
	"  xxxxxxx",
	" xxxxxxxxx",
	"xxxxxxxxxxx",
	"xxxxxxxxxxx",
	"xxxxxxxxxxx",
	"xxx     xxx",
	"xx       xx",
}

// Block is one destructible tile of an obstacle.
type Block struct {
	Rect      physics.Rect
	Color     draw.Color
	destroyed bool
}

// NewBlock creates a size×size block with its top-left corner at (x, y).
func NewBlock(size float64, color draw.Color, x, y float64) *Block {
	return &Block{
		Rect:  physics.Rect{X: x, Y: y, W: size, H: size},
		Color: color,
	}
}

// MarkDestroyed marks the block for removal.
func (b *Block) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the block is marked for destruction.
func (b *Block) IsDestroyed() bool {
	return b.destroyed
}

// Bounds returns the block's collision rect.
func (b *Block) Bounds() physics.Rect {
	return b.Rect
}

// Update removes destroyed blocks; blocks never move.
func (b *Block) Update(_ UpdateContext) (bool, error) {
	return b.destroyed, nil
}

// Draw renders the block.
func (b *Block) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, b.Color)
	return nil
}

// BuildObstacle creates the blocks of one obstacle from shape.
// The cell at (row, col) lands at (xStart + col*size + offsetX, yStart + row*size).
func BuildObstacle(shape []string, size float64, xStart, yStart, offsetX float64) []*Block {
	var blocks []*Block
	for row, line := range shape {
		for col, ch := range line {
			if ch != 'x' {
				continue
			}
			x := xStart + float64(col)*size + offsetX
			y := yStart + float64(row)*size
			blocks = append(blocks, NewBlock(size, draw.ColorCoral, x, y))
		}
	}
	return blocks
}

// BuildObstacles creates one obstacle per offset.
func BuildObstacles(shape []string, size float64, xStart, yStart float64, offsets ...float64) []*Block {
	var blocks []*Block
	for _, off := range offsets {
		blocks = append(blocks, BuildObstacle(shape, size, xStart, yStart, off)...)
	}
	return blocks
}

// ObstacleOffsets spreads amount obstacles evenly across screenWidth.
func ObstacleOffsets(amount int, screenWidth float64) []float64 {
	offsets := make([]float64, amount)
	for i := range offsets {
		offsets[i] = float64(i) * (screenWidth / float64(amount))
	}
	return offsets
}
