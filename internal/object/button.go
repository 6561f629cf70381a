package object

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// buttonPadding is the horizontal padding inside a button border.
const buttonPadding = 3

// Button is a bordered menu label that changes color when hovered.
// Positions are 1-based canvas cells.
type Button struct {
	Label      string
	Col, Row   int // Center cell
	BaseColor  lipgloss.Color
	HoverColor lipgloss.Color
	Hovered    bool
}

// NewButton creates a button centered on (col, row).
func NewButton(label string, col, row int, base, hover lipgloss.Color) *Button {
	return &Button{
		Label:      label,
		Col:        col,
		Row:        row,
		BaseColor:  base,
		HoverColor: hover,
	}
}

// Size returns the button's width and height in cells, border included.
func (b *Button) Size() (int, int) {
	return lipgloss.Width(b.Label) + 2*buttonPadding + 2, 3
}

// TopLeft returns the 1-based cell of the button's top-left corner.
func (b *Button) TopLeft() (int, int) {
	w, h := b.Size()
	return b.Col - w/2, b.Row - h/2
}

// Contains reports whether the cell (col, row) is on the button.
func (b *Button) Contains(col, row int) bool {
	left, top := b.TopLeft()
	w, h := b.Size()
	return col >= left && col < left+w && row >= top && row < top+h
}

// Style returns the lipgloss style for the button's current state.
func (b *Button) Style(r *lipgloss.Renderer) lipgloss.Style {
	color := b.BaseColor
	if b.Hovered {
		color = b.HoverColor
	}
	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Bold(true).
		Padding(0, buttonPadding)
}

// Draw writes the button as text over the canvas.
func (b *Button) Draw(ctx DrawContext) error {
	left, top := b.TopLeft()
	lines := strings.Split(b.Style(ctx.Renderer).Render(b.Label), "\n")
	for i, line := range lines {
		ctx.Term.Text(left, top+i, line)
	}
	return nil
}
