package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 2}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 1, Y: 0.5, W: 1, H: 1}, true},
		{"partial", Rect{X: 3, Y: 1, W: 4, H: 4}, true},
		{"touching right edge", Rect{X: 4, Y: 0, W: 1, H: 1}, false},
		{"touching bottom edge", Rect{X: 0, Y: 2, W: 1, H: 1}, false},
		{"far away", Rect{X: 50, Y: 50, W: 1, H: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

func TestRectEdgesAndCenter(t *testing.T) {
	r := Rect{X: 8, Y: 17, W: 4, H: 6}
	assert.Equal(t, 8.0, r.Left())
	assert.Equal(t, 12.0, r.Right())
	assert.Equal(t, 17.0, r.Top())
	assert.Equal(t, 23.0, r.Bottom())

	cx, cy := r.Center()
	assert.Equal(t, 10.0, cx)
	assert.Equal(t, 20.0, cy)

	moved := r.Translate(1, -2)
	assert.Equal(t, 9.0, moved.X)
	assert.Equal(t, 15.0, moved.Y)
	assert.Equal(t, 8.0, r.X, "Translate must not mutate the receiver")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
}
