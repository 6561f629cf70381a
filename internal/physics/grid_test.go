package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(g *SpatialGrid, r Rect) map[int]bool {
	seen := map[int]bool{}
	g.Query(r, func(i int) bool {
		seen[i] = true
		return false
	})
	return seen
}

func TestSpatialGridQuery(t *testing.T) {
	g := NewSpatialGrid(40, 40, 4)
	g.Insert(Rect{X: 1, Y: 1, W: 1, H: 1}, 0)
	g.Insert(Rect{X: 30, Y: 30, W: 1, H: 1}, 1)
	g.Insert(Rect{X: 3, Y: 3, W: 2, H: 2}, 2) // spans four cells

	near := collect(g, Rect{X: 0, Y: 0, W: 2, H: 2})
	assert.True(t, near[0])
	assert.True(t, near[2])
	assert.False(t, near[1])

	far := collect(g, Rect{X: 29, Y: 29, W: 3, H: 3})
	assert.Equal(t, map[int]bool{1: true}, far)
}

func TestSpatialGridOutOfBoundsClamps(t *testing.T) {
	g := NewSpatialGrid(10, 10, 5)
	g.Insert(Rect{X: -5, Y: -5, W: 1, H: 1}, 7)

	assert.True(t, collect(g, Rect{X: 0, Y: 0, W: 1, H: 1})[7])
}

func TestSpatialGridClearAndEarlyStop(t *testing.T) {
	g := NewSpatialGrid(10, 10, 5)
	for i := 0; i < 3; i++ {
		g.Insert(Rect{X: 1, Y: 1, W: 1, H: 1}, i)
	}

	calls := 0
	g.Query(Rect{X: 0, Y: 0, W: 2, H: 2}, func(int) bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)

	g.Clear()
	assert.Empty(t, collect(g, Rect{X: 0, Y: 0, W: 10, H: 10}))
}
