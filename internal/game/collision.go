package game

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/sound"
)

// checkCollisions resolves every interaction of the frame, then drops what
// was destroyed. A laser is tested against everything it overlaps; one that
// an earlier pass destroyed is skipped by the later ones.
func (g *Game) checkCollisions() {
	g.populateBlockGrid()

	g.checkPlayerLasers()
	g.checkAlienLasers()
	g.checkAliens()

	g.PlayerLasers = compact(g.PlayerLasers)
	g.AlienLasers = compact(g.AlienLasers)
	g.Aliens = compact(g.Aliens)
	g.Blocks = compact(g.Blocks)
	if g.Extra != nil && g.Extra.IsDestroyed() {
		g.Extra = nil
	}
}

// populateBlockGrid clears and re-inserts all live blocks into the grid.
func (g *Game) populateBlockGrid() {
	g.blockGrid.Clear()
	for i, b := range g.Blocks {
		g.blockGrid.Insert(b.Bounds(), i)
	}
}

// destroyBlocks destroys every block overlapping c and reports whether any did.
func (g *Game) destroyBlocks(c object.Collider) bool {
	r := c.Bounds()
	hit := false
	g.blockGrid.Query(r, func(i int) bool {
		b := g.Blocks[i]
		if !b.IsDestroyed() && object.Collides(b, c) {
			b.MarkDestroyed()
			hit = true
		}
		return false
	})
	return hit
}

func (g *Game) checkPlayerLasers() {
	for _, l := range g.PlayerLasers {
		if l.IsDestroyed() {
			continue
		}

		if g.destroyBlocks(l) {
			l.MarkDestroyed()
		}

		killed := false
		for _, a := range g.Aliens {
			if a.IsDestroyed() || !object.Collides(a, l) {
				continue
			}
			a.MarkDestroyed()
			g.Score += a.Value
			cx, cy := a.Rect.Center()
			object.SpawnExplosion(cx, cy, explosionParticles, explosionSpeed, explosionLifetime, a.Color.Color(), g)
			killed = true
		}
		if killed {
			l.MarkDestroyed()
			g.sound.Play(sound.EffectExplosion)
		}

		if e := g.Extra; e != nil && !e.IsDestroyed() && object.Collides(e, l) {
			e.MarkDestroyed()
			l.MarkDestroyed()
			g.Score += e.Value
			cx, cy := e.Rect.Center()
			object.SpawnExplosion(cx, cy, explosionParticles, explosionSpeed, explosionLifetime, draw.ColorYellow, g)
			g.sound.Play(sound.EffectExplosion)
			g.log.Debug("extra destroyed", "score", g.Score)
		}
	}
}

func (g *Game) checkAlienLasers() {
	for _, l := range g.AlienLasers {
		if l.IsDestroyed() {
			continue
		}

		if g.destroyBlocks(l) {
			l.MarkDestroyed()
		}

		if !g.Lost() && object.Collides(l, g.Player) {
			l.MarkDestroyed()
			g.Lives--
			g.log.Debug("player hit", "lives", g.Lives)
		}
	}
}

func (g *Game) checkAliens() {
	height := float64(g.Screen.Height)
	for _, a := range g.Aliens {
		if a.IsDestroyed() {
			continue
		}
		g.destroyBlocks(a)

		if object.Collides(a, g.Player) || a.Bounds().Bottom() >= height {
			g.Lives = 0
		}
	}
}
