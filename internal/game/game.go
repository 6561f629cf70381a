// Package game implements the invaders rules, the menu/playing state machine
// and the terminal loop that drives them.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
	"github.com/tomz197/invaders/internal/sound"
)

// Game owns every sprite group of one wave plus score and lives.
// It is not safe for concurrent use; each session has its own.
type Game struct {
	Tuning config.Tuning
	Screen object.Screen

	Player       *object.Player
	PlayerLasers []*object.Laser
	Aliens       []*object.Alien
	AlienLasers  []*object.Laser
	Blocks       []*object.Block
	Extra        *object.Extra // At most one at a time
	Particles    []object.Object
	Background   *object.Background

	Score int
	Lives int
	Wave  int

	direction  float64 // +1 right, -1 left
	extraTimer float64 // Seconds until the next extra
	shootTimer float64 // Seconds since the last alien shot

	rng       *rand.Rand
	sound     sound.Player
	log       *log.Logger
	blockGrid *physics.SpatialGrid
	toSpawn   []object.Object // Objects to add after current update cycle
}

// New creates a game at wave 1. A nil rng, sound player or logger is
// replaced by a time-seeded source, silence and a discarding logger.
func New(t config.Tuning, rng *rand.Rand, snd sound.Player, logger *log.Logger) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if snd == nil {
		snd = sound.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		Tuning: t,
		Screen: object.NewScreen(t.ScreenWidth, t.ScreenHeight),
		Lives:  t.InitialLives,
		rng:    rng,
		sound:  snd,
		log:    logger,
		blockGrid: physics.NewSpatialGrid(
			float64(t.ScreenWidth), float64(t.ScreenHeight), 8,
		),
	}

	g.Player = object.NewPlayer(
		float64(t.ScreenWidth)/2, float64(t.ScreenHeight), float64(t.ScreenWidth),
		t.PlayerSpeed, t.PlayerLaserSpeed, t.LaserCooldown,
	)
	g.Background = object.NewBackground(g.Screen, backgroundStars, rng)
	g.setupWave()
	g.Wave = 1
	return g
}

// setupWave builds a fresh formation and fresh obstacles and clears
// everything in flight.
func (g *Game) setupWave() {
	t := g.Tuning

	offsets := object.ObstacleOffsets(t.ObstacleAmount, float64(t.ScreenWidth))
	g.Blocks = object.BuildObstacles(object.ObstacleShape, t.BlockSize,
		float64(t.ScreenWidth)/15, t.ObstacleY, offsets...)

	g.Aliens = g.Aliens[:0]
	for row := 0; row < t.AlienRows; row++ {
		color := object.AlienColorForRow(row)
		for col := 0; col < t.AlienCols; col++ {
			x := float64(col)*t.AlienSpacingX + t.AlienOffsetX
			y := float64(row)*t.AlienSpacingY + t.AlienOffsetY
			g.Aliens = append(g.Aliens, object.NewAlien(color, x, y))
		}
	}

	g.PlayerLasers = nil
	g.AlienLasers = nil
	g.Extra = nil
	g.toSpawn = nil
	g.direction = 1
	g.shootTimer = 0
	g.resetExtraTimer()
}

// NextWave starts the next wave with the current score and lives.
func (g *Game) NextWave() {
	g.Wave++
	g.setupWave()
	g.log.Info("wave started", "wave", g.Wave, "score", g.Score, "lives", g.Lives)
}

// Won reports whether every alien of the wave is destroyed.
func (g *Game) Won() bool {
	return len(g.Aliens) == 0
}

// Lost reports whether the player is out of lives.
func (g *Game) Lost() bool {
	return g.Lives <= 0
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner.
func (g *Game) Spawn(obj object.Object) {
	g.toSpawn = append(g.toSpawn, obj)
}

// flushSpawned routes queued objects into their groups.
func (g *Game) flushSpawned() {
	for _, obj := range g.toSpawn {
		switch o := obj.(type) {
		case *object.Laser:
			if o.Owner == object.OwnerPlayer {
				g.PlayerLasers = append(g.PlayerLasers, o)
			} else {
				g.AlienLasers = append(g.AlienLasers, o)
			}
		case *object.Alien:
			g.Aliens = append(g.Aliens, o)
		case *object.Extra:
			g.Extra = o
		default:
			g.Particles = append(g.Particles, o)
		}
	}
	clear(g.toSpawn)
	g.toSpawn = g.toSpawn[:0]
}

func (g *Game) updateContext(dt time.Duration, in object.Input) object.UpdateContext {
	return object.UpdateContext{
		Delta:   dt,
		Input:   in,
		Screen:  g.Screen,
		Margin:  g.Tuning.LaserMargin,
		Spawner: g,
		Sound:   g.sound,
	}
}

// UpdateBackground drifts the star field. It runs in every state.
func (g *Game) UpdateBackground(dt time.Duration) {
	g.Background.Update(g.updateContext(dt, object.Input{}))
}

// Update advances the wave by dt. Nothing moves once the game is lost.
// A long frame runs as several steps of at most MaxUpdateStep, and time
// beyond MaxFrameDelta is dropped.
func (g *Game) Update(dt time.Duration, in object.Input) error {
	dt = min(dt, MaxFrameDelta)
	for dt > 0 && !g.Lost() {
		step := min(dt, MaxUpdateStep)
		if err := g.step(step, in); err != nil {
			return err
		}
		dt -= step
	}
	return nil
}

func (g *Game) step(dt time.Duration, in object.Input) error {
	ctx := g.updateContext(dt, in)

	if _, err := g.Player.Update(ctx); err != nil {
		return err
	}

	dx := g.direction * g.Tuning.AlienSpeed * dt.Seconds()
	for _, a := range g.Aliens {
		a.Move(dx, 0)
	}

	var err error
	if g.Aliens, err = updateGroup(g.Aliens, ctx); err != nil {
		return err
	}
	if g.AlienLasers, err = updateGroup(g.AlienLasers, ctx); err != nil {
		return err
	}
	if g.PlayerLasers, err = updateGroup(g.PlayerLasers, ctx); err != nil {
		return err
	}
	if g.Extra != nil {
		remove, err := g.Extra.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			g.Extra = nil
		}
	}
	if g.Particles, err = updateGroup(g.Particles, ctx); err != nil {
		return err
	}

	g.checkAlienEdges()
	g.updateExtraTimer(dt)
	g.updateAlienShooting(dt)
	g.checkCollisions()

	g.flushSpawned()
	return nil
}

// checkAlienEdges reverses the formation when it touches a side wall and
// moves it down once per reversal.
func (g *Game) checkAlienEdges() {
	width := float64(g.Screen.Width)
	bounced := false
	for _, a := range g.Aliens {
		if g.direction > 0 && a.Rect.Right() >= width {
			g.direction = -1
			bounced = true
			break
		}
		if g.direction < 0 && a.Rect.Left() <= 0 {
			g.direction = 1
			bounced = true
			break
		}
	}
	if !bounced {
		return
	}
	for _, a := range g.Aliens {
		a.Move(0, g.Tuning.AlienDescend)
	}
}

func (g *Game) resetExtraTimer() {
	t := g.Tuning
	g.extraTimer = t.ExtraSpawnMin + g.rng.Float64()*(t.ExtraSpawnMax-t.ExtraSpawnMin)
}

// updateExtraTimer counts down to the next extra and sends it in from a
// random side.
func (g *Game) updateExtraTimer(dt time.Duration) {
	g.extraTimer -= dt.Seconds()
	if g.extraTimer > 0 {
		return
	}
	side := object.SideLeft
	if g.rng.Intn(2) == 1 {
		side = object.SideRight
	}
	g.Spawn(object.NewExtra(side, float64(g.Screen.Width), g.Tuning.ExtraY, g.Tuning.ExtraSpeed))
	g.resetExtraTimer()
}

// updateAlienShooting lets a random alien fire every AlienShootInterval.
func (g *Game) updateAlienShooting(dt time.Duration) {
	interval := g.Tuning.AlienShootInterval
	g.shootTimer += dt.Seconds()
	for g.shootTimer >= interval {
		g.shootTimer -= interval
		g.alienShoot()
	}
}

func (g *Game) alienShoot() {
	if len(g.Aliens) == 0 || g.Lost() {
		return
	}
	a := g.Aliens[g.rng.Intn(len(g.Aliens))]
	cx, cy := a.Rect.Center()
	g.Spawn(object.NewLaser(cx, cy, g.Tuning.AlienLaserSpeed, object.OwnerAlien))
	g.sound.Play(sound.EffectLaser)
}

// Draw renders every group, back to front.
func (g *Game) Draw(ctx object.DrawContext) error {
	if err := g.Background.Draw(ctx); err != nil {
		return err
	}
	if err := drawGroup(g.Blocks, ctx); err != nil {
		return err
	}
	if err := drawGroup(g.Aliens, ctx); err != nil {
		return err
	}
	if g.Extra != nil {
		if err := g.Extra.Draw(ctx); err != nil {
			return err
		}
	}
	if err := drawGroup(g.AlienLasers, ctx); err != nil {
		return err
	}
	if err := drawGroup(g.PlayerLasers, ctx); err != nil {
		return err
	}
	if !g.Lost() {
		if err := g.Player.Draw(ctx); err != nil {
			return err
		}
	}
	return drawGroup(g.Particles, ctx)
}
