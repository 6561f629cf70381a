package object

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/sound"
)

type spawnRecorder struct {
	objects []Object
}

func (s *spawnRecorder) Spawn(obj Object) {
	s.objects = append(s.objects, obj)
}

func updateCtx(dt time.Duration, in Input) (UpdateContext, *spawnRecorder, *sound.Recorder) {
	sp := &spawnRecorder{}
	rec := &sound.Recorder{}
	return UpdateContext{
		Delta:   dt,
		Input:   in,
		Screen:  NewScreen(120, 80),
		Margin:  6,
		Spawner: sp,
		Sound:   rec,
	}, sp, rec
}

func TestPlayerMovesAndClamps(t *testing.T) {
	p := NewPlayer(60, 80, 120, 60, 64, 0.6)
	assert.Equal(t, 80.0, p.Rect.Bottom())
	cx, _ := p.Rect.Center()
	assert.Equal(t, 60.0, cx)

	ctx, _, _ := updateCtx(500*time.Millisecond, Input{Right: true})
	_, err := p.Update(ctx)
	require.NoError(t, err)
	cx, _ = p.Rect.Center()
	assert.InDelta(t, 90.0, cx, 1e-9)

	ctx, _, _ = updateCtx(10*time.Second, Input{Right: true})
	p.Update(ctx)
	assert.Equal(t, 120.0, p.Rect.Right(), "clamped to the right bound")

	ctx, _, _ = updateCtx(10*time.Second, Input{Left: true})
	p.Update(ctx)
	assert.Equal(t, 0.0, p.Rect.Left(), "clamped to the left bound")
}

func TestPlayerFireCooldown(t *testing.T) {
	p := NewPlayer(60, 80, 120, 60, 64, 0.6)

	ctx, sp, rec := updateCtx(100*time.Millisecond, Input{Space: true})
	p.Update(ctx)
	require.Len(t, sp.objects, 1)
	laser, ok := sp.objects[0].(*Laser)
	require.True(t, ok)
	assert.Equal(t, OwnerPlayer, laser.Owner)
	assert.Less(t, laser.VY, 0.0, "player lasers fly up")
	assert.LessOrEqual(t, laser.Rect.Bottom(), p.Rect.Top())
	assert.Equal(t, 1, rec.Count(sound.EffectLaser))

	// Still cooling down: 0.1s passed out of 0.6s.
	ctx.Delta = 100 * time.Millisecond
	p.Update(ctx)
	assert.Len(t, sp.objects, 1)

	ctx.Delta = 600 * time.Millisecond
	p.Update(ctx)
	assert.Len(t, sp.objects, 2)
}

func TestLaserLeavesScreen(t *testing.T) {
	l := NewLaser(10, 5, -64, OwnerPlayer)
	ctx, _, _ := updateCtx(50*time.Millisecond, Input{})

	remove, err := l.Update(ctx)
	require.NoError(t, err)
	assert.False(t, remove)
	assert.InDelta(t, 1.8, l.Rect.Y, 1e-9)

	ctx.Delta = time.Second
	remove, _ = l.Update(ctx)
	assert.True(t, remove, "past the top margin")

	down := NewLaser(10, 80, 48, OwnerAlien)
	remove, _ = down.Update(ctx)
	assert.True(t, remove, "past the bottom margin")
}

func TestLaserDestroyedIsRemoved(t *testing.T) {
	l := NewLaser(10, 40, -64, OwnerPlayer)
	l.MarkDestroyed()
	ctx, _, _ := updateCtx(time.Millisecond, Input{})
	remove, _ := l.Update(ctx)
	assert.True(t, remove)
}

func TestLaserBoundsCoverLastMove(t *testing.T) {
	l := NewLaser(10, 40, -200, OwnerPlayer)
	assert.Equal(t, l.Rect, l.Bounds(), "an unmoved laser covers only itself")

	ctx, _, _ := updateCtx(50*time.Millisecond, Input{})
	_, err := l.Update(ctx)
	require.NoError(t, err)

	b := l.Bounds()
	assert.InDelta(t, 30, b.Top(), 1e-9)
	assert.InDelta(t, 42, b.Bottom(), 1e-9)
	assert.Equal(t, l.Rect.X, b.X)

	alien := NewAlien(AlienGreen, 8, 35)
	assert.False(t, alien.Rect.Overlaps(l.Rect), "the laser jumped past the alien")
	assert.True(t, Collides(alien, l))
}

func TestAlienTiers(t *testing.T) {
	assert.Equal(t, AlienRed, AlienColorForRow(0))
	assert.Equal(t, AlienPurple, AlienColorForRow(1))
	assert.Equal(t, AlienPurple, AlienColorForRow(2))
	assert.Equal(t, AlienGreen, AlienColorForRow(3))
	assert.Equal(t, AlienGreen, AlienColorForRow(5))

	assert.Equal(t, config.ScoreRedAlien, NewAlien(AlienRed, 0, 0).Value)
	assert.Equal(t, config.ScorePurpleAlien, NewAlien(AlienPurple, 0, 0).Value)
	assert.Equal(t, config.ScoreGreenAlien, NewAlien(AlienGreen, 0, 0).Value)
	assert.Equal(t, "purple", AlienPurple.String())
}

func TestAlienMoveAndAnimate(t *testing.T) {
	a := NewAlien(AlienGreen, 10, 20)
	a.Move(2, 1)
	assert.Equal(t, 12.0, a.Rect.X)
	assert.Equal(t, 21.0, a.Rect.Y)

	ctx, _, _ := updateCtx(600*time.Millisecond, Input{})
	a.Update(ctx)
	assert.Equal(t, 1, a.frame)
	a.Update(ctx)
	assert.Equal(t, 0, a.frame)
}

func TestExtraSidesAndRemoval(t *testing.T) {
	right := NewExtra(SideRight, 120, 4, 36)
	assert.Equal(t, 120.0, right.Rect.X)
	assert.Less(t, right.VX, 0.0)

	left := NewExtra(SideLeft, 120, 4, 36)
	assert.Equal(t, -left.Rect.W, left.Rect.X)
	assert.Greater(t, left.VX, 0.0)
	assert.Equal(t, config.ScoreExtra, left.Value)

	ctx, _, _ := updateCtx(time.Second, Input{})
	remove, _ := left.Update(ctx)
	assert.False(t, remove)

	ctx.Delta = 5 * time.Second
	remove, _ = left.Update(ctx)
	assert.True(t, remove, "gone once past the right edge")

	remove, _ = right.Update(ctx)
	assert.True(t, remove, "gone once past the left edge")
}

func TestBuildObstacles(t *testing.T) {
	blocks := BuildObstacle(ObstacleShape, 1, 8, 62, 0)
	assert.Len(t, blocks, 59)

	first := blocks[0]
	assert.Equal(t, 10.0, first.Rect.X, "row 0 starts after two spaces")
	assert.Equal(t, 62.0, first.Rect.Y)

	offsets := ObstacleOffsets(4, 120)
	assert.Equal(t, []float64{0, 30, 60, 90}, offsets)

	all := BuildObstacles(ObstacleShape, 1, 8, 62, offsets...)
	assert.Len(t, all, 4*59)
	assert.Equal(t, 100.0, all[3*59].Rect.X)
}

func TestBlockUpdate(t *testing.T) {
	b := NewBlock(1, draw.ColorCoral, 0, 0)
	ctx, _, _ := updateCtx(time.Millisecond, Input{})
	remove, _ := b.Update(ctx)
	assert.False(t, remove)
	b.MarkDestroyed()
	remove, _ = b.Update(ctx)
	assert.True(t, remove)
}

func TestParticleExpires(t *testing.T) {
	ctx, sp, _ := updateCtx(100*time.Millisecond, Input{})
	SpawnExplosion(10, 10, 5, 20, 0.5, draw.ColorRed, sp)
	require.Len(t, sp.objects, 5)

	p := sp.objects[0].(*Particle)
	remove, _ := p.Update(ctx)
	assert.False(t, remove)

	ctx.Delta = time.Second
	remove, _ = p.Update(ctx)
	assert.True(t, remove)
	ReleaseObject(p)

	SpawnExplosion(0, 0, 3, 1, 1, draw.ColorRed, nil)
}

func TestButtonHitTest(t *testing.T) {
	b := NewButton("PLAY", 30, 10, "#00ff99", "#ffffff")
	w, h := b.Size()
	assert.Equal(t, 12, w)
	assert.Equal(t, 3, h)

	left, top := b.TopLeft()
	assert.Equal(t, 24, left)
	assert.Equal(t, 9, top)

	assert.True(t, b.Contains(24, 9))
	assert.True(t, b.Contains(35, 11))
	assert.False(t, b.Contains(36, 11))
	assert.False(t, b.Contains(30, 12))
}

func TestButtonDraw(t *testing.T) {
	var out bytes.Buffer
	canvas := draw.NewScaledCanvas(60, 20, 60, 40)
	term := draw.NewTerminal(&out, canvas)
	ctx := DrawContext{
		Canvas:   canvas,
		Term:     term,
		Renderer: lipgloss.NewRenderer(io.Discard),
	}

	b := NewButton("QUIT", 30, 10, "#ff3300", "#ffffff")
	require.NoError(t, b.Draw(ctx))
	require.NoError(t, term.Flush())

	assert.Contains(t, out.String(), "QUIT")
	assert.Contains(t, out.String(), "╭")
}

func TestBackgroundWraps(t *testing.T) {
	bg := NewBackground(NewScreen(120, 80), 20, rand.New(rand.NewSource(3)))
	ctx, _, _ := updateCtx(time.Minute, Input{})
	remove, _ := bg.Update(ctx)
	assert.False(t, remove)
	for _, s := range bg.stars {
		assert.GreaterOrEqual(t, s.y, 0.0)
		assert.Less(t, s.y, 80.0)
	}
}
