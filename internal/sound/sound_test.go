package sound

import (
	"math/rand"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain streams s until it ends or max samples were produced.
func drain(t *testing.T, s beep.Streamer, max int) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < max {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	require.NoError(t, s.Err())
	return out
}

func assertInRange(t *testing.T, samples [][2]float64) {
	t.Helper()
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[1] < -1 || s[1] > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestLaserSoundIsFinite(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, LaserSound(rate), 1<<20)

	assert.Equal(t, rate.N(laserDuration), len(samples))
	assertInRange(t, samples)
}

func TestExplosionSoundDecays(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, ExplosionSound(rate, rand.New(rand.NewSource(1))), 1<<20)

	require.Equal(t, rate.N(explosionDuration), len(samples))
	assertInRange(t, samples)

	tail := samples[len(samples)-10:]
	for _, s := range tail {
		assert.InDelta(t, 0, s[0], 0.01)
	}
}

func TestMusicLoops(t *testing.T) {
	rate := beep.SampleRate(8000)
	oneLoop := rate.N(noteDuration) * len(bassLine)

	samples := drain(t, Music(rate), 2*oneLoop+100)

	assert.GreaterOrEqual(t, len(samples), 2*oneLoop, "music never ends")
	assertInRange(t, samples)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Player = &r

	p.Play(EffectLaser)
	p.Play(EffectExplosion)
	p.Play(EffectLaser)
	p.StartMusic()

	assert.Equal(t, 2, r.Count(EffectLaser))
	assert.Equal(t, 1, r.Count(EffectExplosion))
	assert.True(t, r.Music)
	assert.NoError(t, p.Close())
}

func TestNop(t *testing.T) {
	var p Player = Nop{}
	p.Play(EffectLaser)
	p.StartMusic()
	assert.NoError(t, p.Close())
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "laser", EffectLaser.String())
	assert.Equal(t, "explosion", EffectExplosion.String())
	assert.Equal(t, "unknown", Effect(99).String())
}
