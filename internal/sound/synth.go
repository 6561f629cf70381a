package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Volumes relative to full scale.
const (
	musicVolume     = 0.2
	laserVolume     = 0.05
	explosionVolume = 0.2
)

const (
	laserDuration     = 120 * time.Millisecond
	explosionDuration = 300 * time.Millisecond
	noteDuration      = 220 * time.Millisecond
)

// bassLine is the looping music pattern, in Hz. Zero is a rest.
var bassLine = []float64{110, 0, 110, 0, 98, 0, 98, 0, 87.3, 0, 87.3, 0, 82.4, 0, 82.4, 0}

// sweep is a square wave whose frequency slides linearly from start to end.
type sweep struct {
	start, end float64
	rate       beep.SampleRate
	total      int
	pos        int
	phase      float64
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		freq := s.start + (s.end-s.start)*float64(s.pos)/float64(s.total)
		val := -1.0
		if s.phase < 0.5 {
			val = 1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay scales a stream linearly from full volume to silence over total samples.
func decay(s beep.Streamer, total int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			vol := 1 - float64(pos)/float64(total)
			if vol < 0 {
				vol = 0
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
			pos++
		}
		return n, ok
	})
}

// noise produces white noise forever.
func noise(rng *rand.Rand) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}

// withVolume scales a stream by a linear factor.
// math.Log2(0) is -Inf, so zero volume is handled as silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// LaserSound is a short falling zap.
func LaserSound(rate beep.SampleRate) beep.Streamer {
	s := &sweep{start: 1400, end: 300, rate: rate, total: rate.N(laserDuration)}
	return withVolume(s, laserVolume)
}

// ExplosionSound is a burst of decaying noise.
func ExplosionSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	total := rate.N(explosionDuration)
	burst := beep.Take(total, noise(rng))
	return withVolume(decay(burst, total), explosionVolume)
}

// Music loops the bass line forever.
func Music(rate beep.SampleRate) beep.Streamer {
	i := 0
	bar := func() beep.Streamer {
		freq := bassLine[i%len(bassLine)]
		i++
		n := rate.N(noteDuration)
		if freq == 0 {
			return beep.Silence(n)
		}
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			return beep.Silence(n)
		}
		return decay(beep.Take(n, tone), n)
	}
	return withVolume(beep.Iterate(bar), musicVolume)
}
