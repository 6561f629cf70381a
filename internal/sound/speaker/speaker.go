// Package speaker plays game sounds on the local audio device.
// It needs cgo and a sound system, so only the local binary imports it.
package speaker

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	beepspeaker "github.com/gopxl/beep/speaker"
	"github.com/tomz197/invaders/internal/sound"
)

const sampleRate = beep.SampleRate(44100)

// Speaker mixes effects and music into the audio device.
type Speaker struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	music   *beep.Ctrl
	rng     *rand.Rand
	started bool
	closed  bool
}

var _ sound.Player = (*Speaker)(nil)

// New initializes the audio device. Callers fall back to sound.Nop on error.
func New() (*Speaker, error) {
	if err := beepspeaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	beepspeaker.Play(s.mixer)
	return s, nil
}

// Play mixes in a one-shot effect.
func (s *Speaker) Play(e sound.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	var st beep.Streamer
	switch e {
	case sound.EffectLaser:
		st = sound.LaserSound(sampleRate)
	case sound.EffectExplosion:
		st = sound.ExplosionSound(sampleRate, s.rng)
	default:
		return
	}

	beepspeaker.Lock()
	s.mixer.Add(st)
	beepspeaker.Unlock()
}

// StartMusic starts the background loop once.
func (s *Speaker) StartMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.started {
		return
	}
	s.started = true
	s.music = &beep.Ctrl{Streamer: sound.Music(sampleRate)}

	beepspeaker.Lock()
	s.mixer.Add(s.music)
	beepspeaker.Unlock()
}

// Close stops all sounds and releases the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	beepspeaker.Lock()
	if s.music != nil {
		s.music.Paused = true
	}
	s.mixer.Clear()
	beepspeaker.Unlock()

	beepspeaker.Clear()
	beepspeaker.Close()
	return nil
}
