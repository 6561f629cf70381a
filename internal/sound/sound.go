// Package sound plays synthesized game audio.
package sound

// Effect identifies a one-shot sound.
type Effect int

const (
	EffectLaser Effect = iota
	EffectExplosion
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectLaser:
		return "laser"
	case EffectExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Player plays effects and background music.
type Player interface {
	Play(e Effect)
	StartMusic()
	Close() error
}

// Nop is a silent Player, used for remote sessions and when no audio device exists.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Effect) {}

// StartMusic does nothing.
func (Nop) StartMusic() {}

// Close does nothing.
func (Nop) Close() error { return nil }

var _ Player = Nop{}

// Recorder is a Player that remembers what it was asked to play.
type Recorder struct {
	Effects []Effect
	Music   bool
}

// Play records e.
func (r *Recorder) Play(e Effect) { r.Effects = append(r.Effects, e) }

// StartMusic records that music was started.
func (r *Recorder) StartMusic() { r.Music = true }

// Close does nothing.
func (r *Recorder) Close() error { return nil }

// Count returns how many times e was played.
func (r *Recorder) Count(e Effect) int {
	n := 0
	for _, got := range r.Effects {
		if got == e {
			n++
		}
	}
	return n
}
