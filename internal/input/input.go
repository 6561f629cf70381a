// Package input turns raw terminal bytes into per-frame key and mouse state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals never report releases, so this has to bridge the autorepeat gap.
const keyHoldDuration = 60 * time.Millisecond

// Key identifies a logical key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	KeyEscape
	KeyQuit
	keyCount
)

// Click is a mouse button press at a 1-based terminal position.
type Click struct {
	Col, Row int
	Button   int
}

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Space  bool
	Enter  bool
	Escape bool

	Keys    []Key   // Keys that arrived this frame, in order
	Clicks  []Click // Mouse presses that arrived this frame
	Pressed []byte  // Raw bytes read this frame
	EOF     bool    // The underlying reader is exhausted
}

// Tapped reports whether k arrived this frame.
func (in Input) Tapped(k Key) bool {
	for _, got := range in.Keys {
		if got == k {
			return true
		}
	}
	return false
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	last [keyCount]time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets all held keys, so a key that started an action
// does not also count for the next screen.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys, clicks := parse(&s.state, buf, now)

	held := func(k Key) bool {
		return !s.state.last[k].IsZero() && now.Sub(s.state.last[k]) < keyHoldDuration
	}
	return Input{
		Quit:    held(KeyQuit),
		Left:    held(KeyLeft),
		Right:   held(KeyRight),
		Up:      held(KeyUp),
		Down:    held(KeyDown),
		Space:   held(KeySpace),
		Enter:   held(KeyEnter),
		Escape:  held(KeyEscape),
		Keys:    keys,
		Clicks:  clicks,
		Pressed: buf,
		EOF:     s.closed && len(buf) == 0,
	}
}

// parse decodes buf, updating key timestamps, and returns the keys and
// mouse presses it contained.
func parse(state *keyState, buf []byte, now time.Time) ([]Key, []Click) {
	var keys []Key
	var clicks []Click

	press := func(k Key) {
		state.last[k] = now
		keys = append(keys, k)
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				press(KeyUp)
				i += 2
				continue
			case 'B':
				press(KeyDown)
				i += 2
				continue
			case 'C':
				press(KeyRight)
				i += 2
				continue
			case 'D':
				press(KeyLeft)
				i += 2
				continue
			case '<':
				if click, n, ok := parseSGRMouse(buf[i+3:]); ok {
					if click.Button >= 0 {
						clicks = append(clicks, click)
					}
					i += 2 + n
					continue
				}
			}
		}

		if k := byteKey(b); k != KeyNone {
			press(k)
		}
	}
	return keys, clicks
}

// byteKey maps a single byte to its key.
func byteKey(b byte) Key {
	switch b {
	case 'q', 'Q':
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'k', 'K':
		return KeyUp
	case 's', 'S', 'j', 'J':
		return KeyDown
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\x1b':
		return KeyEscape
	default:
		return KeyNone
	}
}

// parseSGRMouse decodes the body of an SGR mouse report ("b;x;yM" or "b;x;ym")
// that follows "ESC [ <". It returns the number of bytes consumed.
// Releases, motion and wheel events are consumed with Button set to -1.
func parseSGRMouse(buf []byte) (Click, int, bool) {
	var fields [3]int
	field := 0
	for i, b := range buf {
		switch {
		case b >= '0' && b <= '9':
			fields[field] = fields[field]*10 + int(b-'0')
		case b == ';':
			field++
			if field > 2 {
				return Click{}, 0, false
			}
		case b == 'M' || b == 'm':
			if field != 2 {
				return Click{}, 0, false
			}
			click := Click{Col: fields[1], Row: fields[2], Button: fields[0] & 3}
			if b == 'm' || fields[0]&(32|64) != 0 {
				click.Button = -1
			}
			return click, i + 1, true
		default:
			return Click{}, 0, false
		}
	}
	return Click{}, 0, false
}
