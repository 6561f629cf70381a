package game

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/tomz197/invaders/internal/input"
)

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, ctx is done or r is exhausted.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	s := NewSession(w, opts)
	defer s.Close()
	s.stream = input.StartStream(r)

	if err := s.term.Open(); err != nil {
		return err
	}
	defer func() {
		if err := s.term.Close(); err != nil {
			s.log.Debug("restore terminal", "err", err)
		}
	}()

	s.opts.Sound.StartMusic()
	s.log.Info("session started")

	lastTime := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for s.Running() {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-ctx.Done():
			s.log.Info("session cancelled")
			return nil
		default:
		}

		// ===== INPUT PHASE =====
		in := input.ReadInput(s.stream)
		s.resize()

		// ===== UPDATE PHASE =====
		if err := s.Update(delta, in, frameStart); err != nil {
			return err
		}

		// ===== DRAW PHASE =====
		if err := s.Draw(); err != nil {
			return err
		}

		if in.EOF {
			s.log.Info("input closed")
			break
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < TargetFrameTime {
			timer.Reset(TargetFrameTime - elapsed)
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
		}
	}

	s.log.Info("session ended", "score", s.game.Score)
	return nil
}
