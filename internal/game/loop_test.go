package game

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/invaders/internal/lobby"
	"github.com/tomz197/invaders/internal/sound"
)

func TestRunExitsOnEOF(t *testing.T) {
	var out bytes.Buffer
	lb := lobby.New()
	rec := &sound.Recorder{}

	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), &out, Options{
		TermSizeFunc: fixedSize(120, 40),
		Lobby:        lb,
		Sound:        rec,
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "\033[?25l", "cursor hidden")
	assert.Contains(t, s, "\033[?1000h", "mouse enabled")
	assert.Contains(t, s, "MAIN MENU")
	assert.Contains(t, s, "\033[?1000l", "mouse disabled")
	assert.Contains(t, s, "\033[?25h", "cursor restored")
	assert.True(t, rec.Music)
	assert.Equal(t, 0, lb.Players(), "session left the lobby")
}

func TestRunQuitKey(t *testing.T) {
	var out bytes.Buffer
	done := make(chan error, 1)
	pr, pw := io.Pipe()
	defer pw.Close()

	go func() {
		done <- Run(context.Background(), bufio.NewReader(pr), &out, Options{
			TermSizeFunc: fixedSize(80, 24),
		})
	}()

	_, err := pw.Write([]byte("q"))
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop on q")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(pr), &out, Options{
			TermSizeFunc: fixedSize(80, 24),
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}
