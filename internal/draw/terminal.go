// Package draw renders half-block pixel graphics and text to ANSI terminals.
package draw

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// Terminal mode sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1000h\033[?1006h" // Button presses, SGR encoding
	seqMouseOff   = "\033[?1006l\033[?1000l"
)

// Terminal collects one frame of output for a canvas and sends it to the
// underlying writer in network-sized chunks on Flush.
//
// Text written through Text is recorded on the canvas, so the cells are
// repainted by a later Render once the text is no longer drawn.
type Terminal struct {
	canvas *Canvas
	frame  bytes.Buffer
	out    *bufio.Writer
	numBuf [20]byte
}

// NewTerminal returns a Terminal drawing c to w.
func NewTerminal(w io.Writer, c *Canvas) *Terminal {
	return &Terminal{
		canvas: c,
		out:    bufio.NewWriterSize(w, 8192),
	}
}

// Open prepares the terminal for the game: hidden cursor, mouse reporting
// and a blank screen.
func (t *Terminal) Open() error {
	t.frame.WriteString(seqHideCursor + seqMouseOn)
	t.Clear()
	return t.Flush()
}

// Close restores the cursor, stops mouse reporting and leaves the screen blank.
func (t *Terminal) Close() error {
	t.frame.WriteString(seqMouseOff + seqShowCursor + seqClear)
	return t.Flush()
}

// Clear wipes the whole terminal and makes the next Render repaint the canvas.
func (t *Terminal) Clear() {
	t.frame.WriteString(seqClear)
	t.canvas.ForceRedraw()
}

// Write lets Canvas.Render and RenderBorder draw into the frame.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.frame.Write(p)
}

var _ io.Writer = (*Terminal)(nil)

// Text writes s at the 1-based canvas cell (col, row). Rows outside the
// canvas are dropped. s may contain styling escapes.
func (t *Terminal) Text(col, row int, s string) {
	if row < 1 || row > t.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)

	t.frame.WriteString("\033[")
	t.frame.Write(strconv.AppendInt(t.numBuf[:0], int64(row+t.canvas.OffsetRow()), 10))
	t.frame.WriteByte(';')
	t.frame.Write(strconv.AppendInt(t.numBuf[:0], int64(col+t.canvas.OffsetCol()), 10))
	t.frame.WriteByte('H')
	t.frame.WriteString(s)

	t.canvas.MarkTextDirty(col, row, ansi.StringWidth(s))
}

// Pending returns the number of bytes waiting for Flush.
func (t *Terminal) Pending() int {
	return t.frame.Len()
}

// Flush sends the frame and resets it.
func (t *Terminal) Flush() error {
	data := t.frame.Bytes()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := t.out.Write(data[:n]); err != nil {
			t.frame.Reset()
			return err
		}
		data = data[n:]
	}
	t.frame.Reset()
	return t.out.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
