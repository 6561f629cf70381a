package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalTextUsesCanvasOffset(t *testing.T) {
	var out bytes.Buffer
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetOffset(2, 3)
	term := NewTerminal(&out, c)

	term.Text(1, 1, "hi")
	require.Positive(t, term.Pending())
	assert.Empty(t, out.String(), "nothing written before Flush")

	require.NoError(t, term.Flush())
	assert.Equal(t, "\033[4;3Hhi", out.String())
	assert.Zero(t, term.Pending())
}

func TestTerminalTextOutsideCanvasIsDropped(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, NewScaledCanvas(10, 5, 10, 10))

	term.Text(1, 0, "above")
	term.Text(1, 6, "below")
	assert.Zero(t, term.Pending())

	term.Text(-3, 2, "x")
	require.NoError(t, term.Flush())
	assert.Equal(t, "\033[2;1Hx", out.String())
}

func TestTerminalTextMarksStyledWidth(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var buf bytes.Buffer
	c.Render(&buf)

	term := NewTerminal(&bytes.Buffer{}, c)
	term.Text(3, 2, "\033[1;38;2;255;0;0mab\033[0m")

	buf.Reset()
	c.Render(&buf)
	assert.Equal(t, 2, strings.Count(buf.String(), "H"), "only the cells under the text repaint")
}

func TestTerminalOpenAndClose(t *testing.T) {
	var out bytes.Buffer
	c := NewScaledCanvas(4, 2, 4, 4)
	var settle bytes.Buffer
	c.Render(&settle)
	term := NewTerminal(&out, c)

	require.NoError(t, term.Open())
	assert.Equal(t, seqHideCursor+seqMouseOn+seqClear, out.String())

	settle.Reset()
	c.Render(&settle)
	assert.Equal(t, 8, strings.Count(settle.String(), "H"), "clearing forces a full repaint")

	out.Reset()
	require.NoError(t, term.Close())
	assert.Equal(t, seqMouseOff+seqShowCursor+seqClear, out.String())
}
