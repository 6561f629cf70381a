package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionEnvLastValueWins(t *testing.T) {
	env := sessionEnv{"TERM=xterm", "COLORTERM=truecolor", "TERM=xterm-256color"}
	assert.Equal(t, "xterm-256color", env.Getenv("TERM"))
	assert.Equal(t, "truecolor", env.Getenv("COLORTERM"))
	assert.Equal(t, "", env.Getenv("LANG"))
	assert.Len(t, env.Environ(), 3)
}

func TestSizeTracker(t *testing.T) {
	st := newSizeTracker(80, 24)
	w, h, err := st.getSize()
	assert.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	st.update(120, 40)
	w, h, _ = st.getSize()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}
