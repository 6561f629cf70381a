package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("INVADERS_TEST_STR", "hello")
	t.Setenv("INVADERS_TEST_INT", "42")
	t.Setenv("INVADERS_TEST_BAD_INT", "forty-two")
	t.Setenv("INVADERS_TEST_BOOL", "false")

	assert.Equal(t, "hello", GetEnv("INVADERS_TEST_STR", "x"))
	assert.Equal(t, "x", GetEnv("INVADERS_TEST_MISSING", "x"))
	assert.Equal(t, 42, GetEnvInt("INVADERS_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("INVADERS_TEST_BAD_INT", 1))
	assert.Equal(t, 1, GetEnvInt("INVADERS_TEST_MISSING", 1))
	assert.False(t, GetEnvBool("INVADERS_TEST_BOOL", true))
	assert.True(t, GetEnvBool("INVADERS_TEST_MISSING", true))
}

func TestDefaultTuningIsValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTuningOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
initial_lives = 5
alien_rows = 2
alien_speed = 20.5
`)

	tuning, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, 5, tuning.InitialLives)
	assert.Equal(t, 2, tuning.AlienRows)
	assert.Equal(t, 20.5, tuning.AlienSpeed)
	assert.Equal(t, AlienCols, tuning.AlienCols, "unset keys keep defaults")
}

func TestLoadTuningRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "alien_colour = \"red\"\n")

	_, err := LoadTuning(path)
	require.ErrorIs(t, err, ErrInvalidTuning)
	assert.Contains(t, err.Error(), "alien_colour")
}

func TestLoadTuningRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "initial_lives = 0\nextra_spawn_max = 1.0\n")

	_, err := LoadTuning(path)
	require.ErrorIs(t, err, ErrInvalidTuning)
	assert.Contains(t, err.Error(), "initial_lives")
	assert.Contains(t, err.Error(), "extra_spawn_max")
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
