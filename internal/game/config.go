package game

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Loop timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	MaxUpdateStep = 50 * time.Millisecond // Longest single simulation step
	MaxFrameDelta = time.Second           // Frame time beyond this is dropped
)

// Max render resolution in terminal cells; larger terminals get a centered,
// bordered play area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity defaults for remote sessions.
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// Menu
const (
	LeaderboardSize = 5
	DefaultName     = "player"
	MaxNameLength   = 16 // Maximum display length for player names
)

// Button colors
var (
	PlayColor  = lipgloss.Color("#00ff99")
	QuitColor  = lipgloss.Color("#ff3300")
	HoverColor = lipgloss.Color("#ffffff")
)

// Explosion bursts
const (
	explosionParticles = 10
	explosionSpeed     = 25.0
	explosionLifetime  = 0.5
	backgroundStars    = 40
)
