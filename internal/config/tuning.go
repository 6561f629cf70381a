package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidTuning is returned when a tuning value is out of range.
var ErrInvalidTuning = errors.New("invalid tuning")

// Playfield - logical units. Vertical units are half terminal rows.
const (
	ScreenWidth  = 120
	ScreenHeight = 80
)

// Scoring
const (
	ScoreRedAlien    = 300
	ScorePurpleAlien = 200
	ScoreGreenAlien  = 100
	ScoreExtra       = 500
)

// Player
const (
	InitialLives     = 3
	PlayerSpeed      = 60.0 // Units per second
	PlayerLaserSpeed = 64.0
	LaserCooldown    = 0.6 // Seconds
)

// Alien formation
const (
	AlienRows          = 6
	AlienCols          = 8
	AlienSpeed         = 12.0
	AlienDescend       = 2.0
	AlienLaserSpeed    = 48.0
	AlienShootInterval = 0.8 // Seconds
)

// Extra
const (
	ExtraSpeed    = 36.0
	ExtraSpawnMin = 6.6 // Seconds
	ExtraSpawnMax = 13.3
)

// Obstacles
const (
	ObstacleAmount = 4
	ObstacleY      = 62
	BlockSize      = 1
)

// Tuning holds every gameplay parameter that can be overridden from a file.
type Tuning struct {
	ScreenWidth  int `toml:"screen_width"`
	ScreenHeight int `toml:"screen_height"`

	InitialLives     int     `toml:"initial_lives"`
	PlayerSpeed      float64 `toml:"player_speed"`
	PlayerLaserSpeed float64 `toml:"player_laser_speed"`
	LaserCooldown    float64 `toml:"laser_cooldown"`

	AlienRows          int     `toml:"alien_rows"`
	AlienCols          int     `toml:"alien_cols"`
	AlienSpacingX      float64 `toml:"alien_spacing_x"`
	AlienSpacingY      float64 `toml:"alien_spacing_y"`
	AlienOffsetX       float64 `toml:"alien_offset_x"`
	AlienOffsetY       float64 `toml:"alien_offset_y"`
	AlienSpeed         float64 `toml:"alien_speed"`
	AlienDescend       float64 `toml:"alien_descend"`
	AlienLaserSpeed    float64 `toml:"alien_laser_speed"`
	AlienShootInterval float64 `toml:"alien_shoot_interval"`

	ExtraSpeed    float64 `toml:"extra_speed"`
	ExtraY        float64 `toml:"extra_y"`
	ExtraSpawnMin float64 `toml:"extra_spawn_min"`
	ExtraSpawnMax float64 `toml:"extra_spawn_max"`

	ObstacleAmount int     `toml:"obstacle_amount"`
	ObstacleY      float64 `toml:"obstacle_y"`
	BlockSize      float64 `toml:"block_size"`

	LaserMargin float64 `toml:"laser_margin"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		ScreenWidth:  ScreenWidth,
		ScreenHeight: ScreenHeight,

		InitialLives:     InitialLives,
		PlayerSpeed:      PlayerSpeed,
		PlayerLaserSpeed: PlayerLaserSpeed,
		LaserCooldown:    LaserCooldown,

		AlienRows:          AlienRows,
		AlienCols:          AlienCols,
		AlienSpacingX:      9,
		AlienSpacingY:      5,
		AlienOffsetX:       10,
		AlienOffsetY:       8,
		AlienSpeed:         AlienSpeed,
		AlienDescend:       AlienDescend,
		AlienLaserSpeed:    AlienLaserSpeed,
		AlienShootInterval: AlienShootInterval,

		ExtraSpeed:    ExtraSpeed,
		ExtraY:        4,
		ExtraSpawnMin: ExtraSpawnMin,
		ExtraSpawnMax: ExtraSpawnMax,

		ObstacleAmount: ObstacleAmount,
		ObstacleY:      ObstacleY,
		BlockSize:      BlockSize,

		LaserMargin: 6,
	}
}

// LoadTuning reads a TOML file on top of the defaults.
// Keys missing from the file keep their default value; unknown keys are an error.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidTuning, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate checks that sizes, counts and speeds are usable.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, name, v))
		}
	}

	positive("screen_width", float64(t.ScreenWidth))
	positive("screen_height", float64(t.ScreenHeight))
	positive("initial_lives", float64(t.InitialLives))
	positive("player_speed", t.PlayerSpeed)
	positive("player_laser_speed", t.PlayerLaserSpeed)
	positive("alien_rows", float64(t.AlienRows))
	positive("alien_cols", float64(t.AlienCols))
	positive("alien_speed", t.AlienSpeed)
	positive("alien_laser_speed", t.AlienLaserSpeed)
	positive("alien_shoot_interval", t.AlienShootInterval)
	positive("extra_speed", t.ExtraSpeed)
	positive("extra_spawn_min", t.ExtraSpawnMin)
	positive("block_size", t.BlockSize)

	if t.LaserCooldown < 0 {
		errs = append(errs, fmt.Errorf("%w: laser_cooldown must not be negative", ErrInvalidTuning))
	}
	if t.AlienDescend < 0 {
		errs = append(errs, fmt.Errorf("%w: alien_descend must not be negative", ErrInvalidTuning))
	}
	if t.ObstacleAmount < 0 {
		errs = append(errs, fmt.Errorf("%w: obstacle_amount must not be negative", ErrInvalidTuning))
	}
	if t.ExtraSpawnMax < t.ExtraSpawnMin {
		errs = append(errs, fmt.Errorf("%w: extra_spawn_max must be >= extra_spawn_min", ErrInvalidTuning))
	}

	return errors.Join(errs...)
}
