// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import "time"

// Config contains all tunable settings of the game.
type Config struct {
	Gameplay GameplayConfig `yaml:"gameplay"`
	Timing   TimingConfig   `yaml:"timing"`
	Render   RenderConfig   `yaml:"render"`
	Audio    AudioConfig    `yaml:"audio"`
}

// GameplayConfig defines rule parameters.
type GameplayConfig struct {
	Lives      int `yaml:"lives"`       // Lives at the start of a run
	StartLevel int `yaml:"start_level"` // Level a new run starts on
}

// TimingConfig defines presentation timing in milliseconds.
type TimingConfig struct {
	MoveMS int `yaml:"move_ms"` // Time for one cell of movement
	FadeMS int `yaml:"fade_ms"` // Length of each fade leg
	HoldMS int `yaml:"hold_ms"` // Pause on the final frame before game over/won screens
}

// Move returns the per-cell movement time.
func (t TimingConfig) Move() time.Duration {
	return time.Duration(t.MoveMS) * time.Millisecond
}

// Fade returns the length of each fade leg.
func (t TimingConfig) Fade() time.Duration {
	return time.Duration(t.FadeMS) * time.Millisecond
}

// Hold returns the pause before end screens.
func (t TimingConfig) Hold() time.Duration {
	return time.Duration(t.HoldMS) * time.Millisecond
}

// RenderConfig defines board rendering options.
type RenderConfig struct {
	CellWidth int  `yaml:"cell_width"` // Terminal columns per grid cell (1 or 2)
	ShowHelp  bool `yaml:"show_help"`  // Key help line under the board
}

// AudioConfig defines sound cue options.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// Validate fixes out-of-range values in place, falling back to defaults.
func (c *Config) Validate() {
	def := Default()
	if c.Gameplay.Lives <= 0 {
		c.Gameplay.Lives = def.Gameplay.Lives
	}
	if c.Gameplay.StartLevel <= 0 {
		c.Gameplay.StartLevel = def.Gameplay.StartLevel
	}
	if c.Timing.MoveMS <= 0 {
		c.Timing.MoveMS = def.Timing.MoveMS
	}
	if c.Timing.FadeMS < 0 {
		c.Timing.FadeMS = def.Timing.FadeMS
	}
	if c.Timing.HoldMS < 0 {
		c.Timing.HoldMS = 0
	}
	if c.Render.CellWidth != 1 && c.Render.CellWidth != 2 {
		c.Render.CellWidth = def.Render.CellWidth
	}
	if c.Audio.Volume < 0 {
		c.Audio.Volume = 0
	}
	if c.Audio.Volume > 1 {
		c.Audio.Volume = 1
	}
}
