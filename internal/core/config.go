package core

import "time"

// RuntimeConfig is passed to the game when a run starts.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // Seed for cosmetic randomness (water shimmer)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}
}

// TickDuration returns the simulated time covered by one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the game status reported to the platform after each tick.
type GameState struct {
	Score    int // Creatures captured this run
	Level    int
	Lives    int
	GameOver bool // No lives left
	Won      bool // Final level completed
	Paused   bool
}

// Finished reports whether the run has ended either way.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
