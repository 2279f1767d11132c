package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// LivesForPreset returns the starting lives of a preset.
func LivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 1
	default:
		return 2
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Hard also shortens the fades, leaving less time to plan the next move.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Gameplay.Lives = LivesForPreset(preset)
	if preset == DifficultyHard && cfg.Timing.FadeMS > 500 {
		cfg.Timing.FadeMS = 500
	}
}
