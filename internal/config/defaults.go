package config

import (
	_ "embed"
)

//go:embed defaults/isletrap.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when even the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Gameplay: GameplayConfig{
			Lives:      2,
			StartLevel: 1,
		},
		Timing: TimingConfig{
			MoveMS: 250,
			FadeMS: 1000,
			HoldMS: 400,
		},
		Render: RenderConfig{
			CellWidth: 2,
			ShowHelp:  true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.3,
		},
	}
}
