package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults %+v differ from Default() %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := "gameplay:\n  lives: 4\ntiming:\n  fade_ms: 200\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 4 {
		t.Errorf("Lives = %d, expected 4", cfg.Gameplay.Lives)
	}
	if cfg.Timing.Fade() != 200*time.Millisecond {
		t.Errorf("Fade() = %v, expected 200ms", cfg.Timing.Fade())
	}
	// Keys absent from the file keep their defaults
	if cfg.Timing.MoveMS != 250 || cfg.Gameplay.StartLevel != 1 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("gameplay: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed custom file accepted")
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Gameplay: GameplayConfig{Lives: -1, StartLevel: 0},
		Timing:   TimingConfig{MoveMS: 0, FadeMS: -5, HoldMS: -1},
		Render:   RenderConfig{CellWidth: 3},
		Audio:    AudioConfig{Volume: 7},
	}
	cfg.Validate()

	if cfg.Gameplay.Lives != 2 || cfg.Gameplay.StartLevel != 1 {
		t.Errorf("gameplay = %+v", cfg.Gameplay)
	}
	if cfg.Timing.MoveMS != 250 || cfg.Timing.FadeMS != 1000 || cfg.Timing.HoldMS != 0 {
		t.Errorf("timing = %+v", cfg.Timing)
	}
	if cfg.Render.CellWidth != 2 {
		t.Errorf("CellWidth = %d", cfg.Render.CellWidth)
	}
	if cfg.Audio.Volume != 1 {
		t.Errorf("Volume = %v", cfg.Audio.Volume)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name  string
		lives int
		fade  int
	}{
		{"easy", 5, 1000},
		{"normal", 2, 1000},
		{"", 2, 1000},
		{"hard", 1, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePreset(tt.name)
			if err != nil {
				t.Fatalf("ParsePreset(%q): %v", tt.name, err)
			}
			cfg := Default()
			ApplyPreset(&cfg, p)
			if cfg.Gameplay.Lives != tt.lives || cfg.Timing.FadeMS != tt.fade {
				t.Errorf("lives=%d fade=%d, expected %d and %d",
					cfg.Gameplay.Lives, cfg.Timing.FadeMS, tt.lives, tt.fade)
			}
		})
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset accepted")
	}
}
