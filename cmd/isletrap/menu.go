package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/isletrap/internal/config"
	"github.com/vovakirdan/isletrap/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start on the title screen",
	Long: `Start Isle Trap on the title screen.

Pick a pack with Left/Right, then Start, Select Stage, Help or Scores.
After a run ends you return to the title to play again.

Packs are the built-in ones plus any level files in ~/.isletrap/levels.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change pack
  Enter/Space  - Select
  Q            - Quit

Examples:
  isletrap menu
  isletrap menu --fps 30
  isletrap menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound cues")
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := menu(); err != nil {
		fail(err)
	}
}

// menu starts on the title screen and returns once the program quits.
func menu() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger()
	defer closeLog()

	packs, err := collectPacks(logger)
	if err != nil {
		return err
	}
	if len(packs) == 0 {
		return errors.New("no level packs found")
	}

	opts := tui.Options{
		Config:   cfg,
		Runtime:  runtimeConfig(),
		Packs:    packs,
		Player:   os.Getenv("USER"),
		Logger:   logger,
		ShotsDir: filepath.Join(config.DataDir(), "screenshots"),
	}

	if flagSound || cfg.Audio.Enabled {
		opts.Audio = startAudio(cfg, logger)
		if opts.Audio != nil {
			defer opts.Audio.Close()
		}
	}

	store := openStore()
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	return tui.Run(opts)
}
