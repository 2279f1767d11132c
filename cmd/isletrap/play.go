package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/isletrap/internal/audio"
	"github.com/vovakirdan/isletrap/internal/config"
	"github.com/vovakirdan/isletrap/internal/levels"
	"github.com/vovakirdan/isletrap/internal/levels/classic"
	"github.com/vovakirdan/isletrap/internal/platform/tui"
	"github.com/vovakirdan/isletrap/internal/registry"
)

var (
	flagLevel      int
	flagLevelsFile string
	flagWatch      bool
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play [pack]",
	Short: "Play a level pack",
	Long: `Start playing a level pack straight away.

Controls:
  Arrows/WASD/HJKL - Move
  P                - Pause
  R                - Restart the stage (or the run, once it is over)
  Esc/B            - Back to the title (while paused or finished)
  Ctrl+S           - Save a screenshot
  ?                - More help
  Q/Ctrl+C         - Quit

Examples:
  isletrap play
  isletrap play classic --level 3
  isletrap play --levels ./isles.yaml --watch
  isletrap play --difficulty hard --sound`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (default from config)")
	playCmd.Flags().StringVar(&flagLevelsFile, "levels", "", "Play a level file instead of a registered pack")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the --levels file when it changes")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound cues")
}

func runPlay(_ *cobra.Command, args []string) {
	if err := play(args); err != nil {
		fail(err)
	}
}

// play starts the game and returns once the program quits.
func play(args []string) error {
	if flagWatch && flagLevelsFile == "" {
		return errors.New("--watch needs --levels")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger()
	defer closeLog()

	pack, err := resolvePack(args)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Config:   cfg,
		Runtime:  runtimeConfig(),
		Packs:    []*levels.Pack{pack},
		Player:   os.Getenv("USER"),
		Logger:   logger,
		Direct:   true,
		Level:    flagLevel,
		ShotsDir: filepath.Join(config.DataDir(), "screenshots"),
	}

	if flagWatch {
		w, err := levels.Watch(flagLevelsFile)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Watcher = w
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

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// resolvePack picks the --levels file, the named pack or the classic pack.
func resolvePack(args []string) (*levels.Pack, error) {
	if flagLevelsFile != "" {
		if len(args) > 0 {
			return nil, errors.New("give either a pack name or --levels, not both")
		}
		return levels.LoadFile(flagLevelsFile)
	}

	id := classic.ID
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown pack %q (run 'isletrap list' to see available packs)", id)
	}
	return registry.Create(id)
}

// startAudio opens the sound device. Without one the game stays silent.
func startAudio(cfg config.Config, logger *log.Logger) *audio.Player {
	p := audio.NewPlayer(cfg.Audio.Volume, logger)
	if err := p.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		return nil
	}
	return p
}
