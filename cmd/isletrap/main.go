// isletrap is a terminal puzzle game: lure island creatures onto traps.
//
// Usage:
//
//	isletrap list              - List level packs
//	isletrap play [pack]       - Play a pack (default: classic)
//	isletrap menu              - Start on the title screen
//	isletrap scores [pack]     - Show the best runs for a pack
//	isletrap check <file>      - Validate a level file
//	isletrap serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.isletrap/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - easy, normal or hard
//	--debug               - Write a debug log to ~/.isletrap/debug.log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/isletrap/internal/config"
	"github.com/vovakirdan/isletrap/internal/core"
	"github.com/vovakirdan/isletrap/internal/levels"
	"github.com/vovakirdan/isletrap/internal/registry"
	"github.com/vovakirdan/isletrap/internal/storage"

	// Register the built-in pack
	_ "github.com/vovakirdan/isletrap/internal/levels/classic"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "isletrap",
	Short: "Isle Trap - lure creatures onto traps in your terminal",
	Long: `Isle Trap is a grid puzzle played in the terminal.

Every step you take, each creature on the island steps the opposite way.
Walk them onto traps to catch them, without walking into one yourself.

Available commands:
  list     - Show all level packs
  play     - Play a pack directly
  menu     - Title screen with help and scores
  scores   - View the best runs
  check    - Validate a level file
  serve    - Start SSH server for remote play

Examples:
  isletrap play
  isletrap play classic --level 4
  isletrap play --levels ./my-isles.yaml --watch
  isletrap menu --difficulty easy
  isletrap serve --addr :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.isletrap/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to ~/.isletrap/debug.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadConfig loads the config file and applies --difficulty when given.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// newLogger returns a logger writing to the debug log, or a discarding one.
// The returned closer must be called on exit.
func newLogger() (*log.Logger, func()) {
	if !flagDebug {
		return log.New(io.Discard), func() {}
	}

	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create %s: %v\n", dir, err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open debug log: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "isletrap",
	})
	return logger, func() { f.Close() }
}

// openStore opens the scores database. A failure is reported and play
// continues without recorded runs.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// userPacksDir holds extra pack files picked up by menu and serve.
func userPacksDir() string {
	return filepath.Join(config.DataDir(), "levels")
}

// collectPacks returns every registered pack followed by the packs found in
// the user pack directory. Broken user files are logged and skipped.
func collectPacks(logger *log.Logger) ([]*levels.Pack, error) {
	var packs []*levels.Pack
	for _, info := range registry.List() {
		p, err := registry.Create(info.ID)
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}

	dir := userPacksDir()
	if _, err := os.Stat(dir); err != nil {
		return packs, nil
	}
	extra, broken, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		logger.Warn("cannot scan user packs", "dir", dir, "error", err)
		return packs, nil
	}
	for path, perr := range broken {
		logger.Warn("skipping level file", "path", path, "error", perr)
	}
	for _, p := range extra {
		if registry.Exists(p.ID) {
			logger.Warn("user pack shadows a built-in pack, skipping", "id", p.ID)
			continue
		}
		packs = append(packs, p)
	}
	return packs, nil
}
