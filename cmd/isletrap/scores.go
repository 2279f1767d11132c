package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/isletrap/internal/levels/classic"
	"github.com/vovakirdan/isletrap/internal/platform/tui"
	"github.com/vovakirdan/isletrap/internal/registry"
	"github.com/vovakirdan/isletrap/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show the best runs for a pack",
	Long: `Display the best runs recorded for a pack (default: classic).
Runs rank by creatures captured, then stage reached, then time.

Examples:
  isletrap scores
  isletrap scores classic --limit 25
  isletrap scores my-isles --clear
  isletrap scores --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the pack")
	scoresCmd.Flags().BoolVarP(&flagScoresTUI, "browse", "b", false, "Browse every pack in an interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) {
	packID := classic.ID
	if len(args) > 0 {
		packID = args[0]
	}

	// Unregistered ids are fine: runs of --levels files are stored too.
	title := packID
	if registry.Exists(packID) {
		if p, err := registry.Create(packID); err == nil {
			title = p.Title()
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(fmt.Errorf("opening scores database: %w", err))
	}
	defer store.Close()

	if flagScoresTUI {
		err = browseScores(store, packID)
	} else {
		err = printScores(store, packID, title)
	}
	if err != nil {
		store.Close()
		fail(err)
	}
}

func printScores(store *storage.Store, packID, title string) error {
	if flagScoresClear {
		if err := store.ClearRuns(packID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s\n", title)
		return nil
	}

	runs, err := store.TopRuns(packID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'isletrap play %s' to set the first one!\n", packID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-6s  %-10s  %s\n", "Rank", "Caught", "Stage", "Result", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-6s  %-10s  %s\n", "----", "------", "-----", "------", "----", "------", "----")
	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-5d  %-6s  %-6s  %-10s  %s\n",
			i+1, r.Captures, r.Level, result, clock(r.Duration), player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(packID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Best: %d captured  Total: %d captured\n",
		stats.Runs, stats.Wins, stats.BestCaptures, stats.TotalCaptures)
	return nil
}

// clock formats a run duration as m:ss.
func clock(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// browseScores opens the interactive scoreboard over every known pack.
func browseScores(store *storage.Store, first string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	packs, err := collectPacks(logger)
	if err != nil {
		return err
	}
	list := make([]tui.ScoreboardPack, 0, len(packs))
	for _, p := range packs {
		list = append(list, tui.ScoreboardPack{ID: p.ID, Title: p.Title()})
	}

	rt := runtimeConfig()
	return tui.RunScoreboard(store, list, first, rt.ScreenW, rt.ScreenH)
}
