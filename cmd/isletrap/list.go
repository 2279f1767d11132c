package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all level packs",
	Long: `Shows the built-in packs and any pack files in ~/.isletrap/levels,
with the name and creature count of every level.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	packs, err := collectPacks(logger)
	if err != nil {
		fail(err)
	}
	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	for _, p := range packs {
		fmt.Printf("%s - %s", p.ID, p.Title())
		if p.Author != "" {
			fmt.Printf(" (by %s)", p.Author)
		}
		fmt.Println()

		for _, l := range p.Levels() {
			name := l.Name
			if name == "" {
				name = "-"
			}
			fmt.Printf("  %3d  %-24s %d@\n", l.Number, name, l.Creatures())
		}
		fmt.Println()
	}

	fmt.Println("Run 'isletrap play <id>' to play a pack.")
}
