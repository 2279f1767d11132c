package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a level file",
	Long: `Parse a level pack file (.yaml, .yml or .xml) and check every level:
grid size, terrain and object codes, exactly one player, objects on land.

Exits with status 1 when the file is malformed.

Examples:
  isletrap check ./my-isles.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	path := args[0]

	p, err := levels.LoadFile(path)
	if err != nil {
		if errors.Is(err, engine.ErrMalformedLevel) {
			fmt.Fprintf(os.Stderr, "Malformed level file %s\n", path)
		}
		fail(err)
	}

	fmt.Printf("%s: pack %q (%s), %d levels\n", path, p.ID, p.Title(), p.MaxLevel())
	for _, l := range p.Levels() {
		fmt.Printf("  %3d  %-24s %d@\n", l.Number, l.Name, l.Creatures())
	}
	fmt.Println("OK")
}
