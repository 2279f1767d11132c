package classic_test

import (
	"testing"

	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/levels/classic"
	"github.com/vovakirdan/isletrap/internal/registry"
)

// Known solutions, one letter per move.
var solutions = map[int]string{
	1:  "RRR",
	2:  "DDUUUUU",
	3:  "DDDDLUUUU",
	4:  "ULUUU",
	5:  "ULUURUU",
	6:  "LLLDDUUUUUURURR",
	7:  "LLLLDDUUUUUULLL",
	8:  "RRRDDRUUUUUULLDDDLL",
	9:  "RRRRUUUUDDDLLLLLUU",
	10: "LLULUUURDDDRRRDDLLUUDD",
}

var letters = map[rune]engine.Dir{
	'L': engine.DirLeft,
	'R': engine.DirRight,
	'U': engine.DirUp,
	'D': engine.DirDown,
}

func TestClassicRegistered(t *testing.T) {
	if !registry.Exists(classic.ID) {
		t.Fatal("classic pack not registered")
	}
	p, err := registry.Create(classic.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.MaxLevel() != 10 {
		t.Errorf("MaxLevel() = %d, want 10", p.MaxLevel())
	}
	for _, l := range p.Levels() {
		if l.Name == "" {
			t.Errorf("level %d has no name", l.Number)
		}
		if l.Creatures() == 0 {
			t.Errorf("level %d has no creatures", l.Number)
		}
	}
}

func TestClassicSolutions(t *testing.T) {
	p := classic.Pack()
	for n := 1; n <= p.MaxLevel(); n++ {
		moves, ok := solutions[n]
		if !ok {
			t.Errorf("no solution recorded for level %d", n)
			continue
		}
		c := engine.NewController(p, engine.WithFade(0))
		if err := c.Start(n); err != nil {
			t.Fatalf("Start(%d): %v", n, err)
		}
		for i, m := range moves {
			if !c.Move(letters[m]) {
				t.Fatalf("level %d move %d (%c) rejected in phase %s", n, i, m, c.Phase())
			}
			if i < len(moves)-1 && c.Phase() != engine.PhasePlaying {
				t.Fatalf("level %d move %d (%c): phase %s", n, i, m, c.Phase())
			}
			c.Settle()
		}
		if c.Remaining() != 0 {
			t.Errorf("level %d: %d creatures left", n, c.Remaining())
		}
		want := engine.PhaseAdvancing
		if n == p.MaxLevel() {
			want = engine.PhaseGameWon
		}
		if c.Phase() != want {
			t.Errorf("level %d: phase %s, want %s", n, c.Phase(), want)
		}
	}
}

func TestClassicFullRun(t *testing.T) {
	p := classic.Pack()
	c := engine.NewController(p, engine.WithFade(0))
	if err := c.Start(1); err != nil {
		t.Fatal(err)
	}

	total := 0
	for n := 1; n <= p.MaxLevel(); n++ {
		if c.Level() != n {
			t.Fatalf("on level %d, want %d", c.Level(), n)
		}
		total += c.Remaining()
		for _, m := range solutions[n] {
			c.Move(letters[m])
			c.Settle()
		}
		for i := 0; c.Phase() == engine.PhaseAdvancing && i < 10; i++ {
			c.Advance(0)
		}
	}
	if !c.IsWon() {
		t.Fatalf("phase %s after final level", c.Phase())
	}
	if c.Captures() != total {
		t.Errorf("Captures() = %d, want %d", c.Captures(), total)
	}
	if c.Lives() != engine.DefaultLives {
		t.Errorf("Lives() = %d, want %d", c.Lives(), engine.DefaultLives)
	}
}
