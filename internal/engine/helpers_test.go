package engine

import (
	"fmt"
	"testing"
)

// gridSource is an in-memory Source built from ASCII art rows.
//
//	~ water   . land   T tree   x trap   c creature   P player
type gridSource struct {
	levels [][]string
}

func (s *gridSource) MaxLevel() int { return len(s.levels) }

func (s *gridSource) Level(n int) (TerrainGrid, ObjectGrid, error) {
	if n < 1 || n > len(s.levels) {
		return TerrainGrid{}, ObjectGrid{}, ErrInvalidLevel
	}
	terrain, objects, err := parseArt(s.levels[n-1])
	if err != nil {
		return terrain, objects, err
	}
	return terrain, objects, Validate(terrain, objects)
}

func parseArt(rows []string) (TerrainGrid, ObjectGrid, error) {
	var terrain TerrainGrid
	var objects ObjectGrid
	for r := range Rows {
		for c := range Cols {
			terrain[r][c] = Land
		}
	}
	if len(rows) > Rows {
		return terrain, objects, fmt.Errorf("too many rows: %w", ErrMalformedLevel)
	}
	for r, line := range rows {
		if len(line) > Cols {
			return terrain, objects, fmt.Errorf("row %d too wide: %w", r, ErrMalformedLevel)
		}
		for c, ch := range line {
			switch ch {
			case '~':
				terrain[r][c] = Water
			case '.':
			case 'T':
				objects[r][c] = Tree
			case 'x':
				objects[r][c] = Trap
			case 'c':
				objects[r][c] = Creature
			case 'P':
				objects[r][c] = Player
			default:
				return terrain, objects, fmt.Errorf("bad glyph %q: %w", ch, ErrMalformedLevel)
			}
		}
	}
	return terrain, objects, nil
}

func newSource(levels ...[]string) *gridSource {
	return &gridSource{levels: levels}
}

// newState loads level 1 of art into a fresh LevelState.
func newState(t *testing.T, art []string) *LevelState {
	t.Helper()
	store := NewStore(newSource(art))
	if err := store.Load(1); err != nil {
		t.Fatalf("Load: %v", err)
	}
	st, err := NewLevelState(store)
	if err != nil {
		t.Fatalf("NewLevelState: %v", err)
	}
	return st
}

// newStarted returns a controller with instant fades, started at level 1.
func newStarted(t *testing.T, opts []Option, levels ...[]string) *Controller {
	t.Helper()
	opts = append([]Option{WithFade(0)}, opts...)
	c := NewController(newSource(levels...), opts...)
	if err := c.Start(1); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Events()
	return c
}

// finishTransition advances until the fade sequence returns to idle.
func finishTransition(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; c.fade.Active(); i++ {
		if i > 10 {
			t.Fatalf("transition stuck in %s", c.Transition())
		}
		c.Advance(0)
	}
}
