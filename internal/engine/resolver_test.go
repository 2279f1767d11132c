package engine

import (
	"reflect"
	"testing"
)

func TestResolveIllegalMoveChangesNothing(t *testing.T) {
	tests := []struct {
		name string
		art  []string
		dir  Dir
	}{
		{"grid edge", []string{"P.......c......."}, DirLeft},
		{"top edge", []string{"P.......c......."}, DirUp},
		{"tree", []string{"PT......c......."}, DirRight},
		{"water", []string{"P", "~", "", "........c"}, DirDown},
		{"no direction", []string{"P.......c......."}, DirNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newState(t, tt.art)
			objects := st.Store.Snapshot()
			ents := st.Entities.Clone()

			out := Resolve(st, tt.dir)
			if out.Moved {
				t.Fatal("illegal move committed")
			}
			if len(out.CreatureMoves) != 0 || len(out.Captures) != 0 {
				t.Errorf("illegal move produced changes: %+v", out)
			}
			if st.Store.Snapshot() != objects {
				t.Error("object layer changed")
			}
			if !reflect.DeepEqual(st.Entities, ents) {
				t.Error("registry changed")
			}
		})
	}
}

func TestResolveCreaturesCounterMove(t *testing.T) {
	st := newState(t, []string{
		"................",
		"....P...........",
		"................",
		"..........c.....",
		"..c.............",
	})

	out := Resolve(st, DirUp)
	if !out.Moved || out.PlayerTo != At(0, 4) {
		t.Fatalf("player move: %+v", out)
	}

	want := map[int]Cell{0: At(4, 10), 1: At(5, 2)}
	for id, c := range want {
		if got, _ := st.Entities.CreaturePosition(id); got != c {
			t.Errorf("creature %d at %s, want %s", id, got, c)
		}
		if st.Store.ObjectAt(c) != Creature {
			t.Errorf("grid at %s = %s, want Creature", c, st.Store.ObjectAt(c))
		}
	}
	if st.Store.ObjectAt(At(3, 10)) != Empty || st.Store.ObjectAt(At(1, 4)) != Empty {
		t.Error("vacated cells not cleared")
	}
	if len(out.CreatureMoves) != 2 {
		t.Errorf("got %d creature moves, want 2", len(out.CreatureMoves))
	}
}

func TestResolveCreatureBlocked(t *testing.T) {
	st := newState(t, []string{
		"P...............",
		"................",
		".......Tc.......",
		"...............c",
	})

	// Player moves right, creatures move left: one into a tree, one free.
	out := Resolve(st, DirRight)
	if !out.Moved {
		t.Fatal("move not committed")
	}
	if c, _ := st.Entities.CreaturePosition(0); c != At(2, 8) {
		t.Errorf("blocked creature moved to %s", c)
	}
	if c, _ := st.Entities.CreaturePosition(1); c != At(3, 14) {
		t.Errorf("free creature at %s, want (3,14)", c)
	}
	if len(out.CreatureMoves) != 1 || out.CreatureMoves[0].ID != 1 {
		t.Errorf("creature moves = %+v", out.CreatureMoves)
	}
}

func TestResolveCreatureLineMovesTogether(t *testing.T) {
	st := newState(t, []string{
		"................",
		"................",
		"................",
		".....ccc........",
		"................",
		"........P.......",
	})

	Resolve(st, DirLeft)
	for id, want := range []Cell{At(3, 6), At(3, 7), At(3, 8)} {
		if got, _ := st.Entities.CreaturePosition(id); got != want {
			t.Errorf("creature %d at %s, want %s", id, got, want)
		}
	}
	if st.Store.ObjectAt(At(3, 5)) != Empty {
		t.Error("tail cell not cleared")
	}
}

func TestResolveCreatureLineBlockedByWater(t *testing.T) {
	st := newState(t, []string{
		"................",
		"................",
		"................",
		".....ccc~.......",
		"................",
		"........P.......",
	})
	before := st.Store.Snapshot()

	out := Resolve(st, DirLeft)
	if len(out.CreatureMoves) != 0 {
		t.Errorf("blocked line moved: %+v", out.CreatureMoves)
	}
	for r := range Rows {
		for c := range 8 {
			if r == 5 {
				continue
			}
			if st.Store.ObjectAt(At(r, c)) != before[r][c] {
				t.Errorf("cell (%d,%d) changed", r, c)
			}
		}
	}
}

func TestResolveOrderIndependent(t *testing.T) {
	// Creature ids run against the push direction, so resolving in id order
	// would block the trailing creatures.
	st := newState(t, []string{
		"................",
		"..........c.....",
		"..........c.....",
		"..........c.....",
		"................",
		"................",
		"...P............",
	})
	out := Resolve(st, DirUp)
	if len(out.CreatureMoves) != 3 {
		t.Fatalf("got %d creature moves, want 3", len(out.CreatureMoves))
	}
	for id, want := range []Cell{At(2, 10), At(3, 10), At(4, 10)} {
		if got, _ := st.Entities.CreaturePosition(id); got != want {
			t.Errorf("creature %d at %s, want %s", id, got, want)
		}
	}
	if st.Store.ObjectAt(At(1, 10)) != Empty {
		t.Error("tail cell not cleared")
	}
}

func TestResolveCapture(t *testing.T) {
	st := newState(t, []string{
		"P...............",
		"........xc......",
		"......xc........",
		"..............c.",
	})

	out := Resolve(st, DirRight)
	if len(out.Captures) != 2 {
		t.Fatalf("got %d captures, want 2", len(out.Captures))
	}
	for _, c := range []Cell{At(1, 8), At(2, 6)} {
		if st.Store.ObjectAt(c) != Empty {
			t.Errorf("capture cell %s = %s, want Empty", c, st.Store.ObjectAt(c))
		}
		if _, ok := st.Entities.TrapAt(c); ok {
			t.Errorf("trap at %s not consumed", c)
		}
	}
	if st.Entities.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", st.Entities.Remaining())
	}
	if out.Cleared {
		t.Error("Cleared with a creature left")
	}
}

func TestResolveClearsLevel(t *testing.T) {
	st := newState(t, []string{
		"................",
		"..P.............",
		"................",
		"................",
		"................",
		".........xc.....",
	})
	out := Resolve(st, DirRight)
	if !out.Cleared || st.Entities.Remaining() != 0 {
		t.Errorf("Cleared = %v, Remaining = %d", out.Cleared, st.Entities.Remaining())
	}
	if out.PlayerDied {
		t.Error("player died")
	}
}

func TestResolveDeaths(t *testing.T) {
	tests := []struct {
		name string
		art  []string
		dir  Dir
	}{
		{"onto trap", []string{"Px", "", "", "..........c"}, DirRight},
		{"creature walks in", []string{".P.c"}, DirRight},
		{"swap with creature", []string{".Pc"}, DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newState(t, tt.art)
			out := Resolve(st, tt.dir)
			if !out.Moved {
				t.Fatal("move not committed")
			}
			if !out.PlayerDied {
				t.Fatal("player survived")
			}
			if st.Entities.Player().Alive {
				t.Error("registry player still alive")
			}
			if len(out.Captures) != 0 {
				t.Error("captures resolved on a fatal tick")
			}
			if again := Resolve(st, DirLeft); again.Moved {
				t.Error("dead player moved")
			}
		})
	}
}

func TestResolveDeathBeatsCapture(t *testing.T) {
	// The creature reaches a trap on the same tick the player steps on one.
	st := newState(t, []string{
		".Px.........",
		"......xc....",
	})
	out := Resolve(st, DirRight)
	if !out.PlayerDied {
		t.Fatal("player survived trap")
	}
	if len(out.Captures) != 0 {
		t.Errorf("captures = %+v, want none", out.Captures)
	}
	if st.Entities.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", st.Entities.Remaining())
	}
}

func TestResolveGridMatchesRegistry(t *testing.T) {
	st := newState(t, []string{
		"...c....x.......",
		"..T....c........",
		".c.....P...x..c.",
		"........~~......",
		"....c.......x...",
	})
	for _, d := range []Dir{DirRight, DirDown, DirDown, DirLeft, DirRight, DirUp, DirUp} {
		out := Resolve(st, d)
		if out.PlayerDied {
			return
		}
		assertConsistent(t, st)
	}
}

func assertConsistent(t *testing.T, st *LevelState) {
	t.Helper()
	grid := st.Store.Snapshot()
	if n := grid.Count(Creature); n != st.Entities.Remaining() {
		t.Errorf("grid has %d creatures, registry %d", n, st.Entities.Remaining())
	}
	for _, cr := range st.Entities.Creatures() {
		if grid.At(cr.Cell) != Creature {
			t.Errorf("creature %d at %s but grid shows %s", cr.ID, cr.Cell, grid.At(cr.Cell))
		}
	}
	for _, tr := range st.Entities.Traps() {
		if grid.At(tr.Cell) != Trap {
			t.Errorf("trap %d at %s but grid shows %s", tr.ID, tr.Cell, grid.At(tr.Cell))
		}
	}
	if p := st.Entities.Player(); grid.At(p.Cell) != Player {
		t.Errorf("player at %s but grid shows %s", p.Cell, grid.At(p.Cell))
	}
}
