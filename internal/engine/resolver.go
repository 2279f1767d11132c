package engine

import (
	"cmp"
	"slices"
)

// LevelState is the mutable state of the active level: the data store and
// the entity registry. Every mutation keeps the two in agreement.
type LevelState struct {
	Store    *Store
	Entities *Entities
}

// NewLevelState builds the registry from the store's current object layer.
func NewLevelState(store *Store) (*LevelState, error) {
	ents, err := Populate(store.Snapshot())
	if err != nil {
		return nil, err
	}
	return &LevelState{Store: store, Entities: ents}, nil
}

// CreatureMove records one committed creature counter-move.
type CreatureMove struct {
	ID   int
	From Cell
	To   Cell
}

// Capture records a creature taken by a trap.
type Capture struct {
	CreatureID int
	TrapID     int
	Cell       Cell
}

// Outcome describes everything one resolved tick changed.
// A zero Outcome (Moved == false) means the move was illegal and nothing changed.
type Outcome struct {
	Dir           Dir
	Moved         bool
	PlayerFrom    Cell
	PlayerTo      Cell
	CreatureMoves []CreatureMove
	Captures      []Capture
	PlayerDied    bool
	Cleared       bool
}

// Resolve applies one player move in direction d and every creature's
// counter-move, then settles death, capture and the win condition.
func Resolve(st *LevelState, d Dir) Outcome {
	out := Outcome{Dir: d}
	player := st.Entities.Player()
	if !player.Alive || d == DirNone {
		return out
	}

	from := player.Cell
	to := from.Step(d)
	if !st.Store.Passable(to) {
		return out
	}

	st.Store.setObject(from, Empty)
	st.Store.setObject(to, Player)
	st.Entities.movePlayer(to)
	out.Moved = true
	out.PlayerFrom = from
	out.PlayerTo = to

	out.CreatureMoves = moveCreatures(st, d.Opposite())

	if playerCaught(st, out) {
		st.Entities.killPlayer()
		out.PlayerDied = true
		return out
	}

	out.Captures = captureCreatures(st)
	out.Cleared = st.Entities.Remaining() == 0
	return out
}

// moveCreatures shifts every creature one cell in direction back.
// Creatures are resolved leading edge first against the live grid, so a
// line of creatures moves together and the result does not depend on ids.
func moveCreatures(st *LevelState, back Dir) []CreatureMove {
	dr, dc := back.Delta()
	order := st.Entities.Creatures()
	slices.SortStableFunc(order, func(a, b CreatureEntity) int {
		return cmp.Compare(dr*b.Cell.Row+dc*b.Cell.Col, dr*a.Cell.Row+dc*a.Cell.Col)
	})

	var moves []CreatureMove
	for _, cr := range order {
		to := cr.Cell.Step(back)
		if !st.Store.Passable(to) {
			continue
		}
		if _, taken := st.Entities.CreatureAt(to); taken {
			continue
		}

		// A creature the player just stepped onto is shown as the player.
		if st.Store.ObjectAt(cr.Cell) == Creature {
			st.Store.setObject(cr.Cell, Empty)
		}
		// On a lethal collision the cell keeps the player marker; the level
		// resets before the next tick.
		if st.Store.ObjectAt(to) != Player {
			st.Store.setObject(to, Creature)
		}
		st.Entities.moveCreature(cr.ID, to)
		moves = append(moves, CreatureMove{ID: cr.ID, From: cr.Cell, To: to})
	}
	return moves
}

// playerCaught reports whether the player ends the tick on a trap, on a
// creature, or swapped cells with a creature.
func playerCaught(st *LevelState, out Outcome) bool {
	at := st.Entities.Player().Cell
	if _, ok := st.Entities.TrapAt(at); ok {
		return true
	}
	if _, ok := st.Entities.CreatureAt(at); ok {
		return true
	}
	for _, m := range out.CreatureMoves {
		if m.From == out.PlayerTo && m.To == out.PlayerFrom {
			return true
		}
	}
	return false
}

// captureCreatures marks creatures standing on live traps, removes them, and
// only then consumes their traps.
func captureCreatures(st *LevelState) []Capture {
	var caps []Capture
	for _, cr := range st.Entities.Creatures() {
		if tid, ok := st.Entities.TrapAt(cr.Cell); ok {
			st.Entities.markCaptured(cr.ID)
			caps = append(caps, Capture{CreatureID: cr.ID, TrapID: tid, Cell: cr.Cell})
		}
	}
	for _, c := range caps {
		// Both ids were just read from the registry.
		if err := st.Entities.RemoveCreature(c.CreatureID); err != nil {
			panic(err)
		}
		st.Store.setObject(c.Cell, Trap)
	}
	for _, c := range caps {
		if err := st.Entities.RemoveTrap(c.TrapID); err != nil {
			panic(err)
		}
		st.Store.setObject(c.Cell, Empty)
	}
	return caps
}
