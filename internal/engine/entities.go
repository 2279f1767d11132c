package engine

import (
	"errors"
	"fmt"
	"slices"
)

var errUnknownEntity = errors.New("unknown entity")

// PlayerEntity is the single player of a level.
type PlayerEntity struct {
	Cell  Cell
	Alive bool
}

// CreatureEntity is a creature in the level arena.
// Its ID is the arena index and stays stable for the life of the level.
type CreatureEntity struct {
	ID       int
	Cell     Cell
	Captured bool // pending removal after landing on a trap
	Removed  bool
}

// TrapEntity is a trap in the level arena. Traps are consumed by captures.
type TrapEntity struct {
	ID      int
	Cell    Cell
	Removed bool
}

// Entities is the registry of everything on the object layer.
// Removed entries keep their slot so ids are never reused.
type Entities struct {
	player    PlayerEntity
	hasPlayer bool
	creatures []CreatureEntity
	traps     []TrapEntity
	trees     []Cell
	remaining int
}

// NewEntities creates an empty registry.
func NewEntities() *Entities {
	return &Entities{}
}

// Populate builds a registry from an object layer, spawning in row-major
// order so creature ids follow reading order.
func Populate(objects ObjectGrid) (*Entities, error) {
	e := NewEntities()
	for r := range Rows {
		for c := range Cols {
			o := objects[r][c]
			if o == Empty {
				continue
			}
			if _, err := e.Spawn(o, At(r, c)); err != nil {
				return nil, err
			}
		}
	}
	if !e.hasPlayer {
		return nil, fmt.Errorf("no player: %w", ErrMalformedLevel)
	}
	return e, nil
}

// Spawn registers a new entity of the given kind at c and returns its id.
// The player always gets id 0.
func (e *Entities) Spawn(kind Object, c Cell) (int, error) {
	if !c.InBounds() {
		return 0, fmt.Errorf("spawn %s at %s: out of bounds", kind, c)
	}
	switch kind {
	case Player:
		if e.hasPlayer {
			return 0, fmt.Errorf("second player at %s: %w", c, ErrMalformedLevel)
		}
		e.player = PlayerEntity{Cell: c, Alive: true}
		e.hasPlayer = true
		return 0, nil
	case Creature:
		id := len(e.creatures)
		e.creatures = append(e.creatures, CreatureEntity{ID: id, Cell: c})
		e.remaining++
		return id, nil
	case Trap:
		id := len(e.traps)
		e.traps = append(e.traps, TrapEntity{ID: id, Cell: c})
		return id, nil
	case Tree:
		e.trees = append(e.trees, c)
		return len(e.trees) - 1, nil
	default:
		return 0, fmt.Errorf("spawn %s at %s: not an entity", kind, c)
	}
}

// RemoveCreature deregisters a creature.
func (e *Entities) RemoveCreature(id int) error {
	if id < 0 || id >= len(e.creatures) || e.creatures[id].Removed {
		return fmt.Errorf("creature %d: %w", id, errUnknownEntity)
	}
	e.creatures[id].Removed = true
	e.creatures[id].Captured = false
	e.remaining--
	return nil
}

// RemoveTrap deregisters a trap. A creature still standing on the trap must
// be removed first.
func (e *Entities) RemoveTrap(id int) error {
	if id < 0 || id >= len(e.traps) || e.traps[id].Removed {
		return fmt.Errorf("trap %d: %w", id, errUnknownEntity)
	}
	if cid, ok := e.CreatureAt(e.traps[id].Cell); ok {
		return fmt.Errorf("trap %d still holds creature %d", id, cid)
	}
	e.traps[id].Removed = true
	return nil
}

// CreaturePosition returns the cell of a live creature.
func (e *Entities) CreaturePosition(id int) (Cell, bool) {
	if id < 0 || id >= len(e.creatures) || e.creatures[id].Removed {
		return Cell{}, false
	}
	return e.creatures[id].Cell, true
}

// TrapPosition returns the cell of a live trap.
func (e *Entities) TrapPosition(id int) (Cell, bool) {
	if id < 0 || id >= len(e.traps) || e.traps[id].Removed {
		return Cell{}, false
	}
	return e.traps[id].Cell, true
}

// Player returns the player entity.
func (e *Entities) Player() PlayerEntity {
	return e.player
}

// CreatureAt returns the id of the live creature at c.
func (e *Entities) CreatureAt(c Cell) (int, bool) {
	for _, cr := range e.creatures {
		if !cr.Removed && cr.Cell == c {
			return cr.ID, true
		}
	}
	return 0, false
}

// TrapAt returns the id of the live trap at c.
func (e *Entities) TrapAt(c Cell) (int, bool) {
	for _, t := range e.traps {
		if !t.Removed && t.Cell == c {
			return t.ID, true
		}
	}
	return 0, false
}

// Creatures returns the live creatures in id order.
func (e *Entities) Creatures() []CreatureEntity {
	out := make([]CreatureEntity, 0, e.remaining)
	for _, cr := range e.creatures {
		if !cr.Removed {
			out = append(out, cr)
		}
	}
	return out
}

// Traps returns the live traps in id order.
func (e *Entities) Traps() []TrapEntity {
	out := make([]TrapEntity, 0, len(e.traps))
	for _, t := range e.traps {
		if !t.Removed {
			out = append(out, t)
		}
	}
	return out
}

// Trees returns the tree cells.
func (e *Entities) Trees() []Cell {
	return slices.Clone(e.trees)
}

// Remaining returns the number of creatures not yet captured.
func (e *Entities) Remaining() int {
	return e.remaining
}

// Clone returns a deep copy of the registry.
func (e *Entities) Clone() *Entities {
	return &Entities{
		player:    e.player,
		hasPlayer: e.hasPlayer,
		creatures: slices.Clone(e.creatures),
		traps:     slices.Clone(e.traps),
		trees:     slices.Clone(e.trees),
		remaining: e.remaining,
	}
}

func (e *Entities) movePlayer(c Cell) {
	e.player.Cell = c
}

func (e *Entities) killPlayer() {
	e.player.Alive = false
}

func (e *Entities) moveCreature(id int, c Cell) {
	e.creatures[id].Cell = c
}

func (e *Entities) markCaptured(id int) {
	e.creatures[id].Captured = true
}
