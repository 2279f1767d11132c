package engine

import "fmt"

// Source provides parsed level data by number.
// Level numbers run from 1 to MaxLevel inclusive.
type Source interface {
	MaxLevel() int
	Level(n int) (TerrainGrid, ObjectGrid, error)
}

// Store holds the terrain and object layers of the active level together
// with the pristine object snapshot taken at load time.
type Store struct {
	src      Source
	number   int
	terrain  TerrainGrid
	objects  ObjectGrid
	pristine ObjectGrid
}

// NewStore creates a store reading levels from src. No level is loaded yet.
func NewStore(src Source) *Store {
	return &Store{src: src}
}

// Load reads level n from the source and takes a fresh snapshot of it.
// Returns ErrInvalidLevel if n is outside [1, MaxLevel]; the store is left
// unchanged in that case.
func (s *Store) Load(n int) error {
	if n < 1 || n > s.src.MaxLevel() {
		return fmt.Errorf("level %d outside [1, %d]: %w", n, s.src.MaxLevel(), ErrInvalidLevel)
	}
	terrain, objects, err := s.src.Level(n)
	if err != nil {
		return fmt.Errorf("level %d: %w", n, err)
	}
	s.number = n
	s.terrain = terrain
	s.objects = objects
	s.pristine = objects
	return nil
}

// SetSource swaps the level source. The active level stays loaded until the
// next Load.
func (s *Store) SetSource(src Source) {
	s.src = src
}

// MaxLevel returns the highest level number of the source.
func (s *Store) MaxLevel() int {
	return s.src.MaxLevel()
}

// Number returns the loaded level number, or 0 if nothing is loaded.
func (s *Store) Number() int {
	return s.number
}

// Snapshot returns a copy of the current object layer.
func (s *Store) Snapshot() ObjectGrid {
	return s.objects
}

// Restore replaces the object layer with a copy of snap.
// Terrain never changes within a level and is left untouched.
func (s *Store) Restore(snap ObjectGrid) {
	s.objects = snap
}

// Pristine returns the snapshot taken when the level was loaded.
func (s *Store) Pristine() ObjectGrid {
	return s.pristine
}

// Terrain returns a copy of the terrain layer.
func (s *Store) Terrain() TerrainGrid {
	return s.terrain
}

// TerrainAt returns the terrain at c.
func (s *Store) TerrainAt(c Cell) Terrain {
	return s.terrain.At(c)
}

// ObjectAt returns the object at c.
func (s *Store) ObjectAt(c Cell) Object {
	return s.objects.At(c)
}

// setObject writes the object layer. Callers guarantee c is in bounds.
func (s *Store) setObject(c Cell, o Object) {
	s.objects[c.Row][c.Col] = o
}

// Passable reports whether terrain at c can be entered and no tree stands there.
func (s *Store) Passable(c Cell) bool {
	return c.InBounds() && s.terrain.At(c).Traversable() && s.objects.At(c) != Tree
}

// Validate checks the occupancy invariants of a parsed level: exactly one
// player and no entity standing on water.
func Validate(terrain TerrainGrid, objects ObjectGrid) error {
	players := 0
	for r := range Rows {
		for c := range Cols {
			o := objects[r][c]
			if o == Empty {
				continue
			}
			if !terrain[r][c].Traversable() {
				return fmt.Errorf("%s on water at %s: %w", o, At(r, c), ErrMalformedLevel)
			}
			if o == Player {
				players++
			}
		}
	}
	if players != 1 {
		return fmt.Errorf("want exactly one player, found %d: %w", players, ErrMalformedLevel)
	}
	return nil
}
