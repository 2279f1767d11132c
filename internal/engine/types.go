// Package engine implements the Isle Trap rules: the level data store, the
// entity registry, turn resolution and the level lifecycle.
// It is UI-agnostic and deterministic; presentation consumes its events.
package engine

import "fmt"

// Grid dimensions shared by every level.
const (
	Rows = 12
	Cols = 16
)

// Cell is a grid position. Row 0 is the top row, Col 0 the leftmost column.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Dir) Cell {
	dr, dc := d.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// InBounds reports whether the cell lies inside the grid.
func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Dir is one of the four cardinal directions.
type Dir uint8

const (
	DirNone Dir = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// InputPriority is the order in which simultaneous direction inputs are
// checked. The first one present wins.
var InputPriority = [...]Dir{DirLeft, DirRight, DirUp, DirDown}

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "None"
	}
}

// Delta returns the (row, col) offset of one step in this direction.
func (d Dir) Delta() (dr, dc int) {
	switch d {
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// Terrain is the static map layer. Only Water blocks movement.
type Terrain uint8

const (
	Water Terrain = iota
	Land
	LandBottom
	LandTop
	LandLeft
	LandRight
	LandUpLeft
	LandUpRight
	LandBottomLeft
	LandBottomRight
	LandTopBottom
	LandTopBottomLeft
	LandTopBottomRight
)

// terrainCodes maps level-document codes to terrain kinds.
var terrainCodes = map[string]Terrain{
	"0": Water,
	"1": Land,
	"2": LandBottom,
	"3": LandTop,
	"4": LandLeft,
	"5": LandRight,
	"6": LandUpLeft,
	"7": LandUpRight,
	"8": LandBottomLeft,
	"9": LandBottomRight,
	"A": LandTopBottom,
	"B": LandTopBottomLeft,
	"C": LandTopBottomRight,
}

// ParseTerrain converts a level-document code into a Terrain.
func ParseTerrain(code string) (Terrain, bool) {
	t, ok := terrainCodes[code]
	return t, ok
}

// Code returns the level-document code for the terrain.
func (t Terrain) Code() string {
	for code, v := range terrainCodes {
		if v == t {
			return code
		}
	}
	return "?"
}

// Traversable reports whether entities may occupy this terrain.
func (t Terrain) Traversable() bool {
	return t != Water && t <= LandTopBottomRight
}

// Object is the occupancy layer. One object per cell at rest.
type Object uint8

const (
	Empty Object = iota
	Tree
	Trap
	Creature
	Player
)

// ParseObject converts a level-document code into an Object.
func ParseObject(code string) (Object, bool) {
	switch code {
	case "0":
		return Empty, true
	case "A":
		return Tree, true
	case "B":
		return Trap, true
	case "C":
		return Creature, true
	case "P":
		return Player, true
	}
	return Empty, false
}

// Code returns the level-document code for the object.
func (o Object) Code() string {
	switch o {
	case Tree:
		return "A"
	case Trap:
		return "B"
	case Creature:
		return "C"
	case Player:
		return "P"
	default:
		return "0"
	}
}

// String returns the object name.
func (o Object) String() string {
	switch o {
	case Empty:
		return "Empty"
	case Tree:
		return "Tree"
	case Trap:
		return "Trap"
	case Creature:
		return "Creature"
	case Player:
		return "Player"
	default:
		return "Unknown"
	}
}

// TerrainGrid is the static map layer of a level.
type TerrainGrid [Rows][Cols]Terrain

// At returns the terrain at c. Out-of-bounds cells read as Water.
func (g *TerrainGrid) At(c Cell) Terrain {
	if !c.InBounds() {
		return Water
	}
	return g[c.Row][c.Col]
}

// ObjectGrid is the mutable occupancy layer. Being an array, assignment
// copies it, which is what snapshots rely on.
type ObjectGrid [Rows][Cols]Object

// At returns the object at c. Out-of-bounds cells read as Empty.
func (g *ObjectGrid) At(c Cell) Object {
	if !c.InBounds() {
		return Empty
	}
	return g[c.Row][c.Col]
}

// Count returns how many cells hold the given object.
func (g *ObjectGrid) Count(o Object) int {
	n := 0
	for r := range Rows {
		for c := range Cols {
			if g[r][c] == o {
				n++
			}
		}
	}
	return n
}
