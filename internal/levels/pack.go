// Package levels builds playable level packs from level documents and
// serves them to the engine. This package depends on engine but engine
// does not depend on levels.
package levels

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/levels/formats"
)

// Level is one validated level.
type Level struct {
	Number  int
	Name    string
	Terrain engine.TerrainGrid
	Objects engine.ObjectGrid
}

// Creatures returns how many creatures the level starts with.
func (l *Level) Creatures() int {
	return l.Objects.Count(engine.Creature)
}

// Pack is an ordered set of levels numbered 1..N. It implements
// engine.Source and is immutable once built.
type Pack struct {
	ID       string
	Name     string
	Author   string
	FilePath string // Empty for embedded packs
	levels   []Level
}

var _ engine.Source = (*Pack)(nil)

// MaxLevel returns the number of the last level.
func (p *Pack) MaxLevel() int {
	return len(p.levels)
}

// Level returns the layers of level n.
func (p *Pack) Level(n int) (engine.TerrainGrid, engine.ObjectGrid, error) {
	l, ok := p.Info(n)
	if !ok {
		return engine.TerrainGrid{}, engine.ObjectGrid{}, fmt.Errorf("pack %s: level %d: %w", p.ID, n, engine.ErrInvalidLevel)
	}
	return l.Terrain, l.Objects, nil
}

// Info returns level n.
func (p *Pack) Info(n int) (Level, bool) {
	if n < 1 || n > len(p.levels) {
		return Level{}, false
	}
	return p.levels[n-1], true
}

// Levels returns a copy of all levels in order.
func (p *Pack) Levels() []Level {
	return slices.Clone(p.levels)
}

// Title returns the display name, falling back to the id.
func (p *Pack) Title() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Build validates a parsed document and builds the pack.
// Every problem is reported as engine.ErrMalformedLevel.
func Build(doc formats.Document) (*Pack, error) {
	if len(doc.Levels) == 0 {
		return nil, fmt.Errorf("levels: no levels in pack %q: %w", doc.ID, engine.ErrMalformedLevel)
	}

	raw := slices.Clone(doc.Levels)
	slices.SortStableFunc(raw, func(a, b formats.RawLevel) int {
		return cmp.Compare(a.Number, b.Number)
	})

	p := &Pack{ID: doc.ID, Name: doc.Name, Author: doc.Author, levels: make([]Level, 0, len(raw))}
	for i, rl := range raw {
		if rl.Number != i+1 {
			return nil, fmt.Errorf("levels: level numbers must run 1..%d without gaps, found %d at position %d: %w",
				len(raw), rl.Number, i+1, engine.ErrMalformedLevel)
		}
		lvl, err := buildLevel(rl)
		if err != nil {
			return nil, fmt.Errorf("levels: level %d: %w", rl.Number, err)
		}
		p.levels = append(p.levels, lvl)
	}
	return p, nil
}

func buildLevel(rl formats.RawLevel) (Level, error) {
	terrain, err := ParseRows(rl.Map, engine.ParseTerrain)
	if err != nil {
		return Level{}, fmt.Errorf("map: %w", err)
	}
	objects, err := ParseRows(rl.Objects, engine.ParseObject)
	if err != nil {
		return Level{}, fmt.Errorf("objects: %w", err)
	}
	tg := engine.TerrainGrid(terrain)
	og := engine.ObjectGrid(objects)
	if err := engine.Validate(tg, og); err != nil {
		return Level{}, err
	}
	return Level{Number: rl.Number, Name: rl.Name, Terrain: tg, Objects: og}, nil
}

// ParseRows decodes Rows rows of Cols comma separated codes.
func ParseRows[T any](rows []string, parse func(string) (T, bool)) ([engine.Rows][engine.Cols]T, error) {
	var grid [engine.Rows][engine.Cols]T
	if len(rows) != engine.Rows {
		return grid, fmt.Errorf("want %d rows, got %d: %w", engine.Rows, len(rows), engine.ErrMalformedLevel)
	}
	for r, row := range rows {
		codes := strings.Split(row, ",")
		if len(codes) != engine.Cols {
			return grid, fmt.Errorf("row %d: want %d columns, got %d: %w", r, engine.Cols, len(codes), engine.ErrMalformedLevel)
		}
		for c, code := range codes {
			code = strings.TrimSpace(code)
			v, ok := parse(code)
			if !ok {
				return grid, fmt.Errorf("row %d col %d: unknown code %q: %w", r, c, code, engine.ErrMalformedLevel)
			}
			grid[r][c] = v
		}
	}
	return grid, nil
}

// Document converts the pack back to its raw document form.
func (p *Pack) Document() formats.Document {
	doc := formats.Document{ID: p.ID, Name: p.Name, Author: p.Author}
	for _, l := range p.levels {
		doc.Levels = append(doc.Levels, formats.RawLevel{
			Number:  l.Number,
			Name:    l.Name,
			Map:     formatRows([engine.Rows][engine.Cols]engine.Terrain(l.Terrain), engine.Terrain.Code),
			Objects: formatRows([engine.Rows][engine.Cols]engine.Object(l.Objects), engine.Object.Code),
		})
	}
	return doc
}

func formatRows[T any](grid [engine.Rows][engine.Cols]T, code func(T) string) []string {
	rows := make([]string, engine.Rows)
	codes := make([]string, engine.Cols)
	for r := range engine.Rows {
		for c := range engine.Cols {
			codes[c] = code(grid[r][c])
		}
		rows[r] = strings.Join(codes, ",")
	}
	return rows
}
