package levels

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/levels/formats"
)

// blankRows returns Rows rows of Cols copies of code.
func blankRows(code string) []string {
	row := strings.TrimSuffix(strings.Repeat(code+",", engine.Cols), ",")
	rows := make([]string, engine.Rows)
	for i := range rows {
		rows[i] = row
	}
	return rows
}

// rawLevel returns an all-land level with a player at (0,0) and a creature
// at (1,1).
func rawLevel(n int) formats.RawLevel {
	objects := blankRows("0")
	objects[0] = "P" + objects[0][1:]
	objects[1] = "0,C" + objects[1][3:]
	return formats.RawLevel{Number: n, Name: "test", Map: blankRows("1"), Objects: objects}
}

func TestBuild(t *testing.T) {
	p, err := Build(formats.Document{ID: "t", Levels: []formats.RawLevel{rawLevel(2), rawLevel(1)}})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if p.MaxLevel() != 2 {
		t.Errorf("MaxLevel() = %d, want 2", p.MaxLevel())
	}
	terrain, objects, err := p.Level(1)
	if err != nil {
		t.Fatalf("Level(1): %v", err)
	}
	if terrain[5][5] != engine.Land {
		t.Errorf("terrain = %v", terrain[5][5])
	}
	if objects[0][0] != engine.Player || objects[1][1] != engine.Creature {
		t.Errorf("objects not placed: %v %v", objects[0][0], objects[1][1])
	}
	if _, _, err := p.Level(3); !errors.Is(err, engine.ErrInvalidLevel) {
		t.Errorf("Level(3) = %v, want ErrInvalidLevel", err)
	}
	if p.Title() != "t" {
		t.Errorf("Title() = %q", p.Title())
	}
}

func TestBuildMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*formats.Document)
	}{
		{"no levels", func(d *formats.Document) { d.Levels = nil }},
		{"gap in numbers", func(d *formats.Document) { d.Levels[1].Number = 3 }},
		{"duplicate number", func(d *formats.Document) { d.Levels[1].Number = 1 }},
		{"starts at zero", func(d *formats.Document) { d.Levels[0].Number = 0; d.Levels[1].Number = 1 }},
		{"short map", func(d *formats.Document) { d.Levels[0].Map = d.Levels[0].Map[:11] }},
		{"wide row", func(d *formats.Document) { d.Levels[0].Map[3] += ",1" }},
		{"unknown terrain", func(d *formats.Document) { d.Levels[0].Map[3] = "X" + d.Levels[0].Map[3][1:] }},
		{"unknown object", func(d *formats.Document) { d.Levels[0].Objects[3] = "Z" + d.Levels[0].Objects[3][1:] }},
		{"no player", func(d *formats.Document) { d.Levels[0].Objects[0] = blankRows("0")[0] }},
		{"two players", func(d *formats.Document) { d.Levels[0].Objects[5] = "P" + d.Levels[0].Objects[5][1:] }},
		{"creature on water", func(d *formats.Document) { d.Levels[0].Map[1] = "1,0" + d.Levels[0].Map[1][3:] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := formats.Document{ID: "t", Levels: []formats.RawLevel{rawLevel(1), rawLevel(2)}}
			tt.mutate(&doc)
			if _, err := Build(doc); !errors.Is(err, engine.ErrMalformedLevel) {
				t.Errorf("Build() = %v, want ErrMalformedLevel", err)
			}
		})
	}
}

func TestParseRowsTrimsSpaces(t *testing.T) {
	rows := blankRows("1")
	rows[0] = " 0, 1,2 ,3,4,5,6,7,8,9,A,B,C,1,1,0"
	grid, err := ParseRows(rows, engine.ParseTerrain)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if grid[0][0] != engine.Water || grid[0][2] != engine.LandBottom || grid[0][12] != engine.LandTopBottomRight {
		t.Errorf("row 0 = %v", grid[0])
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	p, err := Build(formats.Document{ID: "t", Name: "Test", Levels: []formats.RawLevel{rawLevel(1)}})
	if err != nil {
		t.Fatal(err)
	}
	again, err := Build(p.Document())
	if err != nil {
		t.Fatalf("rebuilding from Document(): %v", err)
	}
	a, _ := p.Info(1)
	b, _ := again.Info(1)
	if a != b {
		t.Error("Document() round trip changed the level")
	}
}
