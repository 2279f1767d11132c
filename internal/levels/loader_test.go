package levels

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/isletrap/internal/engine"
)

// testdataPath returns path to testdata.
func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func TestLoadXML(t *testing.T) {
	p, err := LoadFile(testdataPath("tiny.xml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if p.ID != "tiny" || p.Name != "Tiny" {
		t.Errorf("ID=%q Name=%q", p.ID, p.Name)
	}
	if p.MaxLevel() != 2 {
		t.Fatalf("MaxLevel() = %d, want 2", p.MaxLevel())
	}
	l, _ := p.Info(1)
	if l.Name != "First Steps" {
		t.Errorf("level 1 name = %q", l.Name)
	}
	if l.Objects[4][4] != engine.Player {
		t.Errorf("player not at (4,4): %v", l.Objects[4][4])
	}
	if l.Terrain[0][0] != engine.Water || l.Terrain[2][2] != engine.LandUpLeft {
		t.Errorf("terrain corners: %v %v", l.Terrain[0][0], l.Terrain[2][2])
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	src, err := LoadFile(testdataPath("tiny.xml"))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"tiny.yaml", "tiny.xml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteFile(src, path); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if got.ID != src.ID || got.MaxLevel() != src.MaxLevel() {
				t.Errorf("got %s with %d levels", got.ID, got.MaxLevel())
			}
			for n := 1; n <= src.MaxLevel(); n++ {
				a, _ := src.Info(n)
				b, _ := got.Info(n)
				if a != b {
					t.Errorf("level %d differs after round trip", n)
				}
			}
		})
	}

	if err := WriteFile(src, filepath.Join(t.TempDir(), "tiny.json")); err == nil {
		t.Error("unsupported extension accepted")
	}
}

func TestParseDefaultsIDToFileName(t *testing.T) {
	src, err := LoadFile(testdataPath("tiny.xml"))
	if err != nil {
		t.Fatal(err)
	}
	src.ID = ""
	path := filepath.Join(t.TempDir(), "islands.yaml")
	if err := WriteFile(src, path); err != nil {
		t.Fatal(err)
	}
	p, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "islands" {
		t.Errorf("ID = %q, want islands", p.ID)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	doc := "id: bad\nlevels:\n  - number: 1\n    map: [\"0,0\"]\n    objects: [\"P,0\"]\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, engine.ErrMalformedLevel) {
		t.Errorf("LoadFile() = %v, want ErrMalformedLevel", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	src, err := LoadFile(testdataPath("tiny.xml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.yaml", "a.xml"} {
		cp := *src
		cp.ID = ""
		if err := WriteFile(&cp, filepath.Join(dir, name)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("levels: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	packs, skipped, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(packs) != 2 || packs[0].ID != "a" || packs[1].ID != "b" {
		ids := make([]string, len(packs))
		for i, p := range packs {
			ids[i] = p.ID
		}
		t.Errorf("packs = %v, want [a b]", ids)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want broken.yml only", skipped)
	}
}
