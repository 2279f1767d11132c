package registry

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/levels"
)

// testPack builds a one-level pack of open land.
func testPack(t *testing.T) *levels.Pack {
	t.Helper()
	land := strings.TrimSuffix(strings.Repeat("1,", engine.Cols), ",")
	empty := strings.TrimSuffix(strings.Repeat("0,", engine.Cols), ",")

	var sb strings.Builder
	sb.WriteString("id: reg-test\nname: Registry Test\nlevels:\n  - number: 1\n    map:\n")
	for range engine.Rows {
		fmt.Fprintf(&sb, "      - %q\n", land)
	}
	sb.WriteString("    objects:\n")
	for r := range engine.Rows {
		row := empty
		switch r {
		case 0:
			row = "P" + strings.Repeat(",0", engine.Cols-1)
		case 4:
			row = "0,0,0,B" + strings.Repeat(",0", engine.Cols-4)
		case 8:
			row = strings.Repeat("0,", engine.Cols-1) + "C"
		}
		fmt.Fprintf(&sb, "      - %q\n", row)
	}

	p, err := levels.Parse("reg-test.yaml", []byte(sb.String()))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return p
}

func TestRegisterAndCreate(t *testing.T) {
	pack := testPack(t)
	Register("reg-test", func() *levels.Pack { return pack })
	defer unregister("reg-test")

	if !Exists("reg-test") {
		t.Fatal("Exists() = false after Register")
	}

	got, err := Create("reg-test")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if got != pack {
		t.Error("Create() returned a different pack")
	}

	var found bool
	for _, info := range List() {
		if info.ID == "reg-test" {
			found = true
			if info.Title != "Registry Test" || info.Levels != 1 {
				t.Errorf("info = %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() is missing the registered pack")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-pack"); err == nil {
		t.Error("Expected an error for an unknown pack")
	}
	if Exists("no-such-pack") {
		t.Error("Exists() = true for an unknown pack")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	pack := testPack(t)
	Register("reg-dup", func() *levels.Pack { return pack })
	defer unregister("reg-dup")

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic on duplicate registration")
		}
	}()
	Register("reg-dup", func() *levels.Pack { return pack })
}
