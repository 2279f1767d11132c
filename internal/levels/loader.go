package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/isletrap/internal/levels/formats"
)

// Parse builds a pack from document bytes. The extension of path selects
// the format.
func Parse(path string, data []byte) (*Pack, error) {
	doc, err := formats.Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Build(doc)
}

// MustParse is like Parse but panics on error. It is meant for embedded packs.
func MustParse(path string, data []byte) *Pack {
	p, err := Parse(path, data)
	if err != nil {
		panic(err)
	}
	return p
}

// LoadFile loads a single level pack file.
func LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", path, err)
	}
	p, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	p.FilePath = path
	return p, nil
}

// Loader loads every pack file under a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files, sorted by ID.
// Invalid files are skipped and reported in the second return value.
func (l *Loader) LoadAll() ([]*Pack, map[string]error, error) {
	var packs []*Pack
	skipped := make(map[string]error)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.Supported(path) {
			return nil
		}
		p, err := LoadFile(path)
		if err != nil {
			skipped[path] = err
			return nil
		}
		packs = append(packs, p)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].ID < packs[j].ID
	})
	return packs, skipped, nil
}

// WriteFile writes the pack to path, in the format given by its extension.
func WriteFile(p *Pack, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = formats.MarshalYAML(p.Document())
	case ".xml":
		data, err = formats.MarshalXML(p.Document())
	default:
		return fmt.Errorf("levels: unsupported extension: %s", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("levels: encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("levels: writing %s: %w", path, err)
	}
	return nil
}
