// Package formats provides the level document parsers. Each parser produces
// a Document of raw code rows; building grids from the codes is left to the
// levels package.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document is a parsed level pack before code validation.
type Document struct {
	ID     string
	Name   string
	Author string
	Levels []RawLevel
}

// RawLevel is one level as written in the document: rows of comma
// separated codes, top row first.
type RawLevel struct {
	Number  int
	Name    string
	Map     []string
	Objects []string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".xml"}
}

// Supported reports whether path has a level document extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range FormatExtensions() {
		if ext == e {
			return true
		}
	}
	return false
}

// Parse routes data to the parser for the extension of path.
func Parse(path string, data []byte) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".xml":
		return ParseXML(data)
	default:
		return Document{}, fmt.Errorf("unsupported extension: %s", filepath.Ext(path))
	}
}
