package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLPack represents the YAML structure for a level pack file.
type YAMLPack struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Author string      `yaml:"author,omitempty"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel is one level entry.
type YAMLLevel struct {
	Number  int      `yaml:"number"`
	Name    string   `yaml:"name,omitempty"`
	Map     []string `yaml:"map"`
	Objects []string `yaml:"objects"`
}

// ParseYAML parses a YAML level pack.
func ParseYAML(data []byte) (Document, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Document{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	doc := Document{
		ID:     yp.ID,
		Name:   yp.Name,
		Author: yp.Author,
		Levels: make([]RawLevel, 0, len(yp.Levels)),
	}
	for _, l := range yp.Levels {
		doc.Levels = append(doc.Levels, RawLevel(l))
	}
	return doc, nil
}

// MarshalYAML writes doc in the YAML pack format.
func MarshalYAML(doc Document) ([]byte, error) {
	yp := YAMLPack{
		ID:     doc.ID,
		Name:   doc.Name,
		Author: doc.Author,
		Levels: make([]YAMLLevel, 0, len(doc.Levels)),
	}
	for _, l := range doc.Levels {
		yp.Levels = append(yp.Levels, YAMLLevel(l))
	}
	out, err := yaml.Marshal(yp)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}
