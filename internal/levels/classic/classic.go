// Package classic embeds the built-in level pack and registers it.
package classic

import (
	_ "embed"

	"github.com/vovakirdan/isletrap/internal/levels"
	"github.com/vovakirdan/isletrap/internal/registry"
)

// ID is the registry id of the built-in pack.
const ID = "classic"

//go:embed classic.yaml
var classicYAML []byte

var pack = levels.MustParse("classic.yaml", classicYAML)

func init() {
	registry.Register(ID, Pack)
}

// Pack returns the built-in pack.
func Pack() *levels.Pack {
	return pack
}
