package game

import (
	"time"

	"github.com/vovakirdan/isletrap/internal/core"
	"github.com/vovakirdan/isletrap/internal/engine"
)

// sprite is an entity sliding between two cells during a move.
type sprite struct {
	kind engine.Object
	id   int // creature id, -1 for the player
	from engine.Cell
	to   engine.Cell
}

// motion animates one committed move. All sprites of a move travel together
// and arrive together.
type motion struct {
	sprites  []sprite
	elapsed  time.Duration
	duration time.Duration
	active   bool
}

func (m *motion) start(sprites []sprite, d time.Duration) {
	m.sprites = sprites
	m.elapsed = 0
	m.duration = d
	m.active = true
}

// advance moves the animation forward by dt and reports arrival.
// Arrival is reported once per started move.
func (m *motion) advance(dt time.Duration) bool {
	if !m.active {
		return false
	}
	m.elapsed += dt
	if m.elapsed < m.duration {
		return false
	}
	m.active = false
	m.sprites = nil
	return true
}

func (m *motion) clear() {
	m.active = false
	m.sprites = nil
	m.elapsed = 0
}

// progress returns the eased travel fraction, 0.0 to 1.0.
func (m *motion) progress() float64 {
	if !m.active || m.duration <= 0 {
		return 1
	}
	t := core.ClampF(float64(m.elapsed)/float64(m.duration), 0, 1)
	return easeOutQuad(t)
}

// position returns the sprite's fractional row and column.
func (s sprite) position(p float64) (row, col float64) {
	row = core.Lerp(float64(s.from.Row), float64(s.to.Row), p)
	col = core.Lerp(float64(s.from.Col), float64(s.to.Col), p)
	return row, col
}

func easeOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
