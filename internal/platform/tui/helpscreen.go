package tui

import (
	"math"

	"github.com/vovakirdan/isletrap/internal/core"
)

var rules = []string{
	"HOW TO PLAY",
	"",
	"You walk the island one cell at a time.",
	"Every creature steps one cell the opposite way.",
	"",
	"Lure creatures onto traps (#) to catch them.",
	"Catch every creature (@) to clear the stage.",
	"",
	"Trees and water block the way.",
	"Stepping on a trap, or meeting a creature, costs a life.",
	"Lose every life and the run is over.",
}

// pulseRamp runs from dim to bright for the return prompt.
var pulseRamp = []core.Color{core.ColorDarkGray, core.ColorGray, core.ColorWhite, core.ColorBrightWhite}

// pulse returns the prompt color for a tick; the brightness follows a sine
// with a two second period at 60 ticks per second.
func pulse(tick uint64) core.Color {
	alpha := 0.5 + 0.5*math.Sin(float64(tick)*2*math.Pi/120)
	i := int(alpha * float64(len(pulseRamp)))
	return pulseRamp[core.Clamp(i, 0, len(pulseRamp)-1)]
}

// renderHelp draws the rules page.
func renderHelp(dst *core.Screen, tick uint64) {
	dst.Clear()

	top := max((dst.Height()-len(rules)-4)/2, 0)
	for i, line := range rules {
		fg := core.ColorWhite
		if i == 0 {
			fg = core.ColorBrightYellow
		}
		dst.DrawTextCentered(top+i, line, fg)
	}
	dst.DrawTextCentered(top+len(rules)+2, "Press Space to return", pulse(tick))
}
