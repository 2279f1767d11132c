package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/isletrap/internal/core"
)

// styleKey identifies a foreground/background pair.
type styleKey struct {
	fg, bg core.Color
}

// styleCache holds one lipgloss style per color pair seen so far.
// SSH sessions render concurrently, so it is guarded.
type styleCache struct {
	mu sync.Mutex
	m  map[styleKey]lipgloss.Style
}

func (c *styleCache) get(fg, bg core.Color) lipgloss.Style {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := styleKey{fg, bg}
	if s, ok := c.m[k]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if code := fg.ANSI(); code != "" {
		s = s.Foreground(lipgloss.Color(code))
	}
	if code := bg.ANSI(); code != "" {
		s = s.Background(lipgloss.Color(code))
	}
	c.m[k] = s
	return s
}

var styles = &styleCache{m: make(map[styleKey]lipgloss.Style)}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Color == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start.Color, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
