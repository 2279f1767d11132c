package tui

import (
	"fmt"

	"github.com/vovakirdan/isletrap/internal/core"
	"github.com/vovakirdan/isletrap/internal/levels"
)

// TitleItem is an entry of the title menu.
type TitleItem int

const (
	TitleStart TitleItem = iota
	TitleSelectStage
	TitleHelp
	TitleScores
	TitleQuit
)

var titleItems = []TitleItem{TitleStart, TitleSelectStage, TitleHelp, TitleScores, TitleQuit}

func (t TitleItem) String() string {
	switch t {
	case TitleStart:
		return "Start"
	case TitleSelectStage:
		return "Select Stage"
	case TitleHelp:
		return "Help"
	case TitleScores:
		return "Scores"
	case TitleQuit:
		return "Quit"
	default:
		return "?"
	}
}

// TitleChoice is what the player picked on the title screen.
type TitleChoice struct {
	Item  TitleItem
	Pack  int // Index into the pack list
	Level int // Start level, 0 for the configured default
}

// banner is drawn above the menu.
var banner = []string{
	`  ___    _         _____               `,
	` |_ _|__| | ___   |_   _| __ __ _ _ __  `,
	`  | |/ __| |/ _ \   | || '__/ _' | '_ \ `,
	`  | |\__ \ |  __/   | || | | (_| | |_) |`,
	` |___|___/_|\___|   |_||_|  \__,_| .__/ `,
	`                                 |_|    `,
}

// TitleMenu is the title screen: a wrapping menu, a pack picker and a stage
// list.
type TitleMenu struct {
	packs       []*levels.Pack
	pack        int
	cursor      int
	inStages    bool
	stageCursor int
	best        func(packID string) (int, bool)
}

// NewTitleMenu creates a title menu over the given packs. best, if non-nil,
// reports the best score for a pack.
func NewTitleMenu(packs []*levels.Pack, pack int, best func(string) (int, bool)) TitleMenu {
	return TitleMenu{
		packs: packs,
		pack:  core.Clamp(pack, 0, max(len(packs)-1, 0)),
		best:  best,
	}
}

// Pack returns the index of the selected pack.
func (t TitleMenu) Pack() int {
	return t.pack
}

// Cursor returns the highlighted menu item.
func (t TitleMenu) Cursor() TitleItem {
	return titleItems[t.cursor]
}

// InStageSelect reports whether the stage list is open.
func (t TitleMenu) InStageSelect() bool {
	return t.inStages
}

// Handle applies a menu action. It returns a choice when the player selected
// something that leaves the title screen.
func (t TitleMenu) Handle(action MenuAction) (TitleMenu, *TitleChoice) {
	if t.inStages {
		return t.handleStages(action)
	}

	switch action {
	case MenuActionQuit:
		return t, &TitleChoice{Item: TitleQuit}
	case MenuActionUp:
		t.cursor = (t.cursor - 1 + len(titleItems)) % len(titleItems)
	case MenuActionDown:
		t.cursor = (t.cursor + 1) % len(titleItems)
	case MenuActionLeft:
		if len(t.packs) > 0 {
			t.pack = (t.pack - 1 + len(t.packs)) % len(t.packs)
		}
	case MenuActionRight:
		if len(t.packs) > 0 {
			t.pack = (t.pack + 1) % len(t.packs)
		}
	case MenuActionSelect:
		item := titleItems[t.cursor]
		if item == TitleSelectStage {
			t.inStages = true
			t.stageCursor = 0
			return t, nil
		}
		return t, &TitleChoice{Item: item, Pack: t.pack}
	}
	return t, nil
}

func (t TitleMenu) handleStages(action MenuAction) (TitleMenu, *TitleChoice) {
	count := 0
	if len(t.packs) > 0 {
		count = t.packs[t.pack].MaxLevel()
	}

	switch action {
	case MenuActionQuit:
		return t, &TitleChoice{Item: TitleQuit}
	case MenuActionUp:
		if count > 0 {
			t.stageCursor = (t.stageCursor - 1 + count) % count
		}
	case MenuActionDown:
		if count > 0 {
			t.stageCursor = (t.stageCursor + 1) % count
		}
	case MenuActionSelect:
		if count > 0 {
			t.inStages = false
			return t, &TitleChoice{Item: TitleStart, Pack: t.pack, Level: t.stageCursor + 1}
		}
	case MenuActionBack:
		t.inStages = false
	}
	return t, nil
}

// Render draws the title screen.
func (t TitleMenu) Render(dst *core.Screen, tick uint64) {
	dst.Clear()

	top := max((dst.Height()-len(banner)-len(titleItems)-8)/2, 0)
	for i, line := range banner {
		fg := core.ColorSand
		if i >= 4 {
			fg = core.ColorShallow
			if (tick/30)%2 == 1 {
				fg = core.ColorCyan
			}
		}
		dst.DrawTextCentered(top+i, line, fg)
	}
	y := top + len(banner) + 1

	if len(t.packs) > 0 {
		p := t.packs[t.pack]
		label := p.Title()
		if len(t.packs) > 1 {
			label = "< " + label + " >"
		}
		dst.DrawTextCentered(y, label, core.ColorBrightCyan)
		if t.best != nil {
			if score, ok := t.best(p.ID); ok {
				dst.DrawTextCentered(y+1, fmt.Sprintf("best: %d captured", score), core.ColorGray)
			}
		}
	}
	y += 3

	if t.inStages {
		t.renderStages(dst, y)
		return
	}

	for i, item := range titleItems {
		line := "  " + item.String() + "  "
		fg := core.ColorWhite
		if i == t.cursor {
			line = "▶ " + item.String() + "  "
			fg = core.ColorBrightYellow
		}
		dst.DrawTextCentered(y+i, line, fg)
	}

	dst.DrawTextCentered(dst.Height()-1, "↑↓ choose  ←→ pack  enter select  q quit", core.ColorDarkGray)
}

func (t TitleMenu) renderStages(dst *core.Screen, y int) {
	if len(t.packs) == 0 {
		return
	}
	list := t.packs[t.pack].Levels()

	// Keep the cursor visible on short terminals.
	rows := max(dst.Height()-y-2, 1)
	first := core.Clamp(t.stageCursor-rows/2, 0, max(len(list)-rows, 0))

	for i := first; i < len(list) && i-first < rows; i++ {
		l := list[i]
		name := l.Name
		if name == "" {
			name = "Stage"
		}
		line := fmt.Sprintf("  %2d. %-22s %d@ ", l.Number, name, l.Creatures())
		fg := core.ColorWhite
		if i == t.stageCursor {
			line = "▶" + line[1:]
			fg = core.ColorBrightYellow
		}
		dst.DrawTextCentered(y+i-first, line, fg)
	}

	dst.DrawTextCentered(dst.Height()-1, "↑↓ choose  enter play  esc back", core.ColorDarkGray)
}
