package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/isletrap/internal/storage"
)

const (
	minWidthForSidebar = 90  // Narrower terminals get a pack header instead
	sidebarWidth       = 22
	maxRuns            = 100 // Runs loaded per pack
)

// ScoreboardPack is a pack listed on the scoreboard.
type ScoreboardPack struct {
	ID    string
	Title string
}

// scoreColumn is one table column. Columns with a higher drop value are
// removed first when the table does not fit.
type scoreColumn struct {
	title string
	width int
	drop  int
	cell  func(rank int, r storage.Run) string
}

var scoreColumns = []scoreColumn{
	{"Rank", 5, 0, func(rank int, _ storage.Run) string { return "#" + strconv.Itoa(rank) }},
	{"Caught", 7, 0, func(_ int, r storage.Run) string { return strconv.Itoa(r.Captures) }},
	{"Stage", 6, 0, func(_ int, r storage.Run) string { return strconv.Itoa(r.Level) }},
	{"Result", 8, 1, func(_ int, r storage.Run) string { return runResult(r) }},
	{"Time", 7, 2, func(_ int, r storage.Run) string { return formatDuration(r.Duration) }},
	{"Player", 10, 4, func(_ int, r storage.Run) string { return runPlayer(r) }},
	{"Date", 13, 3, func(_ int, r storage.Run) string { return r.CreatedAt.Format("Jan 02 15:04") }},
}

// fitColumns returns the columns that fit in width, keeping table order.
func fitColumns(width int) []scoreColumn {
	cols := append([]scoreColumn(nil), scoreColumns...)
	for level := 4; level > 0; level-- {
		total := 0
		for _, c := range cols {
			total += c.width + 2
		}
		if total <= width {
			break
		}
		kept := cols[:0]
		for _, c := range cols {
			if c.drop != level {
				kept = append(kept, c)
			}
		}
		cols = kept
	}
	return cols
}

func runResult(r storage.Run) string {
	if r.Won {
		return "cleared"
	}
	return "lost"
}

func runPlayer(r storage.Run) string {
	if r.Player == "" {
		return "local"
	}
	return r.Player
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

type scoreKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultScoreKeys = scoreKeys{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next pack")),
	Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev pack")),
	Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	scoreTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	scoreDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scoreHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scorePanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	scoreEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// ScoreboardModel is the Bubble Tea model for the best runs screen.
// Standalone scoreboards quit the program on back; embedded ones only
// report it through IsGoingBack.
type ScoreboardModel struct {
	packs  []ScoreboardPack
	cursor int
	store  *storage.Store

	runs  []storage.Run
	stats map[string]*storage.PackStats
	cols  []scoreColumn
	table table.Model
	help  help.Model
	keys  scoreKeys

	width, height int

	standalone bool
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard showing the pack with id first.
// A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, packs []ScoreboardPack, first string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		packs:  packs,
		store:  store,
		help:   help.New(),
		keys:   defaultScoreKeys,
		width:  width,
		height: height,
	}
	for i, p := range packs {
		if p.ID == first {
			m.cursor = i
		}
	}
	if store != nil {
		if stats, err := store.AllStats(); err == nil {
			m.stats = stats
		}
	}
	m.layout()
	m.load()
	return m
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// layout rebuilds the table for the current size.
func (m *ScoreboardModel) layout() {
	avail := m.width - 6
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	m.cols = fitColumns(avail)

	columns := make([]table.Column, len(m.cols))
	for i, c := range m.cols {
		columns[i] = table.Column{Title: c.title, Width: c.width}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)),
		table.WithStyles(styles),
	)
	m.help.Width = m.width
	m.fillRows()
}

// load reads the selected pack's runs.
func (m *ScoreboardModel) load() {
	m.runs = nil
	if m.store != nil && len(m.packs) > 0 {
		if runs, err := m.store.TopRuns(m.packs[m.cursor].ID, maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.fillRows()
	m.table.GotoTop()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := make(table.Row, len(m.cols))
		for j, c := range m.cols {
			row[j] = c.cell(i+1, r)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
}

func (m *ScoreboardModel) cycle(delta int) {
	if len(m.packs) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.packs)) % len(m.packs)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.packs) > 0 {
		title += " - " + m.packs[m.cursor].Title
	}

	var b strings.Builder
	b.WriteString(scoreTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(scoreDimStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	board := scorePanelStyle.Render(m.tableView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", board))
	} else {
		if len(m.packs) > 1 {
			b.WriteString(centerText("< "+m.packs[m.cursor].Title+" >", m.width))
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, board))
	}

	b.WriteString("\n")
	b.WriteString(scoreDimStyle.Render(m.selectedDetail()))
	b.WriteString("\n")
	b.WriteString(scoreHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary is the stats line of the selected pack.
func (m ScoreboardModel) summary() string {
	if len(m.packs) == 0 {
		return ""
	}
	s := m.stats[m.packs[m.cursor].ID]
	if s == nil || s.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  %d cleared  %d caught in total  furthest stage %d",
		s.Runs, s.Wins, s.TotalCaptures, s.BestLevel)
}

// sidebar lists the packs with their best capture count.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Packs\n")
	b.WriteString(strings.Repeat("─", sidebarWidth-4))
	for i, p := range m.packs {
		name := p.Title
		if n := sidebarWidth - 10; len(name) > n {
			name = name[:n-1] + "."
		}
		best := "-"
		if s := m.stats[p.ID]; s != nil && s.Runs > 0 {
			best = strconv.Itoa(s.BestCaptures)
		}
		line := fmt.Sprintf("  %-*s %3s", sidebarWidth-10, name, best)
		if i == m.cursor {
			line = scoreActiveStyle.Render("▶" + line[1:])
		}
		b.WriteString("\n" + line)
	}
	return scorePanelStyle.Width(sidebarWidth).Render(b.String())
}

func (m ScoreboardModel) tableView() string {
	if len(m.runs) == 0 {
		return scoreEmptyStyle.Render("No runs recorded yet.\nCatch a creature to get on the board!")
	}
	return m.table.View()
}

// selectedDetail describes the highlighted run in full, since narrow
// tables drop columns.
func (m ScoreboardModel) selectedDetail() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	return fmt.Sprintf(" %s %s: %d caught, stage %d, %s, %s",
		runPlayer(r), runResult(r), r.Captures, r.Level,
		formatDuration(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
}

// IsGoingBack reports whether the player left the scoreboard.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(store *storage.Store, packs []ScoreboardPack, first string, width, height int) error {
	model := NewScoreboardModel(store, packs, first, width, height)
	model.standalone = true

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// centerText centers text within width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
