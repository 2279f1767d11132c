package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isletrap/internal/audio"
	"github.com/vovakirdan/isletrap/internal/config"
	"github.com/vovakirdan/isletrap/internal/core"
	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/game"
	"github.com/vovakirdan/isletrap/internal/levels"
	"github.com/vovakirdan/isletrap/internal/storage"
)

// menuFade is the length of each leg of a screen change fade.
const menuFade = 250 * time.Millisecond

// statusTicks is how long a status message stays on the help line.
const statusTicks = 180

// Mode is the screen the app is showing.
type Mode int

const (
	ModeTitle Mode = iota
	ModeHelp
	ModeGame
	ModeScores
)

// Options configures an AppModel.
type Options struct {
	Store    *storage.Store // Optional; runs are not recorded without it
	Config   config.Config  // Gameplay, timing and render settings
	Runtime  core.RuntimeConfig
	Packs    []*levels.Pack  // Selectable packs, at least one
	Pack     int             // Index of the initially selected pack
	Player   string          // Recorded with runs; empty for local play
	Watcher  *levels.Watcher // Optional level file watcher
	Audio    *audio.Player   // Optional sound cues
	Logger   *log.Logger     // Optional
	Direct   bool            // Skip the title and start playing
	Level    int             // Start level for Direct, 0 for the configured one
	ShotsDir string          // Screenshot directory; empty disables ctrl+s
}

// ReloadMsg carries a level file reload from the watcher.
type ReloadMsg levels.Reload

// watcherClosedMsg reports that the watcher's channel was closed.
type watcherClosedMsg struct{}

// AppModel is the top-level Bubble Tea model: title, help, game and score
// screens. One AppModel serves one local terminal or one SSH session.
type AppModel struct {
	opts   Options
	screen *core.Screen // Title and help
	board  *core.Screen // Game area above the help line
	cfg    core.RuntimeConfig
	keys   *KeyMapper
	log    *log.Logger

	mode Mode
	next Mode
	fade *engine.Transition
	tick uint64

	title    TitleMenu
	scores   ScoreboardModel
	game     *game.Game
	input    core.InputFrame
	state    core.GameState
	runSaved bool

	gameKeys GameKeyMap
	help     help.Model

	status      string
	statusUntil uint64
	quitting    bool
}

// NewAppModel creates the app model.
func NewAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	opts.Packs = slices.Clone(opts.Packs)

	h := help.New()
	h.Width = cfg.ScreenW

	m := AppModel{
		opts:     opts,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		cfg:      cfg,
		keys:     NewKeyMapper(),
		log:      opts.Logger,
		fade:     engine.NewTransition(menuFade),
		input:    core.NewInputFrame(),
		gameKeys: DefaultGameKeyMap(),
		help:     h,
	}
	w, bh := m.gameArea()
	m.board = core.NewScreen(w, bh)
	m.title = NewTitleMenu(m.opts.Packs, opts.Pack, m.bestScore)

	if opts.Direct {
		m.startGame(opts.Pack, opts.Level)
		m.fade = engine.NewTransition(menuFade)
		m.mode = ModeGame
	}
	return m
}

// bestScore reports the best capture count recorded for a pack.
func (m AppModel) bestScore(packID string) (int, bool) {
	if m.opts.Store == nil {
		return 0, false
	}
	run, ok, err := m.opts.Store.BestRun(packID)
	if err != nil || !ok {
		return 0, false
	}
	return run.Captures, true
}

// Init starts the tick loop and, when configured, the level watcher.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.cfg.TickRate)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForReload(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// waitForReload blocks on the watcher until the level file changes.
func waitForReload(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-w.Reloads
		if !ok {
			return watcherClosedMsg{}
		}
		return ReloadMsg(r)
	}
}

// Update handles messages and updates the model state.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		return m.handleReload(levels.Reload(msg))

	case watcherClosedMsg:
		return m, nil
	}

	if m.mode == ModeScores {
		var cmd tea.Cmd
		m.scores, cmd = m.updateScores(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input for the current screen.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	// Screens stay put while a screen change fades.
	if m.fade.Active() {
		return m, nil
	}

	switch m.mode {
	case ModeTitle:
		return m.handleTitleKey(msg)
	case ModeHelp:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionSelect, MenuActionBack:
			m.switchTo(ModeTitle)
		}
		return m, nil
	case ModeScores:
		var cmd tea.Cmd
		m.scores, cmd = m.updateScores(msg)
		if m.scores.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if m.scores.IsGoingBack() {
			m.mode = ModeTitle
		}
		return m, cmd
	}
	return m.handleGameKey(msg)
}

func (m AppModel) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var choice *TitleChoice
	m.title, choice = m.title.Handle(m.keys.MapKeyToMenuAction(msg))
	if choice == nil {
		return m, nil
	}

	switch choice.Item {
	case TitleQuit:
		m.quitting = true
		return m, tea.Quit
	case TitleHelp:
		m.switchTo(ModeHelp)
	case TitleScores:
		m.openScores(choice.Pack)
	case TitleStart:
		m.startGame(choice.Pack, choice.Level)
	}
	return m, nil
}

func (m AppModel) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionBack:
		if m.state.Paused || m.state.Finished() {
			m.endGame()
			m.switchTo(ModeTitle)
		}
		return m, nil
	case core.ActionRestart, core.ActionConfirm:
		if m.state.Finished() {
			m.restartGame()
			return m, nil
		}
	}

	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events without restarting the run.
func (m AppModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.cfg.ScreenW = msg.Width
	m.cfg.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	w, h := m.gameArea()
	m.board.Resize(w, h)
	m.help.Width = msg.Width
	if m.game != nil {
		m.game.Resize(w, h)
	}
	if m.mode == ModeScores {
		m.scores, _ = m.updateScores(msg)
	}
	return m, nil
}

// handleTick advances the fade, the pulse clock and the running game.
func (m AppModel) handleTick() (tea.Model, tea.Cmd) {
	m.tick++

	if m.fade.Active() {
		m.fade.Advance(m.cfg.TickDuration())
		if m.fade.State() != engine.TransitionFadingOut {
			m.mode = m.next
		}
	}

	if m.mode == ModeGame && m.game != nil {
		result := m.game.Step(m.input)
		m.state = result.State
		m.saveRun()
	}
	m.input.Clear()

	return m, tickCmd(m.cfg.TickRate)
}

// handleReload applies a reloaded level file to the pack list and the
// running game.
func (m AppModel) handleReload(r levels.Reload) (tea.Model, tea.Cmd) {
	next := waitForReload(m.opts.Watcher)
	if r.Err != nil {
		m.log.Warn("level reload failed", "error", r.Err)
		m.setStatus("reload failed: " + r.Err.Error())
		return m, next
	}

	for i, p := range m.opts.Packs {
		if p.ID == r.Pack.ID || p.FilePath == r.Pack.FilePath {
			m.opts.Packs[i] = r.Pack
		}
	}
	if m.game != nil && m.game.ID() == r.Pack.ID {
		m.game.Reload(r.Pack)
	}
	m.log.Info("levels reloaded", "pack", r.Pack.ID, "levels", r.Pack.MaxLevel())
	m.setStatus(fmt.Sprintf("reloaded %s", r.Pack.Title()))
	return m, next
}

// switchTo changes screen behind a short fade.
func (m *AppModel) switchTo(mode Mode) {
	m.next = mode
	if !m.fade.Start(nil) {
		m.mode = mode
	}
}

// gameArea is the screen area left for the game above the help line.
func (m AppModel) gameArea() (w, h int) {
	if m.opts.Config.Render.ShowHelp {
		return m.cfg.ScreenW, max(m.cfg.ScreenH-1, 0)
	}
	return m.cfg.ScreenW, m.cfg.ScreenH
}

// startGame begins a new run on a pack.
func (m *AppModel) startGame(pack, level int) {
	if len(m.opts.Packs) == 0 {
		return
	}
	pack = core.Clamp(pack, 0, len(m.opts.Packs)-1)

	opts := game.OptionsFromConfig(m.opts.Config)
	opts.Logger = m.log
	if level > 0 {
		opts.StartLevel = level
	}

	g := game.New(m.opts.Packs[pack], opts)
	if m.opts.Audio != nil {
		g.OnEvent(m.opts.Audio.Handle)
	}
	m.game = g
	m.restartGame()
	m.log.Info("run started", "pack", g.ID(), "level", opts.StartLevel, "player", m.opts.Player)
	m.switchTo(ModeGame)
}

// restartGame resets the current game for a fresh run.
func (m *AppModel) restartGame() {
	cfg := m.cfg
	cfg.ScreenW, cfg.ScreenH = m.gameArea()
	cfg.Seed = time.Now().UnixNano()
	m.game.Reset(cfg)
	m.state = m.game.State()
	m.runSaved = false
	m.input.Clear()
}

// endGame records the run, finished or not, before leaving it. The game
// stays on screen while the fade to the title runs.
func (m *AppModel) endGame() {
	m.saveRunNow()
}

// saveRun records a finished run once.
func (m *AppModel) saveRun() {
	if m.state.Finished() {
		m.saveRunNow()
	}
}

func (m *AppModel) saveRunNow() {
	if m.runSaved || m.game == nil || m.state.Score == 0 {
		return
	}
	m.runSaved = true
	if m.opts.Store == nil {
		return
	}
	run := storage.Run{
		PackID:   m.game.ID(),
		Player:   m.opts.Player,
		Captures: m.state.Score,
		Level:    m.state.Level,
		Won:      m.state.Won,
		Duration: m.game.Elapsed(),
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.log.Error("cannot save run", "error", err)
		return
	}
	m.log.Info("run saved", "pack", run.PackID, "captures", run.Captures, "level", run.Level, "won", run.Won)
}

// openScores shows the scoreboard starting at the given pack.
func (m *AppModel) openScores(pack int) {
	packs := make([]ScoreboardPack, 0, len(m.opts.Packs))
	first := ""
	for i, p := range m.opts.Packs {
		packs = append(packs, ScoreboardPack{ID: p.ID, Title: p.Title()})
		if i == pack {
			first = p.ID
		}
	}
	m.scores = NewScoreboardModel(m.opts.Store, packs, first, m.cfg.ScreenW, m.cfg.ScreenH)
	m.mode = ModeScores
}

func (m AppModel) updateScores(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	updated, cmd := m.scores.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		return sb, cmd
	}
	return m.scores, cmd
}

func (m *AppModel) setStatus(s string) {
	m.status = s
	m.statusUntil = m.tick + statusTicks
}

// saveScreenshot writes the current screen as plain text.
func (m *AppModel) saveScreenshot() {
	if m.opts.ShotsDir == "" {
		return
	}
	dst := m.draw()

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ShotsDir, 0o755)

	name := "title"
	if m.game != nil {
		name = m.game.ID()
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ShotsDir, fmt.Sprintf("%s_%s.txt", name, timestamp))

	if err := os.WriteFile(path, []byte(dst.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "error", err)
		m.setStatus("screenshot failed")
		return
	}
	m.setStatus("saved " + path)
}

// draw renders the current screen into its buffer and returns it.
func (m AppModel) draw() *core.Screen {
	dst := m.screen
	switch m.mode {
	case ModeTitle:
		m.title.Render(dst, m.tick)
	case ModeHelp:
		renderHelp(dst, m.tick)
	case ModeGame:
		dst = m.board
		if m.game != nil {
			m.game.Render(dst)
		} else {
			dst.Clear()
		}
	case ModeScores:
		dst.Clear()
	}
	dst.Darken(dst.Bounds(), m.fade.Opacity())
	return dst
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeScores && !m.fade.Active() {
		return m.scores.View()
	}

	out := RenderScreen(m.draw())
	if m.mode != ModeGame || !m.opts.Config.Render.ShowHelp {
		return out
	}

	line := m.help.View(m.gameKeys)
	if m.status != "" && m.tick < m.statusUntil {
		line = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Render(m.status)
	}
	return out + "\n" + line
}

// Mode returns the screen currently shown.
func (m AppModel) Mode() Mode {
	return m.mode
}

// Game returns the running game, or nil outside a run.
func (m AppModel) Game() *game.Game {
	return m.game
}

// Run starts a Bubble Tea program on the local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
