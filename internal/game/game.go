// Package game adapts the Isle Trap engine to the platform's fixed-tick
// loop. It owns the move animation, the fade overlay and the HUD, and
// forwards engine events to listeners such as the sound cues.
package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isletrap/internal/config"
	"github.com/vovakirdan/isletrap/internal/core"
	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/levels"
)

// Options tunes a Game. Zero values fall back to the config defaults.
type Options struct {
	Lives      int
	StartLevel int
	Move       time.Duration // Time to slide one cell
	Fade       time.Duration // Length of each fade leg
	Hold       time.Duration // Final frame pause before reporting the end
	CellWidth  int           // Terminal columns per grid cell
	Logger     *log.Logger
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Lives:      cfg.Gameplay.Lives,
		StartLevel: cfg.Gameplay.StartLevel,
		Move:       cfg.Timing.Move(),
		Fade:       cfg.Timing.Fade(),
		Hold:       cfg.Timing.Hold(),
		CellWidth:  cfg.Render.CellWidth,
	}
}

func (o *Options) normalize() {
	def := OptionsFromConfig(config.Default())
	if o.Lives <= 0 {
		o.Lives = def.Lives
	}
	if o.StartLevel <= 0 {
		o.StartLevel = def.StartLevel
	}
	if o.Move < 0 {
		o.Move = 0
	}
	if o.Fade < 0 {
		o.Fade = 0
	}
	if o.Hold < 0 {
		o.Hold = 0
	}
	if o.CellWidth != 1 && o.CellWidth != 2 {
		o.CellWidth = def.CellWidth
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Listener receives every engine event after the game has applied it.
type Listener func(engine.Event)

// Game is one Isle Trap run over a level pack.
type Game struct {
	pack *levels.Pack
	opts Options
	ctrl *engine.Controller

	listeners []Listener

	tick    uint64
	dt      time.Duration
	seed    int64
	screenW int
	screenH int

	motion motion
	view   engine.ObjectGrid // object layer as it was before the animated move
	facing engine.Dir

	elapsed  time.Duration // Time spent in the run, pauses excluded
	holdLeft time.Duration
	paused   bool
	tooSmall bool
	startErr error
}

// New creates a game over the given pack. Call Reset before stepping.
func New(pack *levels.Pack, opts Options) *Game {
	opts.normalize()
	return &Game{
		pack: pack,
		opts: opts,
	}
}

// ID returns the pack identifier, used as the score key.
func (g *Game) ID() string {
	return g.pack.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.pack.Title()
}

// OnEvent registers a listener for engine events.
func (g *Game) OnEvent(l Listener) {
	g.listeners = append(g.listeners, l)
}

// Reset starts a new run with full lives on the configured start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ctrl = engine.NewController(g.pack,
		engine.WithLives(g.opts.Lives),
		engine.WithFade(g.opts.Fade),
		engine.WithLogger(g.opts.Logger),
	)
	g.tick = 0
	g.dt = cfg.TickDuration()
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.motion.clear()
	g.facing = engine.DirDown
	g.elapsed = 0
	g.holdLeft = 0
	g.paused = false
	g.startErr = g.ctrl.Start(g.opts.StartLevel)
	if g.startErr != nil {
		g.opts.Logger.Error("cannot start run", "pack", g.pack.ID, "error", g.startErr)
	}
	g.drainEvents()
	g.checkScreenSize()
}

// Resize updates the screen dimensions without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// minSize returns the board plus its border and the HUD line.
func (g *Game) minSize() (w, h int) {
	return engine.Cols*g.opts.CellWidth + 2, engine.Rows + 3
}

// Err returns the error that prevented the run from starting, if any.
func (g *Game) Err() error {
	return g.startErr
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	dt := g.dt
	if g.ctrl == nil || g.startErr != nil {
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.ctrl.Phase().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.ctrl.Phase().Terminal() {
		if g.motion.advance(dt) {
			g.ctrl.Settle()
		} else if !g.motion.active && g.holdLeft > 0 {
			g.holdLeft -= dt
		}
		return core.StepResult{State: g.State()}
	}

	g.elapsed += dt

	if g.motion.advance(dt) {
		g.ctrl.Settle()
	}
	g.ctrl.Advance(dt)

	if in.Has(core.ActionRestart) && !g.ctrl.Locked() {
		g.RestartLevel()
	} else if !g.ctrl.Locked() {
		before := g.ctrl.Objects()
		if g.ctrl.MoveFirst(func(d engine.Dir) bool { return in.Has(actionFor(d)) }) {
			g.view = before
		}
	}

	g.drainEvents()
	return core.StepResult{State: g.State()}
}

// actionFor maps a move direction to the platform action that requests it.
func actionFor(d engine.Dir) core.Action {
	switch d {
	case engine.DirLeft:
		return core.ActionLeft
	case engine.DirRight:
		return core.ActionRight
	case engine.DirUp:
		return core.ActionUp
	case engine.DirDown:
		return core.ActionDown
	}
	return core.ActionNone
}

// drainEvents applies engine events to the presentation and forwards them.
func (g *Game) drainEvents() {
	var sprites []sprite
	for _, e := range g.ctrl.Events() {
		switch ev := e.(type) {
		case engine.PlayerMoved:
			g.facing = ev.Dir
			sprites = append(sprites, sprite{kind: engine.Player, id: -1, from: ev.From, to: ev.To})
		case engine.CreatureMoved:
			sprites = append(sprites, sprite{kind: engine.Creature, id: ev.ID, from: ev.From, to: ev.To})
		case engine.LevelLoaded:
			g.motion.clear()
			sprites = nil
			g.facing = engine.DirDown
		case engine.GameOver, engine.GameWon:
			g.holdLeft = g.opts.Hold
		}
		for _, l := range g.listeners {
			l(e)
		}
	}
	if len(sprites) == 0 {
		return
	}
	for _, s := range sprites {
		g.view[s.from.Row][s.from.Col] = engine.Empty
	}
	g.motion.start(sprites, g.opts.Move)
}

// RestartLevel rebuilds the current level behind a fade without costing a
// life. It does nothing while a move or transition is in progress.
func (g *Game) RestartLevel() {
	if g.ctrl == nil {
		return
	}
	g.ctrl.ReplaceSource(g.pack)
}

// Reload swaps in a new version of the pack, typically after the level
// file changed on disk. The current level is rebuilt from it.
func (g *Game) Reload(p *levels.Pack) {
	g.pack = p
	if g.ctrl != nil {
		g.ctrl.ReplaceSource(p)
	}
}

// State returns the current game state. The end of a run is reported only
// after the final frame has been held.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{}
	}
	held := g.holdLeft <= 0
	return core.GameState{
		Score:    g.ctrl.Captures(),
		Level:    g.ctrl.Level(),
		Lives:    g.ctrl.Lives(),
		GameOver: g.ctrl.IsGameOver() && held,
		Won:      g.ctrl.IsWon() && held,
		Paused:   g.paused || g.tooSmall,
	}
}

// Elapsed returns the play time of the run, pauses excluded.
func (g *Game) Elapsed() time.Duration {
	return g.elapsed
}

// Controller exposes the engine controller for inspection.
func (g *Game) Controller() *engine.Controller {
	return g.ctrl
}

// Snapshot is a comparable summary of the run, used to check determinism.
type Snapshot struct {
	Tick     uint64
	Phase    engine.Phase
	Level    int
	Lives    int
	Captures int
	Facing   engine.Dir
	Objects  engine.ObjectGrid
}

// Snapshot captures the current run state.
func (g *Game) Snapshot() Snapshot {
	if g.ctrl == nil {
		return Snapshot{Tick: g.tick}
	}
	return Snapshot{
		Tick:     g.tick,
		Phase:    g.ctrl.Phase(),
		Level:    g.ctrl.Level(),
		Lives:    g.ctrl.Lives(),
		Captures: g.ctrl.Captures(),
		Facing:   g.facing,
		Objects:  g.ctrl.Objects(),
	}
}
