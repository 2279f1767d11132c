package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the lifecycle state of a game.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhasePlayerDead
	PhaseResetting
	PhaseLevelComplete
	PhaseAdvancing
	PhaseGameOver
	PhaseGameWon
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePlayerDead:
		return "player_dead"
	case PhaseResetting:
		return "resetting"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseAdvancing:
		return "advancing"
	case PhaseGameOver:
		return "game_over"
	case PhaseGameWon:
		return "game_won"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further input will be accepted.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseGameWon
}

// Defaults used when no option overrides them.
const (
	DefaultLives = 2
	DefaultFade  = time.Second
)

// Option configures a Controller.
type Option func(*Controller)

// WithLives sets the number of lives a new game starts with.
func WithLives(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.startLives = n
		}
	}
}

// WithFade sets the length of each fade leg around a level rebuild.
func WithFade(d time.Duration) Option {
	return func(c *Controller) {
		c.fade = NewTransition(d)
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the level state and sequences the game lifecycle:
// loading, move resolution, deaths, resets and level advancement.
// It is single-threaded; callers drive it from one update loop.
type Controller struct {
	store      *Store
	state      *LevelState
	phase      Phase
	startLives int
	lives      int
	captures   int
	banked     int // captures when the current level was loaded
	moving     bool // player's presentation has not reached its cell yet
	reload     bool // rebuild from the source instead of the snapshot
	fade       *Transition
	events     []Event
	log        *log.Logger
}

// NewController creates a controller reading levels from src.
// Call Start before the first Move.
func NewController(src Source, opts ...Option) *Controller {
	c := &Controller{
		store:      NewStore(src),
		startLives: DefaultLives,
		fade:       NewTransition(DefaultFade),
		log:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a new game at the given level with full lives.
// Level numbers outside the source's range fall back to level 1.
func (c *Controller) Start(level int) error {
	c.lives = c.startLives
	c.captures = 0
	c.moving = false
	c.reload = false
	c.fade = NewTransition(c.fade.duration)
	c.events = c.events[:0]
	if err := c.loadLevel(level); err != nil {
		return err
	}
	c.phase = PhasePlaying
	return nil
}

// loadLevel builds level n from the source, clamping invalid numbers to 1.
func (c *Controller) loadLevel(n int) error {
	err := c.store.Load(n)
	if errors.Is(err, ErrInvalidLevel) {
		c.log.Warn("level out of range, loading level 1", "requested", n, "max", c.store.MaxLevel())
		err = c.store.Load(1)
	}
	if err != nil {
		return fmt.Errorf("engine: load level: %w", err)
	}
	st, err := NewLevelState(c.store)
	if err != nil {
		return fmt.Errorf("engine: build level %d: %w", c.store.Number(), err)
	}
	c.state = st
	c.banked = c.captures
	c.log.Debug("level loaded", "level", c.store.Number(), "creatures", st.Entities.Remaining())
	c.emit(LevelLoaded{
		Level:   c.store.Number(),
		Terrain: c.store.Terrain(),
		Objects: c.store.Snapshot(),
	})
	return nil
}

// Move resolves one player move. It returns true if the move was committed;
// illegal or locked-out moves change nothing and emit no events.
func (c *Controller) Move(d Dir) bool {
	if c.Locked() {
		return false
	}
	out := Resolve(c.state, d)
	if !out.Moved {
		return false
	}

	c.moving = true
	c.events = append(c.events, outcomeEvents(out)...)
	c.captures += len(out.Captures)
	c.log.Debug("move committed", "dir", d, "to", out.PlayerTo, "creatures_moved", len(out.CreatureMoves))

	switch {
	case out.PlayerDied:
		c.lives--
		c.log.Debug("player died", "cell", out.PlayerTo, "lives", c.lives)
		c.emit(PlayerDied{Cell: out.PlayerTo, LivesLeft: c.lives})
		if c.lives <= 0 {
			c.phase = PhaseGameOver
			c.emit(GameOver{Level: c.Level()})
			return true
		}
		c.phase = PhasePlayerDead
	case out.Cleared:
		c.log.Debug("level complete", "level", c.Level())
		c.phase = PhaseLevelComplete
		c.emit(LevelCompleted{Level: c.Level()})
	}
	for _, cp := range out.Captures {
		c.log.Debug("creature captured", "id", cp.CreatureID, "trap", cp.TrapID, "cell", cp.Cell)
	}
	return true
}

// MoveFirst resolves the first direction in InputPriority for which pressed
// returns true. Returns false if none is pressed or the move was not committed.
func (c *Controller) MoveFirst(pressed func(Dir) bool) bool {
	for _, d := range InputPriority {
		if pressed(d) {
			return c.Move(d)
		}
	}
	return false
}

// Settle reports that the player's presentation reached its logical cell.
// A pending death reset or level advance starts its fade here.
func (c *Controller) Settle() {
	if !c.moving {
		return
	}
	c.moving = false

	switch c.phase {
	case PhasePlayerDead:
		c.phase = PhaseResetting
		c.fade.Start(c.rebuild)
		c.log.Debug("reset started", "level", c.Level())
	case PhaseLevelComplete:
		if c.Level() >= c.store.MaxLevel() {
			c.phase = PhaseGameWon
			c.emit(GameWon{Level: c.Level()})
			return
		}
		c.phase = PhaseAdvancing
		c.fade.Start(c.rebuild)
		c.log.Debug("advance started", "from", c.Level())
	}
}

// Advance drives the fade sequence by dt. Input unlocks once the fade-in
// completes.
func (c *Controller) Advance(dt time.Duration) {
	if !c.fade.Active() {
		return
	}
	if c.fade.Advance(dt) {
		c.phase = PhasePlaying
		c.log.Debug("transition finished", "level", c.Level())
	}
}

// rebuild runs at full fade opacity and tears down the level state.
func (c *Controller) rebuild() {
	var err error
	switch {
	case c.reload:
		c.reload = false
		c.captures = c.banked
		err = c.loadLevel(c.Level())
	case c.phase == PhaseAdvancing:
		err = c.loadLevel(c.Level() + 1)
	default:
		// Creatures caught on this attempt come back, so their captures go.
		c.captures = c.banked
		c.store.Restore(c.store.Pristine())
		var st *LevelState
		st, err = NewLevelState(c.store)
		if err == nil {
			c.state = st
			c.emit(LevelLoaded{
				Level:   c.Level(),
				Terrain: c.store.Terrain(),
				Objects: c.store.Snapshot(),
				Reset:   true,
			})
		}
	}
	if err != nil {
		// Sources are validated when parsed, so this is not reachable with
		// a well-formed pack; keep the current level playable.
		c.log.Error("rebuild failed", "level", c.Level(), "error", err)
	}
}

// ReplaceSource swaps the level source, for example after the level file
// changed on disk. The current level is rebuilt from the new source behind a
// fade when the game is idle; otherwise the next load picks it up.
func (c *Controller) ReplaceSource(src Source) {
	c.store.SetSource(src)
	if c.phase != PhasePlaying || c.moving || c.fade.Active() {
		return
	}
	c.reload = true
	c.phase = PhaseResetting
	c.fade.Start(c.rebuild)
	c.log.Debug("source replaced, reloading", "level", c.Level())
}

// Locked reports whether player input is currently ignored.
func (c *Controller) Locked() bool {
	return c.phase != PhasePlaying || c.moving || c.fade.Active() || c.state == nil
}

// Events returns and clears the buffered events.
func (c *Controller) Events() []Event {
	if len(c.events) == 0 {
		return nil
	}
	out := make([]Event, len(c.events))
	copy(out, c.events)
	c.events = c.events[:0]
	return out
}

func (c *Controller) emit(e Event) {
	c.events = append(c.events, e)
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Lives returns the remaining lives.
func (c *Controller) Lives() int {
	return c.lives
}

// Level returns the current level number.
func (c *Controller) Level() int {
	return c.store.Number()
}

// MaxLevel returns the highest level number of the source.
func (c *Controller) MaxLevel() int {
	return c.store.MaxLevel()
}

// IsGameOver reports whether all lives are lost.
func (c *Controller) IsGameOver() bool {
	return c.phase == PhaseGameOver
}

// IsWon reports whether the final level was completed.
func (c *Controller) IsWon() bool {
	return c.phase == PhaseGameWon
}

// Remaining returns the number of creatures left on the current level.
func (c *Controller) Remaining() int {
	if c.state == nil {
		return 0
	}
	return c.state.Entities.Remaining()
}

// Captures returns the creatures captured since Start. Captures on an
// attempt that ended in a reset or restart are not counted.
func (c *Controller) Captures() int {
	return c.captures
}

// Opacity returns the fade overlay darkness, 0.0 to 1.0.
func (c *Controller) Opacity() float64 {
	return c.fade.Opacity()
}

// Transition returns the step of the fade sequence.
func (c *Controller) Transition() TransitionState {
	return c.fade.State()
}

// Terrain returns the terrain layer of the current level.
func (c *Controller) Terrain() TerrainGrid {
	return c.store.Terrain()
}

// Objects returns a copy of the object layer of the current level.
func (c *Controller) Objects() ObjectGrid {
	return c.store.Snapshot()
}

// Player returns the player entity.
func (c *Controller) Player() PlayerEntity {
	if c.state == nil {
		return PlayerEntity{}
	}
	return c.state.Entities.Player()
}

// Creatures returns the live creatures.
func (c *Controller) Creatures() []CreatureEntity {
	if c.state == nil {
		return nil
	}
	return c.state.Entities.Creatures()
}

// Traps returns the live traps.
func (c *Controller) Traps() []TrapEntity {
	if c.state == nil {
		return nil
	}
	return c.state.Entities.Traps()
}
