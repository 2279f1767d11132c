package game

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/isletrap/internal/core"
	"github.com/vovakirdan/isletrap/internal/engine"
	"github.com/vovakirdan/isletrap/internal/levels"
	"github.com/vovakirdan/isletrap/internal/levels/classic"
)

// testConfig steps 100ms per tick so one tick covers one cell of movement.
func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1}
}

func testOptions() Options {
	return Options{Lives: 2, StartLevel: 1, Move: 100 * time.Millisecond, Fade: 0, Hold: 0, CellWidth: 2}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps with no input until the controller accepts input again or
// the run has ended.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.Controller().Locked(); i++ {
		if g.Controller().Phase().Terminal() {
			return
		}
		if i > 50 {
			t.Fatalf("game stuck in phase %s", g.Controller().Phase())
		}
		g.Step(core.NewInputFrame())
	}
}

// play issues a sequence of L/R/U/D moves, settling after each.
func play(t *testing.T, g *Game, moves string) {
	t.Helper()
	keys := map[rune]core.Action{
		'L': core.ActionLeft, 'R': core.ActionRight,
		'U': core.ActionUp, 'D': core.ActionDown,
	}
	for _, m := range moves {
		g.Step(press(keys[m]))
		settle(t, g)
	}
}

// deadlyPack has a player one step left of a trap and a creature far away.
func deadlyPack(t *testing.T) *levels.Pack {
	t.Helper()
	land := strings.TrimSuffix(strings.Repeat("1,", engine.Cols), ",")
	empty := strings.TrimSuffix(strings.Repeat("0,", engine.Cols), ",")

	var sb strings.Builder
	sb.WriteString("id: deadly\nname: Deadly\nlevels:\n  - number: 1\n    map:\n")
	for range engine.Rows {
		fmt.Fprintf(&sb, "      - %q\n", land)
	}
	sb.WriteString("    objects:\n")
	for r := range engine.Rows {
		row := empty
		switch r {
		case 2:
			row = "P,B" + strings.Repeat(",0", engine.Cols-2)
		case 9:
			row = strings.Repeat("0,", engine.Cols-1) + "C"
		}
		fmt.Fprintf(&sb, "      - %q\n", row)
	}

	p, err := levels.Parse("deadly.yaml", []byte(sb.String()))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return p
}

func TestGameMoveAnimatesThenSettles(t *testing.T) {
	opts := testOptions()
	opts.Move = 200 * time.Millisecond
	g := New(classic.Pack(), opts)
	g.Reset(testConfig())

	g.Step(press(core.ActionRight))
	if !g.motion.active {
		t.Fatal("Expected move animation to start")
	}
	if !g.Controller().Locked() {
		t.Fatal("Input should be locked while the move animates")
	}

	// A second move during the animation is dropped.
	before := g.Snapshot().Objects
	g.Step(press(core.ActionDown))
	if g.Snapshot().Objects != before {
		t.Error("Move while locked changed the board")
	}

	g.Step(core.NewInputFrame())
	if g.Controller().Locked() {
		t.Error("Input should unlock once the move arrives")
	}
	if g.facing != engine.DirRight {
		t.Errorf("facing = %s, expected Right", g.facing)
	}
}

func TestGameClearsLevelAndAdvances(t *testing.T) {
	g := New(classic.Pack(), testOptions())
	g.Reset(testConfig())

	var captured int
	g.OnEvent(func(e engine.Event) {
		if _, ok := e.(engine.CreatureCaptured); ok {
			captured++
		}
	})

	play(t, g, "RRR")

	if captured != 1 {
		t.Errorf("Expected 1 capture event, got %d", captured)
	}
	st := g.State()
	if st.Level != 2 {
		t.Errorf("Level = %d, expected 2", st.Level)
	}
	if st.Score != 1 {
		t.Errorf("Score = %d, expected 1", st.Score)
	}
	if st.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", st.Lives)
	}
}

func TestGameDeterministic(t *testing.T) {
	run := func() Snapshot {
		g := New(classic.Pack(), testOptions())
		g.Reset(testConfig())
		play(t, g, "RRRDDUU")
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("Same input produced different snapshots:\n%+v\n%+v", a, b)
	}
}

func TestGameOverAfterHold(t *testing.T) {
	opts := testOptions()
	opts.Lives = 1
	opts.Hold = 200 * time.Millisecond
	g := New(deadlyPack(t), opts)
	g.Reset(testConfig())

	g.Step(press(core.ActionRight))
	if !g.Controller().IsGameOver() {
		t.Fatalf("phase = %s, expected GameOver", g.Controller().Phase())
	}
	if g.State().GameOver {
		t.Error("GameOver reported before the final frame was held")
	}

	for range 5 {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Error("GameOver not reported after hold")
	}
	if !g.State().Finished() {
		t.Error("Finished() should be true")
	}
}

func TestGameDeathCostsLifeAndResets(t *testing.T) {
	g := New(deadlyPack(t), testOptions())
	g.Reset(testConfig())
	start := g.Snapshot().Objects

	g.Step(press(core.ActionRight))
	settle(t, g)

	st := g.State()
	if st.Lives != 1 {
		t.Errorf("Lives = %d, expected 1", st.Lives)
	}
	if st.GameOver {
		t.Error("Game over with a life left")
	}
	if g.Snapshot().Objects != start {
		t.Error("Level not restored after death")
	}
}

func TestGamePauseBlocksMoves(t *testing.T) {
	g := New(classic.Pack(), testOptions())
	g.Reset(testConfig())
	start := g.Snapshot().Objects

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Expected paused state")
	}
	g.Step(press(core.ActionRight))
	if g.Snapshot().Objects != start {
		t.Error("Move applied while paused")
	}

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionRight))
	if g.Snapshot().Objects == start {
		t.Error("Move not applied after unpausing")
	}
}

func TestGameRestartLevel(t *testing.T) {
	g := New(classic.Pack(), testOptions())
	g.Reset(testConfig())
	start := g.Snapshot().Objects

	play(t, g, "R")
	g.Step(press(core.ActionRestart))
	settle(t, g)

	snap := g.Snapshot()
	if snap.Objects != start {
		t.Error("Restart did not restore the level")
	}
	if snap.Lives != 2 {
		t.Errorf("Restart cost a life: %d", snap.Lives)
	}
}

func TestGameRender(t *testing.T) {
	g := New(classic.Pack(), testOptions())
	g.Reset(testConfig())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"STAGE 1", "2 lives", "▼", "@", "#"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}

	play(t, g, "R")
	g.Render(screen)
	if !strings.Contains(screen.String(), "▶") {
		t.Error("Player should face right after moving right")
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := New(classic.Pack(), testOptions())
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 10
	g.Reset(cfg)

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Expected too-small message")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("Resize to a large screen should clear the too-small state")
	}
}

func TestGameFadeDarkensBoard(t *testing.T) {
	opts := testOptions()
	opts.Fade = time.Second
	g := New(classic.Pack(), opts)
	g.Reset(testConfig())

	play(t, g, "RR")
	g.Step(press(core.ActionRight))
	g.Step(core.NewInputFrame()) // arrival starts the fade
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	if g.Controller().Opacity() < 1 {
		t.Fatalf("Opacity = %v, expected full", g.Controller().Opacity())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "#") {
		t.Error("Board should be hidden at full fade")
	}
}

func TestOptionsNormalize(t *testing.T) {
	g := New(classic.Pack(), Options{CellWidth: 7, Move: -1})
	if g.opts.Lives != 2 || g.opts.CellWidth != 2 || g.opts.Move != 0 || g.opts.Logger == nil {
		t.Errorf("normalize() = %+v", g.opts)
	}
}
