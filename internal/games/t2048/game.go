package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// GameID is the registry and storage identifier of the game.
const GameID = "2048"

// Game adapts the engine to the terminal platform. It turns input frames
// into moves and animates and renders the result.
type Game struct {
	id     string
	title  string
	opts   Options
	engine *Engine
	rng    *rand.Rand
	tick   uint64

	state    State
	moves    int
	best     int       // best score carried into the next Reset
	restored *Snapshot // applied by the next Reset instead of a fresh board
	anim     *animator

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a classic game with the package-level options.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewVariant creates a game of the given variant with the package-level options.
func NewVariant(v Variant) *Game {
	g := NewWithOptions(v.Options(defaultOptions))
	g.id = v.ID
	g.title = v.Title
	return g
}

// NewWithOptions creates a classic game with explicit options.
func NewWithOptions(opts Options) *Game {
	return &Game{
		id:    GameID,
		title: "2048",
		opts:  opts,
		anim:  newAnimator(opts.SlideTicks, opts.PopTicks),
	}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// ID returns the registry and storage identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// SetBestScore sets the best score carried into the next Reset.
func (g *Game) SetBestScore(best int) {
	if best > g.best {
		g.best = best
	}
}

// BestScore returns the best score seen so far.
func (g *Game) BestScore() int {
	return max(g.best, g.state.BestScore)
}

// Restore validates snap and arranges for the next Reset to continue it.
func (g *Game) Restore(snap Snapshot) error {
	state, err := snap.EngineState()
	if err != nil {
		return err
	}
	if want := g.opts.Rules.normalized().Size; state.Board.Size() != want {
		return fmt.Errorf("t2048: saved game is %dx%d, rules want %dx%d",
			state.Board.Size(), state.Board.Size(), want, want)
	}
	g.restored = &snap
	g.SetBestScore(state.BestScore)
	return nil
}

// Reset initializes the game: a restored snapshot when one is pending,
// otherwise a fresh board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.engine = NewEngine(g.opts.Rules, g.rng)
	g.tick = 0
	g.paused = false
	g.anim.stop()
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	if g.restored != nil {
		state, err := g.restored.EngineState()
		moves := g.restored.Moves
		g.restored = nil
		if err == nil {
			state.BestScore = max(state.BestScore, g.best)
			g.state = state
			g.moves = moves
			return
		}
	}

	g.newGame()
}

// newGame starts a fresh board keeping the best score.
func (g *Game) newGame() {
	g.best = g.BestScore()
	state, events := g.engine.Reset(g.best)
	g.state = state
	g.moves = 0
	g.paused = false
	g.anim.start(events)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	size := g.opts.Rules.normalized().Size
	minW := size*cellWidth + 1 + 4
	minH := size*cellHeight + 1 + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.anim.update()

	if g.tooSmall || in.Empty() {
		return core.StepResult{State: g.State()}
	}

	// Handle restart (any time, like the "New Game" button)
	if in.Has(core.ActionRestart) {
		g.newGame()
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.Move(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// Move applies one move and starts its animation. Returns whether the board changed.
func (g *Game) Move(dir Direction) bool {
	next, events, moved := g.engine.ApplyMove(g.state, dir)
	if !moved {
		return false
	}
	g.state = next
	g.moves++
	g.anim.start(events)
	return true
}

// directionFromInput picks the first directional action in the frame.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// Animating reports whether a slide or pop animation is playing.
func (g *Game) Animating() bool {
	return g.anim.active()
}

// EngineState returns the current engine state.
func (g *Game) EngineState() State {
	return g.state
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := SnapshotOf(g.state, g.moves)
	snap.BestScore = g.BestScore()
	if g.tooSmall {
		snap.State = StatePausedSmall
	}
	return snap
}

// State returns the current platform-level game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.state.Score,
		BestScore: g.BestScore(),
		GameOver:  g.state.GameOver || g.state.Won,
		Won:       g.state.Won,
		Paused:    g.paused || g.tooSmall,
	}
}
