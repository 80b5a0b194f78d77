package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ModelOptions configures a game Model.
type ModelOptions struct {
	Store          *storage.Store // nil disables persistence
	Logger         *log.Logger    // nil discards log output
	Player         string         // storage key, storage.LocalPlayer when empty
	SwipeThreshold int            // mouse drags of this many cells or fewer are ignored
	Resume         bool           // continue the player's saved game
	AllowBack      bool           // esc returns to the menu instead of pausing
}

// Model is the Bubble Tea model for one 2048 session. It owns input
// mapping, the tick loop and fail-soft persistence around the game.
type Model struct {
	game   *t2048.Game
	screen *core.Screen
	store  *storage.Store
	logger *log.Logger
	player string
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model

	termW, termH   int
	swipeThreshold int
	allowBack      bool

	inputFrame core.InputFrame
	gameState  core.GameState
	drag       *dragStart
	savedBest  int  // best score last written to the store
	recorded   bool // finished game already written to the score history
	quitting   bool
	backToMenu bool
}

// dragStart is where the left mouse button went down.
type dragStart struct {
	x, y int
}

// NewGame creates a registered 2048 variant.
func NewGame(id string) (*t2048.Game, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	game, ok := g.(*t2048.Game)
	if !ok {
		return nil, fmt.Errorf("tui: game %q is not a 2048 variant", id)
	}
	return game, nil
}

// NewModel creates a Bubble Tea model for the given game. The best score and,
// with opts.Resume, the saved game are loaded from the store; failures are
// logged and play starts fresh.
func NewModel(game *t2048.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:           game,
		screen:         core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:          opts.Store,
		logger:         opts.Logger,
		player:         opts.Player,
		config:         cfg,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		termW:          cfg.ScreenW,
		termH:          cfg.ScreenH,
		swipeThreshold: opts.SwipeThreshold,
		allowBack:      opts.AllowBack,
		inputFrame:     core.NewInputFrame(),
	}
	m.layout()

	m.loadBest()
	if opts.Resume {
		m.restore()
	}
	return m
}

// loadBest seeds the game with the stored best score.
func (m *Model) loadBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.BestScore(m.game.ID(), m.player)
	if err != nil {
		m.logger.Warn("could not load best score", "game", m.game.ID(), "error", err)
		return
	}
	m.game.SetBestScore(best)
	m.savedBest = best
}

// restore hands the saved game to the next Reset. A saved game that cannot be
// decoded or does not fit the rules is discarded.
func (m *Model) restore() {
	if m.store == nil {
		return
	}
	data, err := m.store.LoadGame(m.game.ID(), m.player)
	if errors.Is(err, storage.ErrNoSavedGame) {
		return
	}
	if err != nil {
		m.logger.Warn("could not load saved game", "game", m.game.ID(), "error", err)
		return
	}

	snap, err := t2048.UnmarshalSnapshot(data)
	if err == nil {
		err = m.game.Restore(snap)
	}
	if err != nil {
		m.logger.Warn("discarding saved game", "game", m.game.ID(), "player", m.player, "error", err)
		m.clearSaved()
		return
	}
	m.logger.Info("resuming saved game", "game", m.game.ID(), "player", m.player, "score", snap.Score, "moves", snap.Moves)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// layout sizes the game screen to the terminal minus the help bar. The
// board is kept; only the too-small check is re-evaluated.
func (m *Model) layout() {
	h := max(m.termH-m.helpHeight(), 1)
	m.config.ScreenW = m.termW
	m.config.ScreenH = h
	m.screen.Resize(m.termW, h)
	m.game.Resize(m.termW, h)
	m.help.Width = m.termW
}

func (m Model) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 0
	for _, col := range m.keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return rows
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.persist()
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.allowBack {
			m.backToMenu = true
			m.persist()
			return m, nil
		}
		action = core.ActionPause
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns a left-button drag that starts on the board into a
// directional action.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := tea.MouseEvent(msg)
	switch {
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		m.drag = nil
		if m.game.BoardRect().Contains(ev.X, ev.Y) {
			m.drag = &dragStart{x: ev.X, y: ev.Y}
		}
	case ev.Action == tea.MouseActionRelease && m.drag != nil:
		action := core.ClassifySwipe(ev.X-m.drag.x, ev.Y-m.drag.y, m.swipeThreshold)
		m.drag = nil
		if action != core.ActionNone {
			m.inputFrame.Set(action)
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restarted := m.inputFrame.Has(core.ActionRestart)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if restarted {
		m.recorded = false
	}

	m.syncBest()

	// Record a finished game once
	if m.gameState.GameOver && !m.recorded {
		m.recordFinished()
	}

	// Save as we go so a dropped SSH connection can still resume. A restart
	// has no moves yet, which clears the old save.
	if (result.Moved && !m.gameState.GameOver) || restarted {
		m.persist()
	}

	return m, tickCmd(m.config.TickRate)
}

// syncBest writes the best score whenever it rises.
func (m *Model) syncBest() {
	best := m.gameState.BestScore
	if best <= m.savedBest {
		return
	}
	m.savedBest = best
	if m.store == nil {
		return
	}
	if err := m.store.SaveBestScore(m.game.ID(), m.player, best); err != nil {
		m.logger.Warn("could not save best score", "game", m.game.ID(), "error", err)
	}
}

// recordFinished adds the finished game to the history and drops its save.
func (m *Model) recordFinished() {
	m.recorded = true
	snap := m.game.Snapshot()
	m.logger.Info("game finished",
		"game", m.game.ID(),
		"player", m.player,
		"score", snap.Score,
		"max_tile", snap.MaxTile,
		"won", snap.Won,
	)

	if m.store == nil {
		return
	}
	if snap.Score > 0 {
		_, err := m.store.SaveScore(storage.ScoreEntry{
			GameID:  m.game.ID(),
			Player:  m.player,
			Score:   snap.Score,
			MaxTile: snap.MaxTile,
			Moves:   snap.Moves,
			Won:     snap.Won,
		})
		if err != nil {
			m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		}
	}
	m.clearSaved()
}

// persist saves an unfinished game so the next session can resume it.
func (m *Model) persist() {
	if m.store == nil {
		return
	}
	snap := m.game.Snapshot()
	if snap.GameOver || snap.Won || snap.Moves == 0 {
		m.clearSaved()
		return
	}

	data, err := t2048.MarshalSnapshot(snap)
	if err != nil {
		m.logger.Warn("could not encode game", "game", m.game.ID(), "error", err)
		return
	}
	if err := m.store.SaveGame(m.game.ID(), m.player, data); err != nil {
		m.logger.Warn("could not save game", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Debug("game saved", "game", m.game.ID(), "player", m.player, "moves", snap.Moves)
}

func (m *Model) clearSaved() {
	if err := m.store.ClearSavedGame(m.game.ID(), m.player); err != nil {
		m.logger.Warn("could not clear saved game", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// GameState returns the state seen on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for the game and blocks until it exits.
func Run(game *t2048.Game, cfg core.RuntimeConfig, opts ModelOptions) (Model, error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // mouse drags act as swipes
	)

	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, _ := final.(Model)
	return m, nil
}
