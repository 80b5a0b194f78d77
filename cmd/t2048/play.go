package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play 2048",
	Long: `Start playing the given variant, or pick one from a menu.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  Mouse drag       - Slide tiles
  R                - New game
  P/Space          - Pause
  Esc              - Back to menu
  ?                - More keys
  Q/Ctrl+C         - Quit (the game is saved)

Difficulty sets how often a new tile is a 4:
  easy   - 5%
  normal - 10%
  hard   - 25%

Examples:
  t2048 play
  t2048 play 2048_big
  t2048 play --resume=false
  t2048 play --difficulty hard --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", true, "Continue the saved game if there is one")
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown variant %q, run 't2048 list' to see available variants", args[0])
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logFile, gameLogger := openPlayLog()
	if logFile != nil {
		defer logFile.Close()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	opts := tui.ModelOptions{
		Store:          store,
		Logger:         gameLogger,
		Player:         storage.LocalPlayer,
		SwipeThreshold: gameConfig.Input.SwipeThreshold,
		Resume:         flagResume,
	}

	if len(args) == 0 {
		return tui.RunSession(cfg, opts)
	}

	game, err := tui.NewGame(args[0])
	if err != nil {
		return err
	}
	final, err := tui.Run(game, cfg, opts)
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	state := final.GameState()
	fmt.Printf("Score: %s  Best: %s  (%s)\n",
		t2048.FormatScore(state.Score), t2048.FormatScore(state.BestScore), t2048.Rating(state.Score))
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openPlayLog opens ~/.t2048/t2048.log for the game logger. Without it the
// game logs nowhere.
func openPlayLog() (*os.File, *log.Logger) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, log.New(io.Discard)
	}
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, log.New(io.Discard)
	}

	f, err := os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warn("could not open log file", "error", err)
		return nil, log.New(io.Discard)
	}

	l, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, log.New(io.Discard)
	}
	return f, l
}
