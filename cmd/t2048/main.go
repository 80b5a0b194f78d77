// t2048 plays 2048 in the terminal, locally or over SSH.
//
// Usage:
//
//	t2048 play [variant]     - Play a variant, or pick one from the menu
//	t2048 list               - List available variants
//	t2048 scores [variant]   - Show high scores for a variant
//	t2048 reset [variant]    - Clear best score and saved game
//	t2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.t2048/scores.db)
//	--config <path>       - Use a custom t2048.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	// Set up by the root command before any subcommand runs.
	logger     *log.Logger
	gameConfig config.T2048Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the sliding tile puzzle 2048 for the terminal.

Slide the board with the arrow keys, WASD, hjkl or a mouse drag. Equal
tiles merge into their sum; reach the target tile to win.

Available commands:
  play     - Play a variant (menu when none given)
  list     - Show all variants
  scores   - View high scores
  reset    - Clear a player's best score and saved game
  serve    - Start SSH server for remote play

Examples:
  t2048 play
  t2048 play 2048_mini --difficulty hard
  t2048 scores 2048
  t2048 serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom t2048.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup creates the logger, loads the game config and applies it to every
// variant created afterwards.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	logger, err = newLogger(os.Stderr)
	if err != nil {
		return err
	}

	gameConfig, err = config.LoadT2048(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyT2048Preset(&gameConfig, preset)

	t2048.Configure(t2048.OptionsFromConfig(gameConfig))
	logger.Debug("config loaded",
		"size", gameConfig.Board.Size,
		"target", gameConfig.Board.Target,
		"four_probability", gameConfig.Spawn.FourProbability,
	)
	return nil
}

// newLogger returns a timestamped logger at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	}), nil
}
