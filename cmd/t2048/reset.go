package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagResetPlayer string
	flagResetAll    bool
)

var resetCmd = &cobra.Command{
	Use:   "reset [variant]",
	Short: "Clear best score and saved game",
	Long: `Clear a player's best score and saved game for a variant (default: 2048).
With --all the variant's score history is cleared as well.

Examples:
  t2048 reset
  t2048 reset 2048_big --player alice
  t2048 reset --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReset,
}

func init() {
	resetCmd.Flags().StringVar(&flagResetPlayer, "player", storage.LocalPlayer, "Player whose data is cleared")
	resetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Also clear the score history of every player")
}

func runReset(_ *cobra.Command, args []string) error {
	gameID := t2048.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 't2048 list' to see available variants", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if err := store.ClearGameData(gameID, flagResetPlayer); err != nil {
		return err
	}
	logger.Info("cleared best score and saved game", "game", gameID, "player", flagResetPlayer)

	if flagResetAll {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("cleared score history", "game", gameID)
	}
	return nil
}
