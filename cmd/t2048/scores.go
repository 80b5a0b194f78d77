package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top high scores for a variant (default: 2048).

Examples:
  t2048 scores
  t2048 scores 2048_mini --limit 20
  t2048 scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse all variants in the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := t2048.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w, run 't2048 list' to see available variants", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Rank", "Score", "Max", "Moves", "Won", "Player", "Date").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		t.Row(
			strconv.Itoa(i+1),
			t2048.FormatScore(e.Score),
			strconv.Itoa(e.MaxTile),
			strconv.Itoa(e.Moves),
			won,
			e.Player,
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t)

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("\nBest: %s (%s)  Games: %d  Wins: %d  Best tile: %d\n",
			t2048.FormatScore(stats.HighScore), t2048.Rating(stats.HighScore),
			stats.GamesCount, stats.Wins, stats.BestTile)
	}
	return nil
}
