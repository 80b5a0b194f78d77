package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered 2048 variant with its board size and target tile.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func runList(_ *cobra.Command, _ []string) {
	base := t2048.OptionsFromConfig(gameConfig)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Title", "Board", "Target").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, v := range t2048.Variants {
		rules := v.Options(base).Rules
		t.Row(v.ID, v.Title, fmt.Sprintf("%dx%d", rules.Size, rules.Size), strconv.Itoa(rules.Target))
	}

	fmt.Println(t)
	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a variant.")
}
