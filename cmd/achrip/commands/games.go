package commands

import (
	"fmt"
	"slices"

	"achrip/cmd/achrip/globals"
	"achrip/cmd/achrip/utils"
	"achrip/internal/achievements"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(gamesCmd)
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Lists the game icons found in the games list page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		icons, err := achievements.ReadIcons(g.Config.GamesPath())
		if err != nil {
			return fmt.Errorf("read games list: %w", err)
		}

		keys := make([]string, 0, len(icons))
		for key := range icons {
			keys = append(keys, key)
		}
		slices.Sort(keys)

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Key", "Icon"})
		for _, key := range keys {
			t.AppendRow(table.Row{key, icons[key]})
		}
		t.Render()
		return nil
	},
}
