package commands

import (
	"fmt"

	"achrip/cmd/achrip/globals"
	"achrip/cmd/achrip/utils"
	"achrip/internal/app"
	"achrip/internal/components/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the games found in the achievement pages without writing anything.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		runner := app.NewRunner(g.Config, g.Tel, telemetry.Progress{}, noScores{})

		catalog, stats, err := runner.Catalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("read achievement pages: %w", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Key", "Title", "Unlocked", "Gamerscore", "Achievements", "Items"})
		for _, key := range catalog.Keys() {
			h := catalog[key].Header
			t.AppendRow(table.Row{
				key,
				h.Title,
				h.Percent,
				formatRatio(h.Score, h.ScoreTotal),
				formatRatio(h.Count, h.CountTotal),
				len(catalog[key].Items),
			})
		}
		t.AppendFooter(table.Row{"", "", "", "", "Skipped pages", stats.Skipped})
		t.Render()
		return nil
	},
}
