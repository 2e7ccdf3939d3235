package commands

import (
	"fmt"
	"log/slog"

	"achrip/cmd/achrip/globals"
	"achrip/cmd/achrip/utils"
	"achrip/internal/app"
	"achrip/internal/components/chrono"
	"achrip/internal/components/db"
	"achrip/internal/history"
	"achrip/internal/notify"
	"achrip/internal/scrapers/gamercard"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reads the achievement pages and writes the CSV sheet and the forum post.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)
		config := g.Config

		scores := gamercard.NewClient(config.Gamercard, g.Tel)
		runner := app.NewRunner(config, g.Tel, g.Progress, scores)

		if config.DB != "" {
			database, err := db.Open(ctx, config.DB)
			if err != nil {
				return fmt.Errorf("open run archive: %w", err)
			}
			defer database.Close()

			clock, err := chrono.NewStandardImpl(config.Timezone)
			if err != nil {
				return fmt.Errorf("load timezone: %w", err)
			}
			runner = runner.WithHistory(history.NewStore(database, clock, g.Tel))
		}
		if config.Mail.Enabled() {
			runner = runner.WithMailer(notify.NewMailer(config.Mail, g.Tel))
		}

		summary, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		slog.Debug("run complete", "csv", config.CSVFile, "forum", config.ForumFile)

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Pages", "Skipped", "Games", "Achievements", "GS increase", "Gamerscore", "Run"})
		t.AppendRow(table.Row{
			summary.Stats.Documents,
			summary.Stats.Skipped,
			summary.Collections,
			summary.Stats.Items,
			summary.Increase,
			summary.Gamerscore,
			runLabel(summary),
		})
		t.Render()
		return nil
	},
}

func runLabel(summary app.Summary) string {
	if summary.RunID == "" {
		return "-"
	}
	if summary.Mailed {
		return fmt.Sprintf("%s (mailed)", summary.RunID)
	}
	return summary.RunID
}
