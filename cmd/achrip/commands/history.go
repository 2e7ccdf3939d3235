package commands

import (
	"errors"
	"fmt"
	"time"

	"achrip/cmd/achrip/globals"
	"achrip/cmd/achrip/utils"
	"achrip/internal/components/chrono"
	"achrip/internal/components/db"
	"achrip/internal/history"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().Int("limit", 20, "The amount of runs to list.")
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory(cmd *cobra.Command) (history.Store, func(), error) {
	g := globals.Get(cmd.Context())
	if g.Config.DB == "" {
		return history.Store{}, nil, errors.New("no run archive, set db in the config or pass --db")
	}

	clock, err := chrono.NewStandardImpl(g.Config.Timezone)
	if err != nil {
		return history.Store{}, nil, fmt.Errorf("load timezone: %w", err)
	}
	database, err := db.Open(cmd.Context(), g.Config.DB)
	if err != nil {
		return history.Store{}, nil, fmt.Errorf("open run archive: %w", err)
	}
	return history.NewStore(database, clock, g.Tel), func() { database.Close() }, nil
}

var historyCmd = &cobra.Command{
	Use:   "history [run-id] [--limit <n>]",
	Short: "Lists the archived runs, or the day totals of a single run.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, done, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer done()

		if len(args) == 1 {
			totals, err := store.Totals(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			t := utils.NewTable()
			t.AppendHeader(table.Row{"Day", "Game", "GS"})
			sum := 0
			for _, key := range totals.Keys() {
				day := time.Date(key.Year, time.Month(key.Month), key.Day, 0, 0, 0, 0, time.UTC)
				t.AppendRow(table.Row{day.Format(time.DateOnly), key.Game, totals[key]})
				sum += totals[key]
			}
			t.AppendFooter(table.Row{"", "Total", sum})
			t.Render()
			return nil
		}

		runs, err := store.Runs(cmd.Context(), *historyLimit)
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Run", "Time", "Gamertag", "Gamerscore", "GS increase", "Games", "Achievements"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.ID,
				run.CreatedAt.Format(time.ANSIC),
				run.Gamertag,
				run.Gamerscore,
				run.Increase,
				run.Collections,
				run.Items,
			})
		}
		t.Render()
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>...",
	Short: "Removes runs from the archive.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, done, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer done()

		for _, id := range args {
			err := store.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
		}
		return nil
	},
}
