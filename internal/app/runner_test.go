package app

import (
	"context"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"achrip/internal/achievements/pagetest"
	"achrip/internal/components/chrono"
	"achrip/internal/components/db"
	"achrip/internal/components/telemetry"
	"achrip/internal/history"
	"achrip/internal/notify"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/require"
)

type fixedScore int64

func (f fixedScore) Score(context.Context, string) int64 {
	return int64(f)
}

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	out := t.TempDir()

	config := DefaultConfig()
	config.Dir = dir
	config.CSVFile = filepath.Join(out, "out.csv")
	config.ForumFile = filepath.Join(out, "out.txt")
	config.ScoreIcon = "G"
	return config
}

func write(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestRunSinglePage(t *testing.T) {
	config := testConfig(t)
	write(t, filepath.Join(config.Dir, "game.html"), pagetest.Page(
		pagetest.Header{Title: "Game", Percent: 10, Score: 10, ScoreTotal: 100, Count: 1, CountTotal: 10},
		pagetest.Item{Name: "Win", Description: "won", Score: 10, Year: 2020, Month: 1, Day: 2, Hour: 3, Minute: 4},
	))
	write(t, filepath.Join(config.Dir, "games.html"), pagetest.GamesPage(
		pagetest.Game{Title: "Game", Icon: "http://tiles.xbox.com/tiles/gg/game.jpg"},
	))

	tel := telemetry.NewRecorderAPI()
	runner := NewRunner(config, tel, telemetry.Progress{}, fixedScore(1000))
	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Collections)
	require.Equal(t, 10, summary.Increase)
	require.Equal(t, int64(1000), summary.Gamerscore)
	require.Empty(t, summary.RunID)
	require.False(t, summary.Mailed)

	csv, err := os.ReadFile(config.CSVFile)
	require.NoError(t, err)
	require.Equal(t,
		"2020 01 02 03:04:00--998;Game;Win;won;10\n\n\n2020--01--02--Game;10\n",
		string(csv),
	)

	forum, err := os.ReadFile(config.ForumFile)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(forum), "[CENTER][IMG]http://tiles.xbox.com/tiles/gg/game.jpg[/IMG]\n"))
	require.Contains(t, string(forum), "[b]Win[/b] - won (10 [IMG]G[/IMG]) (Acquired January 02, 2020 at 03:04AM)")
	require.Contains(t, string(forum), "New Total GS: 1,000 [IMG]G[/IMG]")
	require.NotContains(t, string(forum), "Total GS for day")

	require.Empty(t, tel.Reports("warning", report_runner_icons))
	require.Empty(t, tel.Reports("warning", "icon-missing"))
	require.Empty(t, tel.Reports("broken", ""))
}

func TestRunCSVUsesGameKey(t *testing.T) {
	config := testConfig(t)
	write(t, filepath.Join(config.Dir, "odst.html"), pagetest.Page(
		pagetest.Header{Title: "Halo 3: ODST; Firefight", Score: 10, ScoreTotal: 100},
		pagetest.Item{Name: "Win", Description: "won", Score: 10, Year: 2020, Month: 1, Day: 2, Hour: 3, Minute: 4},
	))

	runner := NewRunner(config, telemetry.NewRecorderAPI(), telemetry.Progress{}, fixedScore(0))
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	csv, err := os.ReadFile(config.CSVFile)
	require.NoError(t, err)
	require.Equal(t,
		"2020 01 02 03:04:00--998;Halo 3 ODST Firefight;Win;won;10\n\n\n2020--01--02--Halo 3 ODST Firefight;10\n",
		string(csv),
	)
	itemLine, _, _ := strings.Cut(string(csv), "\n")
	require.Len(t, strings.Split(itemLine, ";"), 5)

	forum, err := os.ReadFile(config.ForumFile)
	require.NoError(t, err)
	require.Contains(t, string(forum), "Halo 3: ODST; Firefight")
}

func TestRunArchivesAndMails(t *testing.T) {
	config := testConfig(t)
	write(t, filepath.Join(config.Dir, "a.html"), pagetest.Page(
		pagetest.Header{Title: "Alpha"},
		pagetest.Item{Name: "a", Score: 10, Year: 2020, Month: 1, Day: 2},
	))
	write(t, filepath.Join(config.Dir, "b.html"), pagetest.Page(
		pagetest.Header{Title: "Beta"},
		pagetest.Item{Name: "b", Score: 5, Year: 2020, Month: 1, Day: 3},
	))

	ctx := context.Background()
	database, err := db.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer database.Close()

	tel := telemetry.NewRecorderAPI()
	store := history.NewStore(database, chrono.FixedImpl{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, tel)

	var mailed string
	mailer := notify.NewMailerWith(
		notify.MailConfig{Host: "smtp.example.com", To: []string{"me@example.com"}},
		tel,
		func(e *email.Email, addr string, auth smtp.Auth) error {
			mailed = string(e.Text)
			return nil
		},
	)

	runner := NewRunner(config, tel, telemetry.Progress{}, fixedScore(-1)).
		WithHistory(store).
		WithMailer(mailer)
	summary, err := runner.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 15, summary.Increase)
	require.NotEmpty(t, summary.RunID)
	require.True(t, summary.Mailed)

	forum, err := os.ReadFile(config.ForumFile)
	require.NoError(t, err)
	require.Equal(t, string(forum), mailed)
	require.Contains(t, mailed, "Total GS for day in Alpha: 10")
	require.Contains(t, mailed, "New Total GS: -1")

	totals, err := store.Totals(ctx, summary.RunID)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// games.html is missing
	require.Len(t, tel.Reports("warning", report_runner_icons), 1)
}

func TestRunBadTimezone(t *testing.T) {
	config := testConfig(t)
	config.Timezone = "Nowhere/Special"

	runner := NewRunner(config, telemetry.NewRecorderAPI(), telemetry.Progress{}, fixedScore(0))
	_, err := runner.Run(context.Background())
	require.Error(t, err)
}

func TestRunUnwritableOutput(t *testing.T) {
	config := testConfig(t)
	config.CSVFile = filepath.Join(config.Dir, "missing", "out.csv")

	runner := NewRunner(config, telemetry.NewRecorderAPI(), telemetry.Progress{}, fixedScore(0))
	_, err := runner.Run(context.Background())
	require.Error(t, err)
}

func TestGamesPath(t *testing.T) {
	config := DefaultConfig()
	require.Equal(t, "games.html", config.GamesPath())

	config.Dir = "/pages"
	require.Equal(t, "/pages/games.html", config.GamesPath())

	config.GamesFile = "/elsewhere/games.html"
	require.Equal(t, "/elsewhere/games.html", config.GamesPath())
}
