package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"achrip/cmd/achrip/globals"
	"achrip/internal/app"
	"achrip/internal/components/configutil"
	"achrip/internal/components/serviceutil"
	"achrip/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var flags struct {
	config   string
	dir      string
	games    string
	csv      string
	forum    string
	gamertag string
	db       string
	timezone string
	verbose  bool
	quiet    bool
}

var otelProviders telemetry.Telemetry

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", app.ConfigFile, "The configuration file, <name>.local.<ext> next to it overrides it.")
	pf.StringVar(&flags.dir, "dir", "", "The directory containing the saved achievement pages.")
	pf.StringVar(&flags.games, "games", "", "The saved games list page, relative to --dir.")
	pf.StringVar(&flags.csv, "csv", "", "Where to write the CSV sheet.")
	pf.StringVar(&flags.forum, "forum", "", "Where to write the forum post.")
	pf.StringVar(&flags.gamertag, "gamertag", "", "The gamertag whose gamerscore is shown in the post.")
	pf.StringVar(&flags.db, "db", "", "The run archive, a sqlite path or a libsql url.")
	pf.StringVar(&flags.timezone, "timezone", "", "The time zone achievement times are shown in.")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug information.")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Do not print progress.")
}

// loadConfig reads the configuration file and applies the flags that were
// set on top of it.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	config, err := configutil.ReadConfigOr(flags.config, app.DefaultConfig())
	if err != nil {
		return app.Config{}, fmt.Errorf("read config: %w", err)
	}

	overrides := []struct {
		flag  string
		value string
		dest  *string
	}{
		{"dir", flags.dir, &config.Dir},
		{"games", flags.games, &config.GamesFile},
		{"csv", flags.csv, &config.CSVFile},
		{"forum", flags.forum, &config.ForumFile},
		{"gamertag", flags.gamertag, &config.Gamertag},
		{"db", flags.db, &config.DB},
		{"timezone", flags.timezone, &config.Timezone},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.dest = o.value
		}
	}
	if cmd.Flags().Changed("quiet") {
		config.Quiet = flags.quiet
	}

	return config, nil
}

var rootCmd = &cobra.Command{
	Use:           "achrip",
	Short:         "achrip turns saved xbox.com achievement pages into a CSV sheet and a forum post.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(flags.verbose)

		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		otelProviders, err = telemetry.Setup(cmd.Context(), "achrip", config.Telemetry)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config:   config,
			Tel:      telemetry.SlogAPI{},
			Progress: telemetry.NewProgress(os.Stdout, !config.Quiet),
		}))
		return nil
	},
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	err := otelProviders.Shutdown(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "shutdown telemetry:", err)
	}
}

// ExecuteContext runs the command line, telemetry is flushed before a failed
// command exits.
func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	shutdownTelemetry()
	if err != nil {
		serviceutil.Fatal("achrip failed", err)
	}
}
