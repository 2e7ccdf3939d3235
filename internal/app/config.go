package app

import (
	"path/filepath"

	"achrip/internal/components/telemetry"
	"achrip/internal/notify"
	"achrip/internal/render"
	"achrip/internal/scrapers/gamercard"
)

// ConfigFile is the name of the configuration file read from the working
// directory, achrip.local.json5 overrides it.
const ConfigFile = "achrip.json5"

type Config struct {
	// Dir is the directory the saved achievement pages are read from.
	Dir     string `json:"dir"`
	Pattern string `json:"pattern"`
	// GamesFile is the saved games list page, relative paths are resolved
	// against Dir.
	GamesFile string `json:"games_file"`
	CSVFile   string `json:"csv_file"`
	ForumFile string `json:"forum_file"`
	Gamertag  string `json:"gamertag"`
	// Timezone is the IANA name of the zone item times are converted into.
	Timezone  string `json:"timezone"`
	Quiet     bool   `json:"quiet"`
	ScoreIcon string `json:"score_icon"`

	Gamercard gamercard.Options `json:"gamercard"`
	// DB is where runs are archived, a sqlite path or a libsql url. Runs are
	// not archived if empty.
	DB        string            `json:"db"`
	Mail      notify.MailConfig `json:"mail"`
	Telemetry telemetry.Config  `json:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		Dir:       ".",
		Pattern:   "*.html",
		GamesFile: "games.html",
		CSVFile:   "out.csv",
		ForumFile: "out.txt",
		Gamertag:  "Pedle Zelnip",
		Timezone:  "UTC",
		ScoreIcon: render.DefaultScoreIcon,
		Gamercard: gamercard.Options{
			BaseUrl:        gamercard.DefaultBaseUrl,
			TimeoutSeconds: 30,
		},
	}
}

// GamesPath is the location of the games list page.
func (c Config) GamesPath() string {
	if filepath.IsAbs(c.GamesFile) {
		return c.GamesFile
	}
	return filepath.Join(c.Dir, c.GamesFile)
}
