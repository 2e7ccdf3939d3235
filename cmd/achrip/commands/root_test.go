package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"achrip/internal/app"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "achrip.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// pages live next to the config
		dir: "pages",
		gamertag: "Someone Else",
		quiet: true,
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "achrip.local.json5"), []byte(`{
		db: "history.db",
	}`), 0644))

	err := rootCmd.ParseFlags([]string{"--config", path, "--csv", "sheet.csv"})
	require.NoError(t, err)

	config, err := loadConfig(rootCmd)
	require.NoError(t, err)

	expected := app.DefaultConfig()
	expected.Dir = "pages"
	expected.Gamertag = "Someone Else"
	expected.Quiet = true
	expected.DB = "history.db"
	expected.CSVFile = "sheet.csv"
	require.Equal(t, expected, config)
}

func TestCommandErrorsAreReturned(t *testing.T) {
	config := filepath.Join(t.TempDir(), "missing.json5")

	rootCmd.SetArgs([]string{"history", "--config", config, "--db", ""})
	err := rootCmd.ExecuteContext(context.Background())
	require.ErrorContains(t, err, "no run archive")

	rootCmd.SetArgs([]string{"run", "--config", config, "--dir", filepath.Join(t.TempDir(), "missing"), "--quiet"})
	err = rootCmd.ExecuteContext(context.Background())
	require.ErrorContains(t, err, "list pages")
}
