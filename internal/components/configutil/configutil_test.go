package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Dir      string   `json:"dir"`
	Gamertag string   `json:"gamertag"`
	Quiet    bool     `json:"quiet"`
	Mail     []string `json:"mail"`
	Nested   struct {
		Timeout int `json:"timeout"`
	} `json:"nested"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, filepath.Join("conf", "achrip.local.json5"), LocalPath(filepath.Join("conf", "achrip.json5")))
	require.Equal(t, "noext.local.", LocalPath("noext"))
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "achrip.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "achrip.json5")

	writeFile(t, name, `{
		// comments and trailing commas are allowed
		dir: "pages",
		gamertag: "Pedle Zelnip",
		nested: { timeout: 10 },
	}`)
	writeFile(t, LocalPath(name), `{ gamertag: "Someone Else", quiet: true }`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "pages", cfg.Dir)
	require.Equal(t, "Someone Else", cfg.Gamertag)
	require.True(t, cfg.Quiet)
	require.Equal(t, 10, cfg.Nested.Timeout)
}

func TestReadConfigInvalid(t *testing.T) {
	name := filepath.Join(t.TempDir(), "achrip.json5")
	writeFile(t, name, `{ dir: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigOr(t *testing.T) {
	defaults := testConfig{Dir: ".", Gamertag: "Pedle Zelnip"}
	defaults.Nested.Timeout = 30

	cfg, err := ReadConfigOr(filepath.Join(t.TempDir(), "achrip.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	name := filepath.Join(t.TempDir(), "achrip.json5")
	writeFile(t, name, `{ gamertag: "Other" }`)
	cfg, err = ReadConfigOr(name, defaults)
	require.NoError(t, err)
	require.Equal(t, ".", cfg.Dir)
	require.Equal(t, "Other", cfg.Gamertag)
	require.Equal(t, 30, cfg.Nested.Timeout)
}
