package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadWritesDefaultConfig(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")

	m, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, Default(), m.Get())
	assert.DirExists(t, filepath.Join(dir, "static", "charts"))
	assert.DirExists(t, filepath.Join(dir, "data"))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Get(), again.Get())
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset:\n  path: ./songs.db\napi:\n  filter_limit: 5\n"), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	cfg := m.Get()
	assert.Equal(t, "./songs.db", cfg.Dataset.Path)
	assert.Equal(t, 5, cfg.API.FilterLimit)
	assert.Equal(t, 50, cfg.API.ListLimit)
	assert.Equal(t, 2010, cfg.Dataset.YearFrom)
	assert.Equal(t, uint32(5000), cfg.Server.Port)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"inverted window": "dataset:\n  year_from: 2020\n  year_to: 2010\n",
		"zero limit":      "api:\n  list_limit: 0\n",
		"bad level":       "logger:\n  level: loud\n",
		"not yaml":        "dataset: [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decode(strings.NewReader(content))
			assert.Error(t, err)
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDataset, "/tmp/other.csv")
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvTelegram, "secret-token")

	cfg, err := decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.csv", cfg.Dataset.Path)
	assert.Equal(t, uint32(8080), cfg.Server.Port)
	assert.Equal(t, "secret-token", cfg.Telegram.Token)

	t.Setenv(EnvPort, "http")
	_, err = decode(strings.NewReader(""))
	assert.Error(t, err)
}

func TestRedaction(t *testing.T) {
	cfg := Default()
	cfg.Telegram.Token = "secret-token"
	m := NewManager(cfg)

	assert.NotContains(t, m.GetJSON(), "secret-token")
	assert.NotContains(t, m.GetYAML(), "secret-token")
	assert.Contains(t, m.GetYAML(), "<redacted>")
	assert.Equal(t, "secret-token", m.Get().Telegram.Token, "redaction works on a copy")
}

func TestYearWindow(t *testing.T) {
	w := Default().YearWindow()
	assert.True(t, w.Contains(2010))
	assert.True(t, w.Contains(2024))
	assert.False(t, w.Contains(2025))
}

func TestSaveAndReload(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")

	m := NewManager(Default())
	cfg := Default()
	cfg.Charts.Width = 1200
	cfg.Dataset.Watch = true
	m.Update(cfg)
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1200, loaded.Get().Charts.Width)
	assert.True(t, loaded.Get().Dataset.Watch)
}
