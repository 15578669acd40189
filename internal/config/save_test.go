package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSaveRecentColors_PreservesComments(t *testing.T) {
	path := writeFile(t, `# Inkwell Configuration
auto_save: true # keep saving

toolbar:
  placement: top   # above the selection
  offset: 1
`)

	require.NoError(t, SaveRecentColors(path, []string{"#ff0000", "#00ff00"}))

	out := readFile(t, path)
	require.Contains(t, out, "# Inkwell Configuration")
	require.Contains(t, out, "# keep saving")
	require.Contains(t, out, "# above the selection")
	require.Contains(t, out, `recent_colors: ["#ff0000", "#00ff00"]`)

	cfg := loadConfigFromYAML(t, out)
	require.Equal(t, []string{"#ff0000", "#00ff00"}, cfg.Toolbar.RecentColors)
	require.Equal(t, "top", cfg.Toolbar.Placement)
	require.True(t, cfg.AutoSave)
}

func TestSaveRecentColors_ReplacesExisting(t *testing.T) {
	path := writeFile(t, `toolbar:
  recent_colors: ["#111111", "#222222", "#333333"]
`)

	require.NoError(t, SaveRecentColors(path, []string{"#444444"}))

	cfg := loadConfigFromYAML(t, readFile(t, path))
	require.Equal(t, []string{"#444444"}, cfg.Toolbar.RecentColors)
}

func TestSaveRecentColors_CreatesSection(t *testing.T) {
	path := writeFile(t, "auto_save: false\n")

	require.NoError(t, SaveRecentColors(path, []string{"#abcdef"}))

	cfg := loadConfigFromYAML(t, readFile(t, path))
	require.False(t, cfg.AutoSave)
	require.Equal(t, []string{"#abcdef"}, cfg.Toolbar.RecentColors)
}

func TestSaveRecentColors_EmptySectionFromTemplate(t *testing.T) {
	path := writeFile(t, "toolbar:\n  # nothing yet\n")

	require.NoError(t, SaveRecentColors(path, []string{"#abcdef"}))

	cfg := loadConfigFromYAML(t, readFile(t, path))
	require.Equal(t, []string{"#abcdef"}, cfg.Toolbar.RecentColors)
}

func TestSaveRecentColors_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SaveRecentColors(path, []string{"#abcdef"}))

	cfg := loadConfigFromYAML(t, readFile(t, path))
	require.Equal(t, []string{"#abcdef"}, cfg.Toolbar.RecentColors)
}

func TestSaveRecentColors_DefaultTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveRecentColors(path, []string{"#fbbc88"}))

	out := readFile(t, path)
	require.Contains(t, out, "# Bubble menu")
	cfg := loadConfigFromYAML(t, out)
	require.NoError(t, Validate(cfg))
	require.Equal(t, []string{"#fbbc88"}, cfg.Toolbar.RecentColors)
	require.Equal(t, Defaults().Toolbar.HiddenNodeTypes, cfg.Toolbar.HiddenNodeTypes)
}

func TestSaveThemePreset(t *testing.T) {
	path := writeFile(t, "theme:\n  # preset: dracula\n")

	require.NoError(t, SaveThemePreset(path, "nord"))

	cfg := loadConfigFromYAML(t, readFile(t, path))
	require.Equal(t, "nord", cfg.Theme.Preset)
}

func TestSave_RejectsNonMapping(t *testing.T) {
	path := writeFile(t, "- just\n- a list\n")
	require.ErrorContains(t, SaveRecentColors(path, nil), "not a mapping")
}

func TestSave_NoTempFilesLeft(t *testing.T) {
	path := writeFile(t, "auto_save: true\n")
	require.NoError(t, SaveRecentColors(path, []string{"#000000"}))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
