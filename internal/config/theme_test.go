package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/ui/styles"
)

func TestThemeConfig_FlattenedColors(t *testing.T) {
	theme := ThemeConfig{Colors: map[string]any{
		"text.primary": "#FF0000",
		"toolbar": map[string]any{
			"bg":     "#111111",
			"active": map[any]any{"bg": "#222222"},
		},
	}}

	require.Equal(t, map[string]string{
		"text.primary":      "#FF0000",
		"toolbar.bg":        "#111111",
		"toolbar.active.bg": "#222222",
	}, theme.FlattenedColors())
}

func TestThemeConfig_FromYAML(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
theme:
  preset: nord
  colors:
    text.primary: "#FF0000"
    toolbar:
      bg: "#101010"
`)
	require.Equal(t, "nord", cfg.Theme.Preset)

	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })
	require.NoError(t, styles.ApplyTheme(cfg.Theme.Styles()))
	require.Equal(t, "#FF0000", styles.TextPrimaryColor.Dark)
	require.Equal(t, "#101010", styles.ToolbarBgColor.Dark)
}

func TestThemeConfig_InvalidToken(t *testing.T) {
	theme := ThemeConfig{Colors: map[string]any{"no.such.token": "#FFFFFF"}}
	require.ErrorContains(t, styles.ApplyTheme(theme.Styles()), "unknown color token")
}
