package styles

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeConfig mirrors config.ThemeConfig to keep styles free of config.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback run after ApplyTheme changed colors,
// for packages that cache styles of their own.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ApplyTheme layers the preset and then the per-token overrides on top of
// the default preset.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !slices.Contains(AllTokens(), token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !IsHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	for _, fn := range styleRebuilders {
		fn()
	}
	return nil
}

func applyColors(colors map[ColorToken]string) {
	set := func(dst *lipgloss.AdaptiveColor, token ColorToken) {
		if c, ok := colors[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: c, Dark: c}
		}
	}
	set(&TextPrimaryColor, TokenTextPrimary)
	set(&TextMutedColor, TokenTextMuted)
	set(&TextLinkColor, TokenTextLink)
	set(&BorderDefaultColor, TokenBorderDefault)
	set(&BorderFocusColor, TokenBorderFocus)
	set(&SelectionBgColor, TokenSelectionBg)
	set(&CursorColor, TokenCursor)
	set(&NodeBlockColor, TokenNodeBlock)
	set(&ToolbarBgColor, TokenToolbarBg)
	set(&ToolbarButtonColor, TokenToolbarButton)
	set(&ToolbarActiveColor, TokenToolbarActive)
	set(&ToolbarActiveBgColor, TokenToolbarActiveBg)
	set(&ToolbarFocusBgColor, TokenToolbarFocusBg)
	set(&StatusSuccessColor, TokenStatusSuccess)
	set(&StatusWarningColor, TokenStatusWarning)
	set(&StatusErrorColor, TokenStatusError)
	set(&StatusInfoColor, TokenStatusInfo)
}

// IsHexColor accepts #RGB and #RRGGBB.
func IsHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}

// DetectColorProfile drops to plain ASCII output when NO_COLOR is set.
func DetectColorProfile() termenv.Profile {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		lipgloss.SetColorProfile(termenv.Ascii)
		return termenv.Ascii
	}
	return lipgloss.ColorProfile()
}
