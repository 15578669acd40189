package styles

// Preset is a complete named color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains the built-in themes.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"dracula":       DraculaPreset,
	"nord":          NordPreset,
	"high-contrast": HighContrastPreset,
}

// DefaultPreset is the stock inkwell palette.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default inkwell theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextMuted:       "#696969",
		TokenTextLink:        "#54A0FF",
		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenSelectionBg:     "#3A4750",
		TokenCursor:          "#FFFFFF",
		TokenNodeBlock:       "#B48EAD",
		TokenToolbarBg:       "#1F2326",
		TokenToolbarButton:   "#BBBBBB",
		TokenToolbarActive:   "#FFFFFF",
		TokenToolbarActiveBg: "#1A5276",
		TokenToolbarFocusBg:  "#3498DB",
		TokenStatusSuccess:   "#73F59F",
		TokenStatusWarning:   "#FECA57",
		TokenStatusError:     "#FF8787",
		TokenStatusInfo:      "#54A0FF",
	},
}

// DraculaPreset follows draculatheme.com.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2",
		TokenTextMuted:       "#6272A4",
		TokenTextLink:        "#8BE9FD",
		TokenBorderDefault:   "#44475A",
		TokenBorderFocus:     "#BD93F9",
		TokenSelectionBg:     "#44475A",
		TokenCursor:          "#F8F8F2",
		TokenNodeBlock:       "#FF79C6",
		TokenToolbarBg:       "#21222C",
		TokenToolbarButton:   "#F8F8F2",
		TokenToolbarActive:   "#282A36",
		TokenToolbarActiveBg: "#BD93F9",
		TokenToolbarFocusBg:  "#FF79C6",
		TokenStatusSuccess:   "#50FA7B",
		TokenStatusWarning:   "#F1FA8C",
		TokenStatusError:     "#FF5555",
		TokenStatusInfo:      "#8BE9FD",
	},
}

// NordPreset follows nordtheme.com.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4",
		TokenTextMuted:       "#4C566A",
		TokenTextLink:        "#88C0D0",
		TokenBorderDefault:   "#4C566A",
		TokenBorderFocus:     "#88C0D0",
		TokenSelectionBg:     "#434C5E",
		TokenCursor:          "#D8DEE9",
		TokenNodeBlock:       "#B48EAD",
		TokenToolbarBg:       "#2E3440",
		TokenToolbarButton:   "#D8DEE9",
		TokenToolbarActive:   "#2E3440",
		TokenToolbarActiveBg: "#88C0D0",
		TokenToolbarFocusBg:  "#5E81AC",
		TokenStatusSuccess:   "#A3BE8C",
		TokenStatusWarning:   "#EBCB8B",
		TokenStatusError:     "#BF616A",
		TokenStatusInfo:      "#81A1C1",
	},
}

// HighContrastPreset maximises contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextMuted:       "#BBBBBB",
		TokenTextLink:        "#00FFFF",
		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00",
		TokenSelectionBg:     "#0000AA",
		TokenCursor:          "#FFFF00",
		TokenNodeBlock:       "#FF00FF",
		TokenToolbarBg:       "#000000",
		TokenToolbarButton:   "#FFFFFF",
		TokenToolbarActive:   "#000000",
		TokenToolbarActiveBg: "#FFFF00",
		TokenToolbarFocusBg:  "#00FFFF",
		TokenStatusSuccess:   "#00FF00",
		TokenStatusWarning:   "#FFFF00",
		TokenStatusError:     "#FF0000",
		TokenStatusInfo:      "#00FFFF",
	},
}
