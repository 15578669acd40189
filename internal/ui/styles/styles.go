// Package styles holds inkwell's Lip Gloss colors and shared styles.
// Colors are package variables so ApplyTheme can swap them at startup.
package styles

import "github.com/charmbracelet/lipgloss"

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	// Text
	TextPrimaryColor = adaptive("#333333", "#CCCCCC")
	TextMutedColor   = adaptive("#999999", "#696969")
	TextLinkColor    = adaptive("#1E66F5", "#54A0FF")

	// Borders
	BorderDefaultColor = adaptive("#BBBBBB", "#696969")
	BorderFocusColor   = adaptive("#333333", "#FFFFFF")

	// Document
	SelectionBgColor = adaptive("#CCE4F7", "#3A4750")
	CursorColor      = adaptive("#000000", "#FFFFFF")
	NodeBlockColor   = adaptive("#8839EF", "#B48EAD")

	// Bubble menu
	ToolbarBgColor       = adaptive("#F2F2F2", "#1F2326")
	ToolbarButtonColor   = adaptive("#444444", "#BBBBBB")
	ToolbarActiveColor   = adaptive("#FFFFFF", "#FFFFFF")
	ToolbarActiveBgColor = adaptive("#1A5276", "#1A5276")
	ToolbarFocusBgColor  = adaptive("#3498DB", "#3498DB")

	// Status
	StatusSuccessColor = adaptive("#43BF6D", "#73F59F")
	StatusWarningColor = adaptive("#FECA57", "#FECA57")
	StatusErrorColor   = adaptive("#FF6B6B", "#FF8787")
	StatusInfoColor    = adaptive("#54A0FF", "#54A0FF")
)

// Shared styles, rebuilt by ApplyTheme.
var (
	ToolbarStyle        lipgloss.Style
	ButtonStyle         lipgloss.Style
	ButtonActiveStyle   lipgloss.Style
	ButtonFocusedStyle  lipgloss.Style
	ButtonDisabledStyle lipgloss.Style
	SeparatorStyle      lipgloss.Style
	HeaderStyle         lipgloss.Style
	StatusBarStyle      lipgloss.Style
	HintStyle           lipgloss.Style
	ErrorStyle          lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	ToolbarStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor).
		Background(ToolbarBgColor)

	button := lipgloss.NewStyle().Padding(0, 1).Background(ToolbarBgColor)
	ButtonStyle = button.Foreground(ToolbarButtonColor)
	ButtonActiveStyle = button.Bold(true).
		Foreground(ToolbarActiveColor).
		Background(ToolbarActiveBgColor)
	ButtonFocusedStyle = button.Bold(true).
		Foreground(ToolbarActiveColor).
		Background(ToolbarFocusBgColor).
		Underline(true)
	ButtonDisabledStyle = button.Foreground(TextMutedColor)
	SeparatorStyle = lipgloss.NewStyle().Foreground(BorderDefaultColor).Background(ToolbarBgColor)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor).Padding(0, 1)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Padding(0, 1)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
}
