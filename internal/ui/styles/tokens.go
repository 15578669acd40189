package styles

// ColorToken names a themeable color. Users override tokens under
// theme.colors in the config file.
type ColorToken string

const (
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"
	TokenTextLink    ColorToken = "text.link"

	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	TokenSelectionBg ColorToken = "selection.bg"
	TokenCursor      ColorToken = "cursor"
	TokenNodeBlock   ColorToken = "node.block"

	TokenToolbarBg       ColorToken = "toolbar.bg"
	TokenToolbarButton   ColorToken = "toolbar.button"
	TokenToolbarActive   ColorToken = "toolbar.active"
	TokenToolbarActiveBg ColorToken = "toolbar.active.bg"
	TokenToolbarFocusBg  ColorToken = "toolbar.focus.bg"

	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
	TokenStatusInfo    ColorToken = "status.info"
)

// AllTokens lists every token in display order.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary, TokenTextMuted, TokenTextLink,
		TokenBorderDefault, TokenBorderFocus,
		TokenSelectionBg, TokenCursor, TokenNodeBlock,
		TokenToolbarBg, TokenToolbarButton, TokenToolbarActive, TokenToolbarActiveBg, TokenToolbarFocusBg,
		TokenStatusSuccess, TokenStatusWarning, TokenStatusError, TokenStatusInfo,
	}
}
