// Package flags provides feature flags read from the config file.
// Flags are read-only after initialization; unknown names are off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/inkwell/internal/log"
)

const (
	// FlagToolbarHelp shows the bubble menu's key hints in the status bar
	// while the menu is visible.
	FlagToolbarHelp = "toolbar-help"

	// FlagMarkdownHTML keeps underline, color and highlight in exports as
	// inline HTML instead of dropping them.
	FlagMarkdownHTML = "markdown-html"

	// FlagTraceSelection also traces selection-only transactions.
	FlagTraceSelection = "trace-selection"
)

// defaults apply when the config does not mention a flag.
var defaults = map[string]bool{
	FlagToolbarHelp:    true,
	FlagMarkdownHTML:   false,
	FlagTraceSelection: false,
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New layers flags from config over the defaults.
func New(flags map[string]bool) *Registry {
	merged := maps.Clone(defaults)
	for name, v := range flags {
		if _, known := defaults[name]; !known {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
		merged[name] = v
	}
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled reports whether name is on. Unknown flags and a nil registry are
// off.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}

// Known lists the flags inkwell understands.
func Known() []string {
	return slices.Sorted(maps.Keys(defaults))
}
