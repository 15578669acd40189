// Package config provides configuration types, defaults and validation for
// inkwell.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/markdown"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// Config holds all configuration options for inkwell.
type Config struct {
	Storage          StorageConfig   `mapstructure:"storage"`
	AutoSave         bool            `mapstructure:"auto_save"`
	AutoSaveDebounce time.Duration   `mapstructure:"auto_save_debounce"`
	WatchExternal    bool            `mapstructure:"watch_external"`
	UI               UIConfig        `mapstructure:"ui"`
	Toolbar          ToolbarConfig   `mapstructure:"toolbar"`
	Theme            ThemeConfig     `mapstructure:"theme"`
	Tracing          TracingConfig   `mapstructure:"tracing"`
	Flags            map[string]bool `mapstructure:"flags"`
}

// StorageConfig locates the document database.
type StorageConfig struct {
	// DBPath is the sqlite file. Relative paths resolve against the
	// config file's directory.
	DBPath string `mapstructure:"db_path"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light" or "notty"
	Mouse         bool   `mapstructure:"mouse"`
}

// ToolbarConfig configures the bubble menu.
type ToolbarConfig struct {
	// Placement is "top" (default) or "bottom" relative to the selection.
	Placement string `mapstructure:"placement"`
	// Offset is the number of rows between the selection and the menu.
	Offset int `mapstructure:"offset"`
	// HiddenNodeTypes are block types inside which the menu never shows.
	HiddenNodeTypes []string `mapstructure:"hidden_node_types"`
	// Keybindings overrides toolbar shortcuts, e.g. bold: ctrl+b.
	Keybindings map[string]string `mapstructure:"keybindings"`
	// RecentColors is maintained by inkwell; newest first.
	RecentColors []string `mapstructure:"recent_colors"`
}

// NodeTypes converts HiddenNodeTypes for the toolbar.
func (t ToolbarConfig) NodeTypes() []editor.NodeType {
	out := make([]editor.NodeType, 0, len(t.HiddenNodeTypes))
	for _, s := range t.HiddenNodeTypes {
		out = append(out, editor.NodeType(s))
	}
	return out
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base: "default", "dracula",
	// "nord" or "high-contrast".
	Preset string `mapstructure:"preset"`

	// Colors overrides individual tokens. Nested YAML and quoted dot
	// notation ("text.primary") are both accepted.
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// Styles converts the theme for styles.ApplyTheme.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// yaml sometimes produces map[any]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds OpenTelemetry options for editor command tracing.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter is "none", "file", "stdout" or "otlp". Default: "file".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output for the file exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector for the otlp exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultDBPath is the database location relative to the working directory.
const DefaultDBPath = ".inkwell/inkwell.db"

// DefaultTracesFilePath returns ~/.config/inkwell/traces/traces.jsonl, or ""
// without a home directory.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkwell", "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	hidden := make([]string, 0, 5)
	for _, t := range editor.StructuralNodeTypes() {
		hidden = append(hidden, string(t))
	}
	return Config{
		Storage:          StorageConfig{DBPath: DefaultDBPath},
		AutoSave:         true,
		AutoSaveDebounce: 750 * time.Millisecond,
		WatchExternal:    true,
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
			Mouse:         true,
		},
		Toolbar: ToolbarConfig{
			Placement:       "top",
			Offset:          1,
			HiddenNodeTypes: hidden,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate runs every section validator.
func Validate(cfg Config) error {
	if err := ValidateAutoSave(cfg); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateToolbar(cfg.Toolbar); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateAutoSave checks the save debounce.
func ValidateAutoSave(cfg Config) error {
	if cfg.AutoSaveDebounce < 0 {
		return fmt.Errorf("auto_save_debounce must not be negative, got %s", cfg.AutoSaveDebounce)
	}
	if cfg.AutoSaveDebounce > time.Minute {
		return fmt.Errorf("auto_save_debounce must be at most 1m, got %s", cfg.AutoSaveDebounce)
	}
	return nil
}

// ValidateUI checks UI options.
func ValidateUI(ui UIConfig) error {
	if markdown.ValidStyle(ui.MarkdownStyle) {
		return nil
	}
	return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\" or \"notty\", got %q", ui.MarkdownStyle)
}

// ValidateToolbar checks bubble menu options.
func ValidateToolbar(tb ToolbarConfig) error {
	switch tb.Placement {
	case "", "top", "bottom":
	default:
		return fmt.Errorf("toolbar.placement must be \"top\" or \"bottom\", got %q", tb.Placement)
	}

	if tb.Offset < 0 || tb.Offset > 10 {
		return fmt.Errorf("toolbar.offset must be between 0 and 10, got %d", tb.Offset)
	}

	for i, name := range tb.HiddenNodeTypes {
		t := editor.NodeType(name)
		if !t.IsStructural() && t != editor.NodeParagraph {
			return fmt.Errorf("toolbar.hidden_node_types[%d]: unknown node type %q", i, name)
		}
	}

	actions := keys.ToolbarActions()
	for name, keystroke := range tb.Keybindings {
		if !slices.Contains(actions, name) {
			return fmt.Errorf("toolbar.keybindings: unknown action %q (valid: %s)", name, strings.Join(actions, ", "))
		}
		if strings.TrimSpace(keystroke) == "" {
			return fmt.Errorf("toolbar.keybindings.%s: key is required", name)
		}
	}

	for i, hex := range tb.RecentColors {
		if !styles.IsHexColor(hex) {
			return fmt.Errorf("toolbar.recent_colors[%d]: invalid hex color %q", i, hex)
		}
	}
	return nil
}

// ValidateTracing checks tracing options. Empty values use defaults.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# Inkwell Configuration

# Document database
storage:
  db_path: .inkwell/inkwell.db   # relative paths resolve against this file's directory

# Save automatically after edits
auto_save: true
auto_save_debounce: 750ms

# Reload the open document when another inkwell process saves it
watch_external: true

# UI settings
ui:
  show_status_bar: true
  markdown_style: dark   # export --render style: dark, light or notty
  mouse: true            # click to place the caret and press toolbar buttons

# Bubble menu (the floating formatting toolbar)
toolbar:
  placement: top   # top or bottom of the selection; flips when there is no room
  offset: 1        # empty rows between the selection and the menu
  hidden_node_types: [page, database, folder, file, tempFile]
  # keybindings:
  #   bold: ctrl+b
  #   italic: alt+i
  #   link: alt+l
  #   focus: ctrl+t
  # recent_colors is written by inkwell

# Theme configuration
theme:
  # preset: dracula   # default, dracula, nord, high-contrast
  # colors:
  #   text.primary: "#FFFFFF"
  #   toolbar.bg: "#1F2326"

# Trace editor commands with OpenTelemetry
# tracing:
#   enabled: false
#   exporter: file              # none, file, stdout, otlp
#   file_path: ~/.config/inkwell/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Feature flags
# flags:
#   toolbar-help: true
`
}

// WriteDefaultConfig creates a config file at configPath with default settings
// and comments, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// ResolveDBPath resolves a relative DBPath against the config file's
// directory, or its parent when the config lives in a .inkwell directory.
// Without a config file the path is returned unchanged.
func ResolveDBPath(dbPath, configPath string) string {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if rest, ok := strings.CutPrefix(dbPath, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(dbPath) || configPath == "" {
		return dbPath
	}
	base := filepath.Dir(configPath)
	if filepath.Base(base) == ".inkwell" {
		base = filepath.Dir(base)
	}
	return filepath.Join(base, dbPath)
}
