package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// loadConfigFromYAML reads yaml the way the root command does: defaults
// first, then the file, with "::" as the key delimiter so dotted color tokens
// survive.
func loadConfigFromYAML(t *testing.T, yaml string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o644))

	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults_Validate(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaults_Toolbar(t *testing.T) {
	tb := Defaults().Toolbar
	require.Equal(t, "top", tb.Placement)
	require.Equal(t, 1, tb.Offset)
	require.Equal(t, []string{"page", "database", "folder", "file", "tempFile"}, tb.HiddenNodeTypes)
	require.Len(t, tb.NodeTypes(), 5)
}

func TestDefaultTemplate_MatchesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())
	require.NoError(t, Validate(cfg))

	want := Defaults()
	require.Equal(t, want.Storage, cfg.Storage)
	require.Equal(t, want.AutoSave, cfg.AutoSave)
	require.Equal(t, want.AutoSaveDebounce, cfg.AutoSaveDebounce)
	require.Equal(t, want.UI, cfg.UI)
	require.Equal(t, want.Toolbar.Placement, cfg.Toolbar.Placement)
	require.Equal(t, want.Toolbar.Offset, cfg.Toolbar.Offset)
	require.Equal(t, want.Toolbar.HiddenNodeTypes, cfg.Toolbar.HiddenNodeTypes)
}

func TestLoad_Overrides(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
auto_save: false
auto_save_debounce: 2s
toolbar:
  placement: bottom
  offset: 0
  hidden_node_types: [page]
  keybindings:
    bold: ctrl+b
  recent_colors: ["#ff0000", "#00FF00"]
`)
	require.NoError(t, Validate(cfg))
	require.False(t, cfg.AutoSave)
	require.Equal(t, 2*time.Second, cfg.AutoSaveDebounce)
	require.Equal(t, "bottom", cfg.Toolbar.Placement)
	require.Equal(t, 0, cfg.Toolbar.Offset)
	require.Equal(t, []string{"page"}, cfg.Toolbar.HiddenNodeTypes)
	require.Equal(t, map[string]string{"bold": "ctrl+b"}, cfg.Toolbar.Keybindings)
	require.Equal(t, []string{"#ff0000", "#00FF00"}, cfg.Toolbar.RecentColors)
}

func TestValidateToolbar(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tb *ToolbarConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(*ToolbarConfig) {}},
		{name: "empty placement uses default", mutate: func(tb *ToolbarConfig) { tb.Placement = "" }},
		{name: "bad placement", mutate: func(tb *ToolbarConfig) { tb.Placement = "left" }, wantErr: "toolbar.placement"},
		{name: "negative offset", mutate: func(tb *ToolbarConfig) { tb.Offset = -1 }, wantErr: "toolbar.offset"},
		{name: "huge offset", mutate: func(tb *ToolbarConfig) { tb.Offset = 11 }, wantErr: "toolbar.offset"},
		{name: "unknown node type", mutate: func(tb *ToolbarConfig) {
			tb.HiddenNodeTypes = []string{"page", "table"}
		}, wantErr: `hidden_node_types[1]: unknown node type "table"`},
		{name: "paragraph may be hidden", mutate: func(tb *ToolbarConfig) {
			tb.HiddenNodeTypes = []string{"paragraph"}
		}},
		{name: "unknown action", mutate: func(tb *ToolbarConfig) {
			tb.Keybindings = map[string]string{"embolden": "ctrl+b"}
		}, wantErr: `unknown action "embolden"`},
		{name: "empty keystroke", mutate: func(tb *ToolbarConfig) {
			tb.Keybindings = map[string]string{"bold": " "}
		}, wantErr: "toolbar.keybindings.bold"},
		{name: "bad recent color", mutate: func(tb *ToolbarConfig) {
			tb.RecentColors = []string{"#fff", "red"}
		}, wantErr: `recent_colors[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := Defaults().Toolbar
			tt.mutate(&tb)
			err := ValidateToolbar(tb)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateAutoSave(t *testing.T) {
	cfg := Defaults()
	cfg.AutoSaveDebounce = -time.Second
	require.ErrorContains(t, ValidateAutoSave(cfg), "must not be negative")

	cfg.AutoSaveDebounce = 2 * time.Minute
	require.ErrorContains(t, ValidateAutoSave(cfg), "at most 1m")

	cfg.AutoSaveDebounce = 0
	require.NoError(t, ValidateAutoSave(cfg))
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "light"}))
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "notty"}))
	require.NoError(t, ValidateUI(UIConfig{}))
	require.ErrorContains(t, ValidateUI(UIConfig{MarkdownStyle: "sepia"}), "ui.markdown_style")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{name: "defaults", tracing: Defaults().Tracing},
		{name: "sample rate too high", tracing: TracingConfig{SampleRate: 1.5}, wantErr: "sample_rate"},
		{name: "sample rate negative", tracing: TracingConfig{SampleRate: -0.1}, wantErr: "sample_rate"},
		{name: "bad exporter", tracing: TracingConfig{Exporter: "jaeger"}, wantErr: "tracing.exporter"},
		{name: "file without path", tracing: TracingConfig{Enabled: true, Exporter: "file"}, wantErr: "file_path"},
		{name: "file without path but disabled", tracing: TracingConfig{Exporter: "file"}},
		{name: "otlp without endpoint", tracing: TracingConfig{Enabled: true, Exporter: "otlp"}, wantErr: "otlp_endpoint"},
		{name: "stdout", tracing: TracingConfig{Enabled: true, Exporter: "stdout", SampleRate: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".inkwell", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestResolveDBPath(t *testing.T) {
	require.Equal(t, DefaultDBPath, ResolveDBPath("", ""))
	require.Equal(t, "/abs/notes.db", ResolveDBPath("/abs/notes.db", "/home/u/.inkwell/config.yaml"))
	require.Equal(t, "/proj/.inkwell/inkwell.db", ResolveDBPath("", "/proj/.inkwell/config.yaml"))
	require.Equal(t, "/home/u/.config/inkwell/notes.db", ResolveDBPath("notes.db", "/home/u/.config/inkwell/config.yaml"))
}
