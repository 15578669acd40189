// Package cmd contains the inkwell command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/inkwell/internal/app"
	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/flags"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/tracing"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".inkwell/config.yaml"
	debugLogPath    = "debug.log"
	defaultTitle    = "Scratch"
)

var (
	version   = "dev"
	cfgFile   string
	dbFlag    string
	debugFlag bool

	cfg      config.Config
	cfgPath  string
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "inkwell [title]",
	Short: "A terminal notes editor with a floating formatting toolbar",
	Long: `Open the note with the given title, creating it on first save.

Select text with shift+arrows or the mouse and a formatting toolbar appears
next to the selection. Notes are stored in a local sqlite database and saved
automatically.`,
	Version:           version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .inkwell/config.yaml or ~/.config/inkwell/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "",
		"path to the notes database")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log to "+debugLogPath)
}

// newViper returns a viper instance seeded with defaults. The "::" delimiter
// keeps dotted theme tokens like "text.primary" as single keys.
func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	d := config.Defaults()
	v.SetDefault("storage::db_path", d.Storage.DBPath)
	v.SetDefault("auto_save", d.AutoSave)
	v.SetDefault("auto_save_debounce", d.AutoSaveDebounce)
	v.SetDefault("watch_external", d.WatchExternal)
	v.SetDefault("ui::show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui::markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui::mouse", d.UI.Mouse)
	v.SetDefault("toolbar::placement", d.Toolbar.Placement)
	v.SetDefault("toolbar::offset", d.Toolbar.Offset)
	v.SetDefault("toolbar::hidden_node_types", d.Toolbar.HiddenNodeTypes)
	v.SetDefault("tracing::enabled", d.Tracing.Enabled)
	v.SetDefault("tracing::exporter", d.Tracing.Exporter)
	v.SetDefault("tracing::otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", d.Tracing.SampleRate)
	return v
}

func initConfig() {
	var err error
	cfg, cfgPath, err = loadConfig(newViper(), cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
}

// loadConfig reads explicit, or looks up .inkwell/config.yaml and then
// ~/.config/inkwell/config.yaml. When neither exists a commented default is
// written to .inkwell/config.yaml. It returns the config and the file path
// edits should be saved to.
func loadConfig(v *viper.Viper, explicit string) (config.Config, string, error) {
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if _, err := os.Stat(localConfigPath); err == nil {
		v.SetConfigFile(localConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "inkwell"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	var readErr error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				v.SetConfigFile(localConfigPath)
				_ = v.ReadInConfig()
			}
		} else {
			readErr = fmt.Errorf("reading config: %w", err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Defaults(), "", fmt.Errorf("decoding config: %w", err)
	}

	path := v.ConfigFileUsed()
	if path == "" {
		path = localConfigPath
	}
	return c, path, readErr
}

// setup runs before every command: flag overrides, debug logging and
// validation.
func setup(_ *cobra.Command, _ []string) error {
	if debugFlag || os.Getenv("INKWELL_DEBUG") != "" {
		done, err := log.Init(debugLogPath)
		if err != nil {
			return err
		}
		closeLog = done
		debugFlag = true
		log.Info(log.CatConfig, "Loaded config", "path", cfgPath)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// dbPath returns the --db flag as given, or the configured path resolved
// against the config file.
func dbPath() string {
	if dbFlag != "" {
		return dbFlag
	}
	return config.ResolveDBPath(cfg.Storage.DBPath, cfgPath)
}

func openDB() (*sqlite.DB, error) {
	db, err := sqlite.NewDB(dbPath())
	if err != nil {
		return nil, fmt.Errorf("opening notes database: %w", err)
	}
	return db, nil
}

// loadDocument returns the stored document titled title, or a fresh empty
// one with a new ID. The revision is 0 for documents not yet saved.
func loadDocument(ctx context.Context, repo *sqlite.DocumentRepository, title string) (richtext.Document, int64, error) {
	stored, err := repo.GetByTitle(ctx, title)
	var nf *sqlite.DocumentNotFoundError
	if errors.As(err, &nf) {
		log.Info(log.CatDB, "Creating document", "title", title)
		return richtext.Document{ID: uuid.NewString(), Title: title}, 0, nil
	}
	if err != nil {
		return richtext.Document{}, 0, err
	}
	return stored.Document, stored.Revision, nil
}

func tracingConfig(tc config.TracingConfig) tracing.Config {
	out := tracing.DefaultConfig()
	out.Enabled = tc.Enabled
	if tc.Exporter != "" {
		out.Exporter = tc.Exporter
	}
	out.FilePath = tc.FilePath
	if out.FilePath == "" {
		out.FilePath = config.DefaultTracesFilePath()
	}
	if tc.OTLPEndpoint != "" {
		out.OTLPEndpoint = tc.OTLPEndpoint
	}
	if tc.SampleRate > 0 {
		out.SampleRate = tc.SampleRate
	}
	return out
}

func runApp(cmd *cobra.Command, args []string) error {
	styles.DetectColorProfile()
	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	if err := keys.Toolbar.ApplyOverrides(cfg.Toolbar.Keybindings); err != nil {
		return fmt.Errorf("invalid toolbar keybindings: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	repo := db.DocumentRepository()

	title := defaultTitle
	if len(args) == 1 {
		title = args[0]
	}
	doc, rev, err := loadDocument(ctx, repo, title)
	if err != nil {
		return fmt.Errorf("loading %q: %w", title, err)
	}

	provider, err := tracing.NewProvider(tracingConfig(cfg.Tracing))
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	opts := app.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Document:   doc,
		Revision:   rev,
		Store:      repo,
		Saver:      repo,
		DBPath:     db.Path(),
		Flags:      flags.New(cfg.Flags),
		Debug:      debugFlag,
	}
	if provider.Enabled() {
		opts.Tracer = provider.Tracer()
		opts.Saver = tracing.WrapSaver(repo, opts.Tracer)
	}

	model := app.New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&model, programOpts...)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	defer func() { closeLog() }()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
