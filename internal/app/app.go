// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/flags"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/tracing"
	"github.com/zjrosen/inkwell/internal/ui/editorview"
	helpoverlay "github.com/zjrosen/inkwell/internal/ui/help"
	"github.com/zjrosen/inkwell/internal/ui/logoverlay"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
	"github.com/zjrosen/inkwell/internal/ui/toaster"
	"github.com/zjrosen/inkwell/internal/ui/toolbar"
	"github.com/zjrosen/inkwell/internal/watcher"
)

// headerRows is the number of rows above the document.
const headerRows = 1

// Store is the subset of the document repository the app reads from.
type Store interface {
	Get(ctx context.Context, id string) (*sqlite.StoredDocument, error)
	Revision(ctx context.Context, id string) (int64, error)
}

// Options wires the app to its collaborators. Store and Saver may be nil, in
// which case the document lives in memory only.
type Options struct {
	Config     config.Config
	ConfigPath string
	Document   richtext.Document
	// Revision is the stored revision Document was loaded at, 0 for new documents.
	Revision int64
	Store    Store
	Saver    tracing.Saver
	// DBPath enables the external change watcher when WatchExternal is set.
	DBPath string
	Tracer trace.Tracer
	Flags  *flags.Registry
	Debug  bool
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	flags      *flags.Registry
	debugMode  bool

	engine   *richtext.Engine
	ed       editor.Editor
	recorder *tracing.Recorder

	view       editorview.Model
	toolbar    toolbar.Model
	toaster    toaster.Model
	logOverlay logoverlay.Model
	keyHelp    helpoverlay.Model
	showHelp   bool
	help       help.Model

	store          Store
	saver          tracing.Saver
	loadedRevision int64
	savedVersion   uint64
	saveSeq        int
	saving         bool
	manualPending  bool
	quitAfterSave  bool

	// mouse drag anchor
	dragging   bool
	dragAnchor editor.Pos

	ctx            context.Context
	cancel         context.CancelFunc
	engineListener *pubsub.Listener[editor.Transaction]
	logListener    *pubsub.Listener[string]
	watcher        *watcher.Watcher
	dbListener     *pubsub.Listener[string]

	width  int
	height int
}

// New creates the application model around a loaded document.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	reg := opts.Flags
	if reg == nil {
		reg = flags.New(opts.Config.Flags)
	}

	engine := richtext.New(opts.Document)
	ed := tracing.WrapEditor(ctx, engine, opts.Tracer)

	tbCfg := toolbar.DefaultConfig()
	tbCfg.HiddenNodeTypes = opts.Config.Toolbar.NodeTypes()
	tbCfg.Placement = overlay.ParsePlacement(opts.Config.Toolbar.Placement)
	tbCfg.Offset = opts.Config.Toolbar.Offset
	tbCfg.RecentColors = opts.Config.Toolbar.RecentColors

	m := Model{
		cfg:            opts.Config,
		configPath:     opts.ConfigPath,
		flags:          reg,
		debugMode:      opts.Debug,
		engine:         engine,
		ed:             ed,
		view:           editorview.New(0, 0),
		toolbar:        toolbar.New(tbCfg).WithEditor(ed),
		toaster:        toaster.New(),
		logOverlay:     logoverlay.New(),
		keyHelp:        helpoverlay.New(),
		help:           help.New(),
		store:          opts.Store,
		saver:          opts.Saver,
		loadedRevision: opts.Revision,
		savedVersion:   engine.ContentVersion(),
		ctx:            ctx,
		cancel:         cancel,
		engineListener: pubsub.NewListener[editor.Transaction](ctx, engine),
	}
	if opts.Tracer != nil {
		m.recorder = tracing.NewRecorder(opts.Tracer, reg.Enabled(flags.FlagTraceSelection))
	}
	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	if opts.Config.WatchExternal && opts.DBPath != "" && opts.Store != nil {
		m.startWatcher(opts.DBPath)
	}
	return m
}

func (m *Model) startWatcher(dbPath string) {
	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to create watcher", err)
		return
	}
	// Subscribe before Start so the first change is not missed.
	listener := pubsub.NewListener[string](m.ctx, w)
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to start watcher", err)
		_ = w.Stop()
		return
	}
	m.watcher = w
	m.dbListener = listener
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.engineListener.Listen(),
		m.logListener.Listen(),
		m.dbListener.Listen(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view = m.view.SetSize(msg.Width, m.bodyHeight())
		m.toolbar = m.toolbar.SetSize(msg.Width, msg.Height)
		m.logOverlay = m.logOverlay.SetSize(msg.Width, msg.Height)
		m.keyHelp = m.keyHelp.SetSize(msg.Width, msg.Height)
		return m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pubsub.Event[editor.Transaction]:
		return m.handleTransaction(msg)

	case pubsub.Event[string]:
		switch msg.Type {
		case pubsub.LogWritten:
			m.logOverlay = m.logOverlay.Refresh()
			return m, m.logListener.Listen()
		case pubsub.DBChanged:
			return m, tea.Batch(m.checkExternal(), m.dbListener.Listen())
		}
		return m, nil

	case autosaveMsg:
		if msg.seq != m.saveSeq || !m.Dirty() {
			return m, nil
		}
		return m.save(false)

	case savedMsg:
		return m.handleSaved(msg)

	case reloadMsg:
		return m.handleReload(msg)

	case toolbar.ColorUsedMsg:
		return m, m.persistRecent(msg.Recent)

	case recentSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Failed to save recent colors", msg.err)
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Show("Could not save recent colors", toaster.StyleWarn)
			return m, cmd
		}
		return m, nil

	case toolbar.HiddenMsg:
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil
	}

	// Popover results and cursor blinks belong to the toolbar.
	var cmd tea.Cmd
	m.toolbar, cmd = m.toolbar.Update(msg)
	m, refreshCmd := m.refresh()
	return m, tea.Batch(cmd, refreshCmd)
}

// refresh re-renders the document, re-anchors the toolbar and re-derives its
// state. Every handler that may have changed the engine ends here.
func (m Model) refresh() (Model, tea.Cmd) {
	m.view = m.view.Render(m.engine.Document(), m.engine.Selection(), !m.toolbar.WantsKeys())
	if r, ok := m.view.Anchor(); ok {
		r.Top += headerRows
		r.Bottom += headerRows
		m.toolbar = m.toolbar.SetAnchor(r)
	}
	var cmd tea.Cmd
	m.toolbar, cmd = m.toolbar.Sync()
	return m, cmd
}

func (m Model) handleTransaction(ev pubsub.Event[editor.Transaction]) (tea.Model, tea.Cmd) {
	tx := ev.Payload
	m.recorder.Record(m.ctx, tx)

	cmds := []tea.Cmd{m.engineListener.Listen()}
	if ev.Type == pubsub.DocChanged && !isLoad(tx) && m.cfg.AutoSave && m.saver != nil {
		m.saveSeq++
		cmds = append(cmds, scheduleAutosave(m.saveSeq, m.cfg.AutoSaveDebounce))
	}
	return m, tea.Batch(cmds...)
}

func isLoad(tx editor.Transaction) bool {
	return len(tx.Steps) == 1 && tx.Steps[0] == "load"
}

// Dirty reports whether the buffer has content changes not yet saved.
func (m Model) Dirty() bool {
	return m.engine.ContentVersion() != m.savedVersion
}

// Engine returns the editing engine.
func (m Model) Engine() *richtext.Engine {
	return m.engine
}

// Toolbar returns the bubble menu.
func (m Model) Toolbar() toolbar.Model {
	return m.toolbar
}

func (m Model) bodyHeight() int {
	h := m.height - headerRows
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	return max(h, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	rows := []string{m.renderHeader(), m.view.View()}
	if m.cfg.UI.ShowStatusBar {
		rows = append(rows, m.renderStatusBar())
	}
	view := lipgloss.JoinVertical(lipgloss.Left, rows...)

	view = m.toolbar.Overlay(view)
	if m.showHelp {
		view = m.keyHelp.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) renderHeader() string {
	doc := m.engine.Document()
	title := doc.Title
	if title == "" {
		title = "untitled"
	}
	if m.Dirty() {
		title += " ●"
	}
	right := styles.HintStyle.Render(fmt.Sprintf("rev %d", m.loadedRevision))
	left := styles.HeaderStyle.Render(title)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.StringWithTail(left, uint(max(m.width, 0)), "…") // #nosec G115 -- clamped to non-negative
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderStatusBar() string {
	var bindings []key.Binding
	if m.toolbar.Visible() && m.flags.Enabled(flags.FlagToolbarHelp) {
		bindings = m.toolbar.ShortHelp()
	} else {
		bindings = keys.Editor.ShortHelp()
	}
	m.help.Width = m.width
	line := m.help.ShortHelpView(bindings)
	line = truncate.StringWithTail(line, uint(max(m.width-2, 0)), "…") // #nosec G115 -- clamped to non-negative
	return styles.StatusBarStyle.Render(line)
}

// Close releases the watcher, subscriptions and the engine.
func (m *Model) Close() error {
	m.cancel()
	var err error
	if m.watcher != nil {
		err = m.watcher.Stop()
	}
	m.engine.Close()
	return err
}
