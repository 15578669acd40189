package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/ui/toaster"
)

// autosaveMsg fires after the debounce; only the latest seq saves.
type autosaveMsg struct {
	seq int
}

// savedMsg reports a finished save of the content at version.
type savedMsg struct {
	result  sqlite.SaveResult
	version uint64
	manual  bool
	err     error
}

// reloadMsg carries a newer stored document, or nothing when the stored
// copy is not newer.
type reloadMsg struct {
	doc *sqlite.StoredDocument
	err error
}

type recentSavedMsg struct {
	err error
}

func scheduleAutosave(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return autosaveMsg{seq: seq} })
}

// save persists the current document. Manual saves toast on success.
func (m Model) save(manual bool) (Model, tea.Cmd) {
	if m.saver == nil {
		if manual {
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Show("No database configured", toaster.StyleWarn)
			return m, cmd
		}
		return m, nil
	}
	if m.saving {
		// The in-flight save's completion runs the follow-up.
		if manual {
			m.manualPending = true
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Show("Save in progress", toaster.StyleInfo)
			return m, cmd
		}
		return m, nil
	}
	m.saving = true

	doc := m.engine.Document()
	version := m.engine.ContentVersion()
	saver, ctx := m.saver, m.ctx
	return m, func() tea.Msg {
		res, err := saver.Save(ctx, doc)
		return savedMsg{result: res, version: version, manual: manual, err: err}
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	manual := msg.manual || m.manualPending
	m.manualPending = false

	if msg.err != nil {
		log.ErrorErr(log.CatDB, "Save failed", msg.err)
		if m.quitAfterSave {
			return m.quit()
		}
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Save failed: "+msg.err.Error(), toaster.StyleError)
		return m, cmd
	}

	m.savedVersion = msg.version
	m.loadedRevision = msg.result.Revision
	log.Info(log.CatDB, "Saved", "revision", msg.result.Revision, "unchanged", msg.result.Unchanged)

	if m.quitAfterSave {
		return m.quit()
	}
	if manual && m.Dirty() {
		// Edits landed while the requested save was running.
		return m.save(true)
	}

	var cmds []tea.Cmd
	if m.Dirty() && m.cfg.AutoSave {
		m.saveSeq++
		cmds = append(cmds, scheduleAutosave(m.saveSeq, m.cfg.AutoSaveDebounce))
	}
	if manual {
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Saved", toaster.StyleSuccess)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// checkExternal looks for a newer stored revision written by someone else.
// Local edits win: a dirty buffer is never replaced.
func (m Model) checkExternal() tea.Cmd {
	id := m.engine.Document().ID
	if m.store == nil || id == "" || m.Dirty() || m.saving {
		return nil
	}
	store, ctx, loaded := m.store, m.ctx, m.loadedRevision
	return func() tea.Msg {
		rev, err := store.Revision(ctx, id)
		var nf *sqlite.DocumentNotFoundError
		if errors.As(err, &nf) {
			return reloadMsg{}
		}
		if err != nil {
			return reloadMsg{err: err}
		}
		if rev <= loaded {
			return reloadMsg{}
		}
		doc, err := store.Get(ctx, id)
		return reloadMsg{doc: doc, err: err}
	}
}

func (m Model) handleReload(msg reloadMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatDB, "Failed to check for external changes", msg.err)
		return m, nil
	}
	if msg.doc == nil || m.Dirty() || msg.doc.Revision <= m.loadedRevision {
		return m, nil
	}

	m.engine.Load(msg.doc.Document)
	m.loadedRevision = msg.doc.Revision
	m.savedVersion = m.engine.ContentVersion()
	log.Info(log.CatDB, "Reloaded external change", "revision", msg.doc.Revision)

	m, refreshCmd := m.refresh()
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Reloaded external change", toaster.StyleInfo)
	return m, tea.Batch(refreshCmd, cmd)
}

func (m Model) persistRecent(recent []string) tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	path := m.configPath
	return func() tea.Msg {
		return recentSavedMsg{err: config.SaveRecentColors(path, recent)}
	}
}

// quit saves a dirty buffer before exiting. With a save in flight it waits
// for that save to finish so the two writes never overlap.
func (m Model) quit() (Model, tea.Cmd) {
	if m.saving {
		m.quitAfterSave = true
		return m, nil
	}
	m.quitAfterSave = false
	if !m.Dirty() || m.saver == nil {
		return m, tea.Quit
	}
	doc := m.engine.Document()
	saver, ctx := m.saver, m.ctx
	return m, func() tea.Msg {
		if _, err := saver.Save(ctx, doc); err != nil {
			log.ErrorErr(log.CatDB, "Save on quit failed", err)
		}
		return tea.Quit()
	}
}
