// Package app wires the tagged range engine, the persistence worker and the
// screens into one bubbletea program.
package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"buffmon-tui/internal/config"
	"buffmon-tui/internal/core/document"
	"buffmon-tui/internal/platform"
	"buffmon-tui/internal/store"
	"buffmon-tui/internal/ui/screens"
	"buffmon-tui/internal/ui/styles"
)

// ScreenType identifies an application screen.
type ScreenType int

const (
	EditorView ScreenType = iota
	TagPickerView
	HelpView
)

const welcomeText = "Welcome to buffmon!\n\nJust start typing here and tag your things."

// App is the root model. It is the single owner of the document: every
// mutation runs on the bubbletea update loop, and only snapshots cross into
// the persistence worker.
type App struct {
	cfg   *config.Config
	theme *styles.Theme

	doc     *document.Document
	store   *store.Store
	saver   *store.Autosaver
	watcher *store.Watcher

	current ScreenType
	screens map[ScreenType]screens.Screen
	editor  *screens.EditorScreen
	picker  *screens.TagPickerScreen

	// Selection waiting for a tag while the picker is open.
	pendingStart  int
	pendingEnd    int
	pendingAssign bool

	startupNotice string
}

// New loads the document from disk and builds the application.
func New(cfg *config.Config) (*App, error) {
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	st, err := store.New(dataDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		theme:   styles.NewTheme(cfg.Theme),
		store:   st,
		screens: make(map[ScreenType]screens.Screen),
	}

	result, err := st.Load()
	if err != nil {
		return nil, err
	}
	switch {
	case result.Snapshot == nil:
		a.doc = document.New(welcomeText)
		if result.ParseErr != nil {
			a.startupNotice = "Save file was unreadable and no backup found; starting fresh"
		}
	case result.FromBackup:
		a.doc = document.FromSnapshot(result.Snapshot)
		a.startupNotice = "Structured save was unreadable; recovered text from backup (tags lost)"
	default:
		a.doc = document.FromSnapshot(result.Snapshot)
	}

	a.saver = store.NewAutosaver(st, time.Duration(cfg.Editor.AutoSaveDelayMs)*time.Millisecond)
	if w, err := store.NewWatcher(st); err == nil {
		a.watcher = w
	}

	a.editor = screens.NewEditorScreen(cfg, a.theme, a.doc, a.markDirty)
	a.picker = screens.NewTagPickerScreen(a.theme, a.doc.Tags)
	a.screens[EditorView] = a.editor
	a.screens[TagPickerView] = a.picker
	a.screens[HelpView] = screens.NewHelpScreen(a.theme, a.editor.FullHelp())
	a.current = EditorView

	return a, nil
}

// Init starts the screens and the store event listeners.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.editor.Init(),
		a.picker.Init(),
		waitForSaveEvent(a.saver.Events()),
	}
	if a.watcher != nil {
		cmds = append(cmds, waitForExternalChange(a.watcher.Events()))
	}
	if a.startupNotice != "" {
		a.editor.SetStatusError(a.startupNotice)
	}
	return tea.Batch(cmds...)
}

// Update routes messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleGlobalKeys(m)
	case tea.WindowSizeMsg:
		return a.handleWindowResize(m)

	case screens.OpenTagPickerMsg:
		a.pendingStart, a.pendingEnd = m.Start, m.End
		a.pendingAssign = m.End > m.Start
		a.picker.SetAssigning(a.pendingAssign)
		return a, a.switchTo(TagPickerView)

	case screens.SaveNowMsg:
		if err := a.saver.SaveNow(a.doc.Snapshot()); err != nil {
			a.editor.SetStatusError(fmt.Sprintf("Save failed: %v", err))
		} else {
			a.editor.SetStatusSuccess("Saved")
		}
		return a, nil

	case screens.TagPickedMsg:
		a.assignPending(m.ID)
		return a, a.switchTo(EditorView)

	case screens.TagCreateMsg:
		tag, err := a.doc.CreateTag(m.Name)
		if err != nil {
			a.editor.SetStatusError(err.Error())
			return a, a.switchTo(EditorView)
		}
		a.markDirty()
		a.picker.Refresh()
		if a.pendingAssign {
			a.assignPending(tag.ID)
			return a, a.switchTo(EditorView)
		}
		return a, nil

	case screens.TagRenameMsg:
		if err := a.doc.RenameTag(m.ID, m.Name); err != nil {
			a.editor.SetStatusError(err.Error())
		} else {
			a.markDirty()
		}
		a.picker.Refresh()
		return a, nil

	case screens.TagModeToggleMsg:
		if tag, ok := a.doc.Tag(m.ID); ok {
			next := document.ModeBackground
			if tag.Mode == document.ModeBackground {
				next = document.ModeTextColor
			}
			if err := a.doc.SetTagMode(m.ID, next); err == nil {
				a.markDirty()
			}
		}
		a.picker.Refresh()
		return a, nil

	case screens.TagRecolorMsg:
		if err := a.doc.SetTagColor(m.ID, document.RandomTagColor()); err == nil {
			a.markDirty()
		}
		a.picker.Refresh()
		return a, nil

	case screens.TagDeleteMsg:
		if err := a.doc.DeleteTag(m.ID); err != nil {
			a.editor.SetStatusError(err.Error())
		} else {
			a.markDirty()
		}
		a.picker.Refresh()
		return a, nil

	case screens.TagPickerClosedMsg:
		return a, a.switchTo(EditorView)

	case saveEventMsg:
		if m.event.Err != nil {
			a.editor.SetStatusError(fmt.Sprintf("Autosave failed: %v", m.event.Err))
		} else {
			a.editor.SetStatusSuccess("Autosaved")
		}
		return a, waitForSaveEvent(a.saver.Events())

	case externalChangeMsg:
		a.editor.SetStatusError(fmt.Sprintf("Save file %s outside buffmon", m.change.Op))
		return a, waitForExternalChange(a.watcher.Events())
	}

	return a.forward(msg)
}

// View renders the current screen above the status bar.
func (a *App) View() string {
	screen := a.screens[a.current]
	if screen == nil {
		return "Loading..."
	}
	status := a.theme.StatusBar(platform.ReplacePrimaryModifier(screen.Title() + " • " + screen.ShortHelp()))
	return fmt.Sprintf("%s\n%s", screen.View(), status)
}

// Shutdown flushes the document to disk and stops the workers. Safe to call
// more than once only for the save itself; callers run it exactly once after
// the program returns.
func (a *App) Shutdown() error {
	err := a.saver.SaveNow(a.doc.Snapshot())
	a.saver.Close()
	if a.watcher != nil {
		a.watcher.Close()
	}
	return err
}

func (a *App) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := platform.CanonicalKey(msg.String())
	switch key {
	case platform.CanonicalKey(a.cfg.Keybindings["quit"]), "ctrl+c":
		return a, tea.Quit
	case platform.CanonicalKey(a.cfg.Keybindings["help"]):
		if a.current == HelpView {
			return a, a.switchTo(EditorView)
		}
		return a, a.switchTo(HelpView)
	case "esc":
		if a.current == HelpView {
			return a, a.switchTo(EditorView)
		}
	}
	return a.forward(msg)
}

func (a *App) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.theme.SetDimensions(msg.Width, msg.Height)
	var cmds []tea.Cmd
	for t, s := range a.screens {
		updated, cmd := s.Update(msg)
		a.screens[t] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	screen := a.screens[a.current]
	if screen == nil {
		return a, nil
	}
	updated, cmd := screen.Update(msg)
	a.screens[a.current] = updated
	return a, cmd
}

func (a *App) switchTo(t ScreenType) tea.Cmd {
	if a.current == t {
		return nil
	}
	var cmds []tea.Cmd
	if cur := a.screens[a.current]; cur != nil {
		cmds = append(cmds, cur.OnExit())
	}
	a.current = t
	if next := a.screens[t]; next != nil {
		cmds = append(cmds, next.OnEnter())
	}
	return tea.Batch(cmds...)
}

func (a *App) assignPending(id document.TagID) {
	if !a.pendingAssign {
		return
	}
	a.pendingAssign = false
	if _, err := a.doc.TagSelection(id, a.pendingStart, a.pendingEnd); err != nil {
		a.editor.SetStatusError(err.Error())
		return
	}
	a.editor.ClearSelection()
	a.markDirty()
	if tag, ok := a.doc.Tag(id); ok {
		a.editor.SetStatusSuccess("Tagged as " + tag.Name)
	}
}

// markDirty snapshots the document and hands it to the persistence worker.
func (a *App) markDirty() {
	if !a.cfg.Editor.AutoSave {
		return
	}
	a.saver.MarkDirty(a.doc.Snapshot())
}
