package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"buffmon-tui/internal/config"
	"buffmon-tui/internal/core/document"
	"buffmon-tui/internal/platform"
	"buffmon-tui/internal/ui/styles"
)

// statusTTL is how long an inline status notice stays visible.
const statusTTL = 4 * time.Second

// OpenTagPickerMsg asks the app to open the tag picker for the current
// selection. Start == End means no selection (browse/manage mode).
type OpenTagPickerMsg struct {
	Start int
	End   int
}

// SaveNowMsg asks the app to save the document immediately.
type SaveNowMsg struct{}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// EditorScreen is the main screen: the text buffer on the left, the tag
// palette and the orderable range list in the sidebar.
type EditorScreen struct {
	BaseScreen

	cfg   *config.Config
	theme *styles.Theme
	doc   *document.Document

	// onChange marks the document dirty for the autosaver. Called after
	// every successful mutation.
	onChange func()

	cursor int
	anchor *int
	scroll int

	sidebarVisible bool
	sidebarFocus   bool
	sidebarIndex   int

	statusMessage string
	statusKind    statusKind
	statusAt      time.Time

	bindings map[string]string
}

// NewEditorScreen builds the editor over an already loaded document.
func NewEditorScreen(cfg *config.Config, theme *styles.Theme, doc *document.Document, onChange func()) *EditorScreen {
	es := &EditorScreen{
		BaseScreen:     NewBaseScreen("Editor"),
		cfg:            cfg,
		theme:          theme,
		doc:            doc,
		onChange:       onChange,
		sidebarVisible: true,
	}
	es.bindings = make(map[string]string, len(cfg.Keybindings))
	for action, key := range cfg.Keybindings {
		es.bindings[action] = platform.CanonicalKey(key)
	}
	return es
}

func (es *EditorScreen) Init() tea.Cmd {
	return nil
}

// SetStatus shows an inline notice in the editor footer.
func (es *EditorScreen) SetStatus(msg string) {
	es.setStatus(msg, statusInfo)
}

// SetStatusSuccess shows a success notice.
func (es *EditorScreen) SetStatusSuccess(msg string) {
	es.setStatus(msg, statusSuccess)
}

// SetStatusError shows an error notice.
func (es *EditorScreen) SetStatusError(msg string) {
	es.setStatus(msg, statusError)
}

func (es *EditorScreen) setStatus(msg string, kind statusKind) {
	es.statusMessage = msg
	es.statusKind = kind
	es.statusAt = time.Now()
}

// Selection returns the selected interval in normalized order.
func (es *EditorScreen) Selection() (int, int, bool) {
	if es.anchor == nil || *es.anchor == es.cursor {
		return es.cursor, es.cursor, false
	}
	a, b := *es.anchor, es.cursor
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

// ClearSelection drops the selection anchor.
func (es *EditorScreen) ClearSelection() {
	es.anchor = nil
}

// JumpTo moves the cursor to an offset, clamped, and scrolls it into view.
func (es *EditorScreen) JumpTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > es.doc.Len() {
		offset = es.doc.Len()
	}
	es.cursor = offset
	es.anchor = nil
	es.ensureCursorVisible()
}

func (es *EditorScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		es.SetSize(m.Width, m.Height-1)
		es.ensureCursorVisible()
		return es, nil
	case tea.KeyMsg:
		return es.handleKey(m)
	}
	return es, nil
}

func (es *EditorScreen) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	key := platform.CanonicalKey(msg.String())

	switch key {
	case es.bindings["save"]:
		return es, func() tea.Msg { return SaveNowMsg{} }
	case es.bindings["assign_tag"], es.bindings["new_tag"]:
		start, end, ok := es.Selection()
		if !ok {
			start, end = 0, 0
			if key == es.bindings["assign_tag"] {
				es.SetStatusError("Select text first, then assign a tag")
				return es, nil
			}
		}
		return es, func() tea.Msg { return OpenTagPickerMsg{Start: start, End: end} }
	case es.bindings["toggle_sidebar"]:
		es.sidebarVisible = !es.sidebarVisible
		if !es.sidebarVisible {
			es.sidebarFocus = false
		}
		return es, nil
	case es.bindings["focus_sidebar"]:
		if es.sidebarVisible {
			es.sidebarFocus = !es.sidebarFocus
			es.clampSidebarIndex()
		}
		return es, nil
	}

	if es.sidebarFocus {
		return es, es.handleSidebarKey(key)
	}
	return es, es.handleEditingKey(msg, key)
}

func (es *EditorScreen) handleEditingKey(msg tea.KeyMsg, key string) tea.Cmd {
	switch key {
	case "backspace":
		es.deleteBackward()
		return nil
	case "delete":
		es.deleteForward()
		return nil
	case "enter":
		es.insertText("\n")
		return nil
	case "tab":
		es.insertText(es.indentText())
		return nil
	case "esc":
		es.anchor = nil
		return nil
	case "left":
		es.moveHorizontal(-1, false)
		return nil
	case "right":
		es.moveHorizontal(1, false)
		return nil
	case "shift+left":
		es.moveHorizontal(-1, true)
		return nil
	case "shift+right":
		es.moveHorizontal(1, true)
		return nil
	case "up":
		es.moveVertical(-1, false)
		return nil
	case "down":
		es.moveVertical(1, false)
		return nil
	case "shift+up":
		es.moveVertical(-1, true)
		return nil
	case "shift+down":
		es.moveVertical(1, true)
		return nil
	case "home":
		es.moveLineEdge(false, false)
		return nil
	case "end":
		es.moveLineEdge(true, false)
		return nil
	case "shift+home":
		es.moveLineEdge(false, true)
		return nil
	case "shift+end":
		es.moveLineEdge(true, true)
		return nil
	case "pgup":
		es.moveVertical(-es.contentHeight(), false)
		return nil
	case "pgdown":
		es.moveVertical(es.contentHeight(), false)
		return nil
	}

	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
		es.insertText(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		es.insertText(" ")
	}
	return nil
}

func (es *EditorScreen) handleSidebarKey(key string) tea.Cmd {
	items := es.doc.OrderedRanges()
	switch key {
	case "up", "k":
		if es.sidebarIndex > 0 {
			es.sidebarIndex--
		}
	case "down", "j":
		if es.sidebarIndex < len(items)-1 {
			es.sidebarIndex++
		}
	case "shift+up":
		es.moveSelectedRange(-1, items)
	case "shift+down":
		es.moveSelectedRange(1, items)
	case "delete", "backspace":
		if es.sidebarIndex < len(items) {
			item := items[es.sidebarIndex]
			if err := es.doc.Untag(item.Range.ID); err == nil {
				es.markChanged()
				es.SetStatus("Range removed")
			}
			es.clampSidebarIndex()
		}
	case "enter":
		if es.sidebarIndex < len(items) {
			es.JumpTo(items[es.sidebarIndex].Range.Start)
			es.sidebarFocus = false
		}
	case "esc":
		es.sidebarFocus = false
	}
	return nil
}

// moveSelectedRange is the keyboard counterpart of drag-and-drop in the
// sidebar: move the selected entry one rank up or down.
func (es *EditorScreen) moveSelectedRange(dir int, items []document.RangeListItem) {
	if es.sidebarIndex >= len(items) {
		return
	}
	item := items[es.sidebarIndex]
	target := item.Rank + dir
	if target < 0 || target >= len(items) {
		return
	}
	if err := es.doc.MoveRange(item.Range.ID, target); err != nil {
		es.SetStatusError(err.Error())
		return
	}
	es.sidebarIndex = target
	es.markChanged()
}

func (es *EditorScreen) insertText(text string) {
	start, end, ok := es.Selection()
	at, removed := es.cursor, 0
	if ok {
		at, removed = start, end-start
	}
	if _, err := es.doc.ApplyEdit(at, removed, text); err != nil {
		es.SetStatusError(err.Error())
		return
	}
	es.cursor = at + len([]rune(text))
	es.anchor = nil
	es.markChanged()
	es.ensureCursorVisible()
}

func (es *EditorScreen) deleteBackward() {
	if _, _, ok := es.Selection(); ok {
		es.insertText("")
		return
	}
	if es.cursor == 0 {
		return
	}
	if _, err := es.doc.ApplyEdit(es.cursor-1, 1, ""); err != nil {
		es.SetStatusError(err.Error())
		return
	}
	es.cursor--
	es.markChanged()
	es.ensureCursorVisible()
}

func (es *EditorScreen) deleteForward() {
	if _, _, ok := es.Selection(); ok {
		es.insertText("")
		return
	}
	if es.cursor >= es.doc.Len() {
		return
	}
	if _, err := es.doc.ApplyEdit(es.cursor, 1, ""); err != nil {
		es.SetStatusError(err.Error())
		return
	}
	es.markChanged()
}

func (es *EditorScreen) indentText() string {
	if es.cfg.Editor.UseSpaces {
		return strings.Repeat(" ", es.cfg.Editor.TabSize)
	}
	return "\t"
}

func (es *EditorScreen) moveHorizontal(delta int, extend bool) {
	es.updateAnchor(extend)
	es.cursor += delta
	if es.cursor < 0 {
		es.cursor = 0
	}
	if es.cursor > es.doc.Len() {
		es.cursor = es.doc.Len()
	}
	es.ensureCursorVisible()
}

func (es *EditorScreen) moveVertical(delta int, extend bool) {
	es.updateAnchor(extend)
	li := buildLineIndex(es.doc.Text())
	line := li.lineOf(es.cursor)
	col := es.cursor - li.lineStart(line)
	es.cursor = li.offsetAt(line+delta, col)
	es.ensureCursorVisible()
}

func (es *EditorScreen) moveLineEdge(toEnd, extend bool) {
	es.updateAnchor(extend)
	li := buildLineIndex(es.doc.Text())
	line := li.lineOf(es.cursor)
	if toEnd {
		es.cursor = li.lineEnd(line)
	} else {
		es.cursor = li.lineStart(line)
	}
	es.ensureCursorVisible()
}

func (es *EditorScreen) updateAnchor(extend bool) {
	if !extend {
		es.anchor = nil
		return
	}
	if es.anchor == nil {
		pos := es.cursor
		es.anchor = &pos
	}
}

func (es *EditorScreen) markChanged() {
	if es.onChange != nil {
		es.onChange()
	}
}

func (es *EditorScreen) clampSidebarIndex() {
	n := es.doc.RangeCount()
	if es.sidebarIndex >= n {
		es.sidebarIndex = n - 1
	}
	if es.sidebarIndex < 0 {
		es.sidebarIndex = 0
	}
}

func (es *EditorScreen) contentHeight() int {
	h := es.Height() - 2 // header and footer
	if h < 1 {
		h = 1
	}
	return h
}

func (es *EditorScreen) ensureCursorVisible() {
	li := buildLineIndex(es.doc.Text())
	line := li.lineOf(es.cursor)
	height := es.contentHeight()
	if line < es.scroll {
		es.scroll = line
	}
	if line >= es.scroll+height {
		es.scroll = line - height + 1
	}
	if es.scroll < 0 {
		es.scroll = 0
	}
}

func (es *EditorScreen) statusLine() string {
	if es.statusMessage != "" && time.Since(es.statusAt) < statusTTL {
		switch es.statusKind {
		case statusError:
			return es.theme.ErrorStyle.Render(es.statusMessage)
		case statusSuccess:
			return es.theme.SuccessStyle.Render(es.statusMessage)
		default:
			return es.statusMessage
		}
	}
	li := buildLineIndex(es.doc.Text())
	line := li.lineOf(es.cursor)
	col := es.cursor - li.lineStart(line)
	pos := fmt.Sprintf("%d:%d", line+1, col+1)
	if _, _, ok := es.Selection(); ok {
		s, e, _ := es.Selection()
		pos += fmt.Sprintf(" (%d selected)", e-s)
	}
	return fmt.Sprintf("%s • %d ranges • %d tags", pos, es.doc.RangeCount(), len(es.doc.Tags()))
}

func (es *EditorScreen) ShortHelp() string {
	return platform.ReplacePrimaryModifier(
		"Ctrl+G: Tag selection • Ctrl+T: Tags • Tab: Sidebar • Ctrl+S: Save • F1: Help")
}

func (es *EditorScreen) FullHelp() []string {
	return []string{
		"Editing:",
		"  Arrows/Home/End - Move, with Shift to select",
		"  Ctrl+G - Assign a tag to the selection",
		"  Ctrl+T - Open the tag palette",
		"Sidebar:",
		"  Tab - Focus the range list",
		"  Shift+Up/Down - Reorder the selected range",
		"  Delete - Untag the selected range",
		"  Enter - Jump to the range in the text",
		"Persistence:",
		"  Changes autosave after a short pause",
		"  Ctrl+S - Save immediately",
	}
}
