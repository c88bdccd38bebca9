package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"buffmon-tui/internal/core/document"
	"buffmon-tui/internal/ui/components"
	"buffmon-tui/internal/ui/styles"
)

// TagFetcher returns the current tag list for the picker.
type TagFetcher func() []document.Tag

// TagPickedMsg asks the app to assign the tag to the pending selection.
type TagPickedMsg struct {
	ID document.TagID
}

// TagCreateMsg asks the app to create a tag (and assign it, if a selection
// is pending).
type TagCreateMsg struct {
	Name string
}

// TagRenameMsg asks the app to rename a tag.
type TagRenameMsg struct {
	ID   document.TagID
	Name string
}

// TagDeleteMsg asks the app to delete a tag and all its ranges. Sent only
// after the user confirmed.
type TagDeleteMsg struct {
	ID document.TagID
}

// TagModeToggleMsg asks the app to flip a tag between background and text
// coloring.
type TagModeToggleMsg struct {
	ID document.TagID
}

// TagRecolorMsg asks the app to roll a new random color for a tag.
type TagRecolorMsg struct {
	ID document.TagID
}

// TagPickerClosedMsg signals the picker was dismissed.
type TagPickerClosedMsg struct{}

type tagDeleteDecisionMsg struct {
	id document.TagID
	ok bool
}

// TagPickerScreen is a filterable tag palette: pick a tag for the current
// selection, or create, rename, recolor and delete tags.
type TagPickerScreen struct {
	BaseScreen

	theme *styles.Theme
	fetch TagFetcher

	filter   textinput.Model
	tags     []document.Tag
	filtered []document.Tag
	selected int

	// renaming repurposes the input as a rename buffer for renameTarget.
	renaming     bool
	renameTarget document.TagID

	confirm *components.ConfirmDialog

	// assigning is true when a selection waits for a tag.
	assigning bool
}

// NewTagPickerScreen builds the picker.
func NewTagPickerScreen(theme *styles.Theme, fetch TagFetcher) *TagPickerScreen {
	ti := textinput.New()
	ti.Placeholder = "Filter or name a new tag"
	ti.Focus()

	return &TagPickerScreen{
		BaseScreen: NewBaseScreen("Tags"),
		theme:      theme,
		fetch:      fetch,
		filter:     ti,
	}
}

func (ps *TagPickerScreen) Init() tea.Cmd {
	ps.refresh()
	return textinput.Blink
}

// SetAssigning tells the picker whether Enter should assign to a selection.
func (ps *TagPickerScreen) SetAssigning(assigning bool) {
	ps.assigning = assigning
}

func (ps *TagPickerScreen) OnEnter() tea.Cmd {
	ps.refresh()
	ps.filter.SetValue("")
	ps.filter.Placeholder = "Filter or name a new tag"
	ps.renaming = false
	ps.selected = 0
	ps.applyFilter()
	return nil
}

func (ps *TagPickerScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		ps.SetSize(m.Width, m.Height-1)
		ps.filter.Width = ps.Width() - 6
		return ps, nil
	case tagDeleteDecisionMsg:
		if m.ok {
			return ps, func() tea.Msg { return TagDeleteMsg{ID: m.id} }
		}
		return ps, nil
	case tea.KeyMsg:
		if ps.confirm != nil && ps.confirm.Visible {
			ps.confirm.Update(m)
			return ps, nil
		}
		return ps.handleKey(m)
	}
	return ps, nil
}

func (ps *TagPickerScreen) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		if ps.selected > 0 {
			ps.selected--
		}
		return ps, nil
	case "down", "tab":
		if ps.selected < len(ps.filtered)-1 {
			ps.selected++
		}
		return ps, nil
	case "enter":
		return ps.handleEnter()
	case "esc", "escape":
		if ps.renaming {
			ps.stopRenaming()
			return ps, nil
		}
		return ps, func() tea.Msg { return TagPickerClosedMsg{} }
	case "ctrl+n":
		if name := strings.TrimSpace(ps.filter.Value()); name != "" {
			return ps, func() tea.Msg { return TagCreateMsg{Name: name} }
		}
		return ps, nil
	case "ctrl+e":
		if tag, ok := ps.current(); ok && !ps.renaming {
			ps.renaming = true
			ps.renameTarget = tag.ID
			ps.filter.SetValue(tag.Name)
			ps.filter.Placeholder = "New name"
		}
		return ps, nil
	case "ctrl+b":
		if tag, ok := ps.current(); ok {
			return ps, func() tea.Msg { return TagModeToggleMsg{ID: tag.ID} }
		}
		return ps, nil
	case "ctrl+r":
		if tag, ok := ps.current(); ok {
			return ps, func() tea.Msg { return TagRecolorMsg{ID: tag.ID} }
		}
		return ps, nil
	case "ctrl+d":
		tag, ok := ps.current()
		if !ok {
			return ps, nil
		}
		ps.confirm = components.NewConfirmDialog(
			"Delete tag "+tag.Name+"?",
			"All ranges tagged with it are removed from the text.")
		ch := ps.confirm.Show()
		id := tag.ID
		return ps, func() tea.Msg { return tagDeleteDecisionMsg{id: id, ok: <-ch} }
	}

	before := ps.filter.Value()
	var cmd tea.Cmd
	ps.filter, cmd = ps.filter.Update(msg)
	if !ps.renaming && ps.filter.Value() != before {
		ps.applyFilter()
	}
	return ps, cmd
}

func (ps *TagPickerScreen) handleEnter() (Screen, tea.Cmd) {
	if ps.renaming {
		name := strings.TrimSpace(ps.filter.Value())
		id := ps.renameTarget
		ps.stopRenaming()
		if name == "" {
			return ps, nil
		}
		return ps, func() tea.Msg { return TagRenameMsg{ID: id, Name: name} }
	}
	if tag, ok := ps.current(); ok {
		if ps.assigning {
			return ps, func() tea.Msg { return TagPickedMsg{ID: tag.ID} }
		}
		return ps, nil
	}
	// No match: Enter creates a tag from the filter text and, with a
	// selection pending, assigns it in one step.
	if name := strings.TrimSpace(ps.filter.Value()); name != "" {
		return ps, func() tea.Msg { return TagCreateMsg{Name: name} }
	}
	return ps, nil
}

// Refresh reloads the tag list, keeping filter and cursor stable.
func (ps *TagPickerScreen) Refresh() {
	ps.refresh()
	ps.applyFilter()
}

func (ps *TagPickerScreen) View() string {
	width := ps.Width()
	if width < 30 {
		width = 30
	}
	ps.filter.Width = width - 6

	var lines []string
	if len(ps.filtered) == 0 {
		hint := "No tags yet — type a name and press Enter"
		if len(ps.tags) > 0 {
			hint = "No tags match — Enter creates " + strings.TrimSpace(ps.filter.Value())
		}
		lines = append(lines, ps.theme.DimStyle.Render(hint))
	}
	for i, tag := range ps.filtered {
		prefix := "  "
		name := lipgloss.NewStyle().
			Background(lipgloss.Color(tag.Color.Hex())).
			Foreground(lipgloss.Color(tag.Color.ReadableTextColor().Hex())).
			Padding(0, 1).
			Render(tag.Name)
		row := name + " " + ps.theme.DimStyle.Render(tag.Mode.String())
		if i == ps.selected {
			prefix = "→ "
			row = lipgloss.NewStyle().Bold(true).Render(row)
		}
		lines = append(lines, prefix+row)
	}

	help := ps.theme.DimStyle.Render(ps.keyHints())
	content := ps.filter.View() + "\n\n" + strings.Join(lines, "\n") + "\n\n" + help

	box := ps.theme.BorderStyle.Width(width - 2).Padding(1).Render(content)
	if ps.confirm != nil && ps.confirm.Visible {
		box = lipgloss.JoinVertical(lipgloss.Left, box, ps.confirm.View())
	}
	return box
}

func (ps *TagPickerScreen) keyHints() string {
	action := "Enter: assign"
	if !ps.assigning {
		action = "Enter: create"
	}
	if ps.renaming {
		action = "Enter: rename"
	}
	return action + " • Ctrl+N: new • Ctrl+E: rename • Ctrl+B: mode • Ctrl+R: color • Ctrl+D: delete • Esc: close"
}

func (ps *TagPickerScreen) ShortHelp() string {
	return ps.keyHints()
}

func (ps *TagPickerScreen) current() (document.Tag, bool) {
	if ps.selected < 0 || ps.selected >= len(ps.filtered) {
		return document.Tag{}, false
	}
	return ps.filtered[ps.selected], true
}

func (ps *TagPickerScreen) stopRenaming() {
	ps.renaming = false
	ps.renameTarget = ""
	ps.filter.SetValue("")
	ps.filter.Placeholder = "Filter or name a new tag"
	ps.applyFilter()
}

func (ps *TagPickerScreen) refresh() {
	if ps.fetch == nil {
		ps.tags = nil
		ps.filtered = nil
		return
	}
	ps.tags = ps.fetch()
	ps.applyFilter()
}

func (ps *TagPickerScreen) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(ps.filter.Value()))
	if query == "" || ps.renaming {
		ps.filtered = ps.tags
	} else {
		ps.filtered = nil
		for _, tag := range ps.tags {
			if strings.Contains(strings.ToLower(tag.Name), query) {
				ps.filtered = append(ps.filtered, tag)
			}
		}
	}
	if ps.selected >= len(ps.filtered) {
		ps.selected = len(ps.filtered) - 1
	}
	if ps.selected < 0 {
		ps.selected = 0
	}
}
