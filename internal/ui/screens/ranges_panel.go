package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"buffmon-tui/internal/core/document"
)

// previewLimit caps the sidebar text preview of a range.
const previewLimit = 30

func (es *EditorScreen) sidebarWidth() int {
	w := es.cfg.Editor.SidebarWidth
	if w > es.Width()/2 {
		w = es.Width() / 2
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderSidebar paints the tag palette on top and the user-ordered range
// list below it.
func (es *EditorScreen) renderSidebar(width, height int) string {
	inner := width - 3
	var lines []string

	lines = append(lines, es.theme.TitleStyle.Render("Tags"))
	tags := es.doc.Tags()
	if len(tags) == 0 {
		lines = append(lines, es.theme.DimStyle.Render("  none yet — Ctrl+T"))
	}
	for _, t := range tags {
		chip := lipgloss.NewStyle().
			Background(lipgloss.Color(t.Color.Hex())).
			Foreground(lipgloss.Color(t.Color.ReadableTextColor().Hex())).
			Padding(0, 1).
			Render(truncate(t.Name, inner-4))
		lines = append(lines, "  "+chip+" "+es.theme.DimStyle.Render(t.Mode.String()))
	}

	lines = append(lines, "")
	lines = append(lines, es.theme.TitleStyle.Render("Tagged ranges"))
	items := es.doc.OrderedRanges()
	if len(items) == 0 {
		lines = append(lines, es.theme.DimStyle.Render("  select text, Ctrl+G"))
	}
	for i, item := range items {
		lines = append(lines, es.renderRangeRow(item, i == es.sidebarIndex && es.sidebarFocus, inner))
	}

	if es.sidebarFocus {
		lines = append(lines, "")
		lines = append(lines, es.theme.DimStyle.Render("Shift+↑/↓ move • Del untag"))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return es.theme.BorderStyle.
		Width(width - 2).
		Height(height - 2).
		Render(strings.Join(lines, "\n"))
}

func (es *EditorScreen) renderRangeRow(item document.RangeListItem, selected bool, width int) string {
	name := "?"
	color := es.theme.DimStyle
	if tag, ok := es.doc.Tag(item.Range.Tag); ok {
		name = tag.Name
		color = lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color.Hex()))
	}
	row := fmt.Sprintf("⋮ %s: %s", name, es.rangePreview(item.Range))
	row = truncate(row, width)
	if selected {
		return es.theme.SelectionStyle.Render("→ " + row)
	}
	return "  " + color.Render(row)
}

// rangePreview shows the covered text up to the first newline, clipped to
// previewLimit runes.
func (es *EditorScreen) rangePreview(tr document.TaggedRange) string {
	text := es.doc.TextIn(tr.Start, tr.End)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return truncate(text, previewLimit)
}

func truncate(s string, limit int) string {
	if limit < 1 {
		limit = 1
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
