package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"buffmon-tui/internal/core/document"
)

func (es *EditorScreen) View() string {
	header := es.renderHeader()
	body := es.renderBody()
	footer := es.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (es *EditorScreen) renderHeader() string {
	info := fmt.Sprintf("buffmon — %d chars • %d ranges • %d tags",
		es.doc.Len(), es.doc.RangeCount(), len(es.doc.Tags()))
	return es.theme.StatusBarStyle.
		Width(es.Width()).
		Bold(true).
		Render(info)
}

func (es *EditorScreen) renderBody() string {
	height := es.contentHeight()
	textWidth := es.Width()
	if es.sidebarVisible {
		textWidth -= es.sidebarWidth()
	}
	if textWidth < 10 {
		textWidth = 10
	}

	text := es.renderText(textWidth, height)
	if !es.sidebarVisible {
		return text
	}
	sidebar := es.renderSidebar(es.sidebarWidth(), height)
	return lipgloss.JoinHorizontal(lipgloss.Top, text, sidebar)
}

// renderText paints the visible lines. Each line is partitioned by the
// resolver into runs of constant style; selection and cursor are overlaid on
// top of the resolved colors.
func (es *EditorScreen) renderText(width, height int) string {
	li := buildLineIndex(es.doc.Text())
	base := es.theme.BaseStyle()
	selStart, selEnd, hasSel := es.Selection()

	var lines []string
	end := es.scroll + height
	if end > li.lineCount() {
		end = li.lineCount()
	}
	for line := es.scroll; line < end; line++ {
		lines = append(lines, es.renderLine(li, line, width, base, selStart, selEnd, hasSel))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxWidth(width).
		Render(strings.Join(lines, "\n"))
}

// cellStyle is the comparable per-cell paint decision: either the resolved
// tag colors, or one of the overlay kinds.
type cellStyle struct {
	kind int // 0 resolved, 1 selection, 2 cursor
	fg   document.RGBA
	bg   document.RGBA
}

func (es *EditorScreen) renderLine(li *lineIndex, line, width int, base document.Style, selStart, selEnd int, hasSel bool) string {
	start := li.lineStart(line)
	lineEnd := li.lineEnd(line)
	runes := li.lineText(line)
	if width < 2 {
		width = 2
	}
	if len(runes) > width-1 {
		runes = runes[:width-1]
		lineEnd = start + len(runes)
	}

	spans := es.doc.Resolve(start, lineEnd, base)

	var b strings.Builder
	span := 0
	segStart := 0
	var seg cellStyle
	haveSeg := false

	flush := func(endIdx int) {
		if !haveSeg || segStart >= endIdx {
			return
		}
		b.WriteString(es.cellLipgloss(seg).Render(string(runes[segStart:endIdx])))
	}

	for i := range runes {
		off := start + i
		for span < len(spans) && spans[span].End <= off {
			span++
		}
		st := es.cellStyleAt(off, spans, span, base, selStart, selEnd, hasSel)
		if !haveSeg {
			segStart, seg, haveSeg = i, st, true
			continue
		}
		if st != seg {
			flush(i)
			segStart, seg = i, st
		}
	}
	flush(len(runes))

	out := b.String()
	// End-of-line cursor: paint a phantom cell so the caret stays visible.
	if !es.sidebarFocus && es.cursor == lineEnd && li.lineOf(es.cursor) == line {
		out += es.theme.CursorStyle.Render(" ")
	}
	return out
}

func (es *EditorScreen) cellStyleAt(off int, spans []document.Span, span int, base document.Style, selStart, selEnd int, hasSel bool) cellStyle {
	if !es.sidebarFocus && off == es.cursor {
		return cellStyle{kind: 2}
	}
	if hasSel && off >= selStart && off < selEnd {
		return cellStyle{kind: 1}
	}
	st := base
	if span < len(spans) && spans[span].Start <= off && off < spans[span].End {
		st = spans[span].Style
	}
	return cellStyle{fg: st.Foreground, bg: st.Background}
}

func (es *EditorScreen) cellLipgloss(cs cellStyle) lipgloss.Style {
	switch cs.kind {
	case 2:
		return es.theme.CursorStyle
	case 1:
		return es.theme.SelectionStyle
	default:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(cs.fg.Hex())).
			Background(lipgloss.Color(cs.bg.Hex()))
	}
}

func (es *EditorScreen) renderFooter() string {
	return es.theme.StatusBarStyle.
		Width(es.Width()).
		Render(es.statusLine())
}
