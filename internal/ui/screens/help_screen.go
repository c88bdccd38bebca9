package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"buffmon-tui/internal/platform"
	"buffmon-tui/internal/ui/styles"
)

// HelpScreen lists the key bindings.
type HelpScreen struct {
	BaseScreen

	theme *styles.Theme
	lines []string
}

// NewHelpScreen builds the help screen from another screen's full help.
func NewHelpScreen(theme *styles.Theme, lines []string) *HelpScreen {
	return &HelpScreen{
		BaseScreen: NewBaseScreen("Help"),
		theme:      theme,
		lines:      lines,
	}
}

func (hs *HelpScreen) Init() tea.Cmd {
	return nil
}

func (hs *HelpScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if m, ok := msg.(tea.WindowSizeMsg); ok {
		hs.SetSize(m.Width, m.Height-1)
	}
	return hs, nil
}

func (hs *HelpScreen) View() string {
	var b strings.Builder
	b.WriteString(hs.theme.TitleStyle.Render("buffmon — keys"))
	b.WriteString("\n\n")
	for _, line := range hs.lines {
		if strings.HasSuffix(line, ":") {
			b.WriteString(hs.theme.SubtitleStyle.Render(line))
		} else {
			b.WriteString("  " + platform.ReplacePrimaryModifier(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hs.theme.DimStyle.Render("Esc to return"))
	return hs.theme.BorderStyle.
		Width(hs.Width() - 2).
		Render(b.String())
}

func (hs *HelpScreen) ShortHelp() string {
	return "Esc: Back"
}
