package styles

import (
	"github.com/charmbracelet/lipgloss"

	"buffmon-tui/internal/core/document"
)

// Theme holds the application styles and the base colors the resolver blends
// tag colors against.
type Theme struct {
	width  int
	height int

	colors ColorScheme

	StatusBarStyle lipgloss.Style
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	TextStyle      lipgloss.Style
	DimStyle       lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	WarningStyle   lipgloss.Style
	BorderStyle    lipgloss.Style
	SelectionStyle lipgloss.Style
	CursorStyle    lipgloss.Style
	InputStyle     lipgloss.Style
}

// ColorScheme is one named palette.
type ColorScheme struct {
	Primary     string
	Background  string
	Surface     string
	Text        string
	TextDim     string
	Error       string
	Success     string
	Warning     string
	Border      string
	Selection   string
	SelectionFg string
}

var (
	DarkScheme = ColorScheme{
		Primary:     "#7C3AED",
		Background:  "#0F172A",
		Surface:     "#1E293B",
		Text:        "#F1F5F9",
		TextDim:     "#94A3B8",
		Error:       "#EF4444",
		Success:     "#10B981",
		Warning:     "#F59E0B",
		Border:      "#334155",
		Selection:   "#3B4E75",
		SelectionFg: "#F8FAFC",
	}

	LightScheme = ColorScheme{
		Primary:     "#7C3AED",
		Background:  "#FFFFFF",
		Surface:     "#F8FAFC",
		Text:        "#0F172A",
		TextDim:     "#64748B",
		Error:       "#DC2626",
		Success:     "#059669",
		Warning:     "#D97706",
		Border:      "#E2E8F0",
		Selection:   "#BFD3F2",
		SelectionFg: "#0F172A",
	}
)

// NewTheme builds a theme from a scheme name ("light" or "dark").
func NewTheme(themeName string) *Theme {
	var colors ColorScheme
	switch themeName {
	case "light":
		colors = LightScheme
	default:
		colors = DarkScheme
	}

	theme := &Theme{colors: colors}
	theme.initStyles()
	return theme
}

func (t *Theme) initStyles() {
	t.StatusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.colors.Surface)).
		Foreground(lipgloss.Color(t.colors.Text)).
		Padding(0, 1)

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.Primary)).
		Bold(true).
		Padding(0, 1)

	t.SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.TextDim)).
		Padding(0, 1)

	t.TextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.Text))

	t.DimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.TextDim))

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.Error)).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.Success)).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.colors.Warning)).
		Bold(true)

	t.BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.colors.Border))

	t.SelectionStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.colors.Selection)).
		Foreground(lipgloss.Color(t.colors.SelectionFg))

	t.CursorStyle = lipgloss.NewStyle().Reverse(true)

	t.InputStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.colors.Surface)).
		Foreground(lipgloss.Color(t.colors.Text)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.colors.Border)).
		Padding(0, 1)
}

// BaseStyle returns the theme's base text and background colors as the
// resolver's zero-tag style.
func (t *Theme) BaseStyle() document.Style {
	fg, err := document.ParseHex(t.colors.Text)
	if err != nil {
		fg = document.RGBA{R: 240, G: 240, B: 240, A: 255}
	}
	bg, err := document.ParseHex(t.colors.Background)
	if err != nil {
		bg = document.RGBA{A: 255}
	}
	return document.Style{Foreground: fg, Background: bg}
}

// SetDimensions records the terminal size.
func (t *Theme) SetDimensions(width, height int) {
	t.width = width
	t.height = height
}

// Width returns the terminal width.
func (t *Theme) Width() int {
	return t.width
}

// Height returns the terminal height.
func (t *Theme) Height() int {
	return t.height
}

// StatusBar renders the bottom status line at full width.
func (t *Theme) StatusBar(text string) string {
	return t.StatusBarStyle.
		Width(t.width).
		Render(text)
}

// ErrorMessage renders an error notice.
func (t *Theme) ErrorMessage(text string) string {
	return t.ErrorStyle.Render("Error: " + text)
}

// SuccessMessage renders a success notice.
func (t *Theme) SuccessMessage(text string) string {
	return t.SuccessStyle.Render("✓ " + text)
}

// WarningMessage renders a warning notice.
func (t *Theme) WarningMessage(text string) string {
	return t.WarningStyle.Render("⚠ " + text)
}
