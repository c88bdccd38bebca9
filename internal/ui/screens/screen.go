package screens

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is the interface all application screens implement.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (Screen, tea.Cmd)
	View() string

	OnEnter() tea.Cmd
	OnExit() tea.Cmd

	Title() string
	ShortHelp() string
	FullHelp() []string
}

// BaseScreen carries the state shared by every screen.
type BaseScreen struct {
	width  int
	height int
	title  string
}

// NewBaseScreen builds a base with the given title.
func NewBaseScreen(title string) BaseScreen {
	return BaseScreen{title: title}
}

// SetSize records the available size.
func (bs *BaseScreen) SetSize(width, height int) {
	bs.width = width
	bs.height = height
}

// Width returns the available width.
func (bs *BaseScreen) Width() int {
	return bs.width
}

// Height returns the available height.
func (bs *BaseScreen) Height() int {
	return bs.height
}

// Title returns the screen title for the status bar.
func (bs *BaseScreen) Title() string {
	return bs.title
}

// OnEnter does nothing by default.
func (bs *BaseScreen) OnEnter() tea.Cmd {
	return nil
}

// OnExit does nothing by default.
func (bs *BaseScreen) OnExit() tea.Cmd {
	return nil
}

// ShortHelp returns the default hint line.
func (bs *BaseScreen) ShortHelp() string {
	return "F1: Help • Ctrl+Q: Quit"
}

// FullHelp returns the default help text.
func (bs *BaseScreen) FullHelp() []string {
	return []string{
		"Global:",
		"  Ctrl+Q - Quit (saves first)",
		"  F1 - Help",
	}
}
