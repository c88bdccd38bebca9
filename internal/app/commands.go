package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"buffmon-tui/internal/store"
)

// saveEventMsg carries the result of a background save.
type saveEventMsg struct {
	event store.SaveEvent
}

// externalChangeMsg reports that a save file changed on disk behind our back.
type externalChangeMsg struct {
	change store.ExternalChange
}

func waitForSaveEvent(ch <-chan store.SaveEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return saveEventMsg{event: ev}
	}
}

func waitForExternalChange(ch <-chan store.ExternalChange) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return externalChangeMsg{change: ev}
	}
}
