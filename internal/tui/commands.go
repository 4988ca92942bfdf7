package tui

import tea "github.com/charmbracelet/bubbletea"

// Command Builders
//
// These methods create tea.Cmd functions for async operations. Values the
// closure needs are captured before it is returned.

// waitForLayoutChange waits for the next reload event from the watcher.
// It returns nil once the watcher is stopped.
func (m *Model) waitForLayoutChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	capturedWatcher := m.watcher

	return func() tea.Msg {
		event, ok := <-capturedWatcher.Changes()
		if !ok {
			return nil
		}
		return layoutChangedMsg{event: event}
	}
}
