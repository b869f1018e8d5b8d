package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ritual/internal/constants"
)

func tabName(s constants.SessionState) string {
	switch s {
	case constants.StateToday:
		return "Today"
	case constants.StateHistory:
		return "History"
	case constants.StateReadings:
		return "Readings"
	}
	return ""
}

func (m Model) viewTabs() string {
	active := m.state
	if active == constants.StateAddReading || active == constants.StateConfirmDelete {
		active = m.previousState
	}
	rendered := make([]string, len(tabs))
	for i, s := range tabs {
		if s == active {
			rendered[i] = tabActiveStyle.Render(tabName(s))
		} else {
			rendered[i] = tabStyle.Render(tabName(s))
		}
	}
	return tabBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Delete reading session?"))
	b.WriteString("\n\n")
	b.WriteString(m.pendingTitle)
	b.WriteString("\n\n")
	b.WriteString("y to delete, n to cancel")
	return confirmBoxStyle.Render(b.String())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = m.todayModel.View()
	case constants.StateHistory:
		content = m.historyModel.View()
	case constants.StateReadings:
		content = m.readingsModel.View()
	case constants.StateAddReading:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
	return frameStyle.Render(ui)
}
