package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/coursecal/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateAddEvent:
		content = m.viewAddEvent()
	default:
		content = docStyle.Render(m.pane.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBanner(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if active == constants.StateAddEvent {
		active = m.prevState
	}
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBanner() string {
	if m.loadError != "" {
		return dangerStyle.Render(m.loadError)
	}
	if m.feed == nil || m.state == constants.StateConflicts {
		return ""
	}
	if n := len(m.feed.Conflicts()); n > 0 {
		return bannerStyle.Render(fmt.Sprintf("⚠ %d CONFLICT(S) DETECTED", n))
	}
	return ""
}

func (m Model) viewAddEvent() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}
