// Package agenda is a scrollable pane showing one rendered calendar view.
package agenda

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	title    string
	body     string
	empty    bool
	width    int
	height   int
	viewport viewport.Model
}

func New(width, height int) Model {
	return Model{
		width:    width,
		height:   height,
		viewport: viewport.New(width, height),
	}
}

// SetContent replaces the pane. An empty body is shown dimmed.
func (m *Model) SetContent(title, body string, empty bool) {
	m.title = title
	m.body = body
	m.empty = empty
	m.updateViewportContent()
	m.viewport.GotoTop()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewportContent()
}

// Content returns the unscrolled text of the pane.
func (m Model) Content() string {
	body := m.body
	if m.empty {
		body = emptyStyle.Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.title), body)
}

func (m *Model) updateViewportContent() {
	m.viewport.SetContent(m.Content())
}
