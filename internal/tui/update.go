package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateAddEvent {
		return m.updateAddEvent(msg)
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.setTab((m.state + 1) % constants.SessionState(len(tabTitles)))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			n := constants.SessionState(len(tabTitles))
			m.setTab((m.state + n - 1) % n)
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			_ = m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Add):
			cmd := m.startAddEvent()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Leave room for tabs, banner and help
		paneHeight := msg.Height - 5
		h, v := docStyle.GetFrameSize()
		m.pane.SetSize(msg.Width-h, paneHeight-v)
	}

	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) startAddEvent() tea.Cmd {
	date := utils.DateKey(m.clock())
	if m.feed != nil {
		date = utils.DateKey(m.feed.Now)
	}
	m.eventForm = &EventFormModel{
		ID:   uuid.New().String(),
		Type: models.EventMeeting,
		Date: date,
	}
	m.form = NewEventForm(m.eventForm)
	m.formError = ""
	m.prevState = m.state
	m.state = constants.StateAddEvent
	return m.form.Init()
}

func (m Model) updateAddEvent(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.setTab(m.prevState)
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveEvent(); err != nil {
			// Stay in the form so the user can fix the input or cancel with esc
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.setTab(m.prevState)
	case huh.StateAborted:
		m.setTab(m.prevState)
	}
	return m, tea.Batch(cmds...)
}

// saveEvent stores the form's event and reloads the feed. Once the event is
// stored a failed reload is only reported through the banner.
func (m *Model) saveEvent() error {
	loc := m.clock().Location()
	if m.feed != nil {
		loc = m.feed.Location
	}
	ev, err := m.eventForm.Event(loc)
	if err != nil {
		return err
	}
	if err := m.store.AddEvent(ev); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	logger.Info("Added event from TUI", "id", ev.ID, "title", ev.Title)
	if err := m.reload(); err != nil {
		logger.Warn("Event saved but calendar reload failed", "id", ev.ID, "error", err)
	}
	return nil
}
