package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	agendaview "github.com/julianstephens/coursecal/internal/agenda"
	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/storage"
	"github.com/julianstephens/coursecal/internal/tui/components/agenda"
)

var tabTitles = []string{"Today", "Week", "Upcoming", "Conflicts"}

type Model struct {
	store     storage.Provider
	clock     func() time.Time
	state     constants.SessionState
	prevState constants.SessionState
	keys      KeyMap
	help      help.Model
	pane      agenda.Model
	feed      *agendaview.Feed
	form      *huh.Form
	eventForm *EventFormModel
	formError string
	loadError string
	quitting  bool
	width     int
	height    int
}

// NewModel loads the feed once so that a broken store fails before the
// program takes over the terminal. A nil clock means time.Now.
func NewModel(store storage.Provider, clock func() time.Time) (Model, error) {
	if clock == nil {
		clock = time.Now
	}
	m := Model{
		store: store,
		clock: clock,
		state: constants.StateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		pane:  agenda.New(0, 0),
	}
	if err := m.reload(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state != constants.StateAddEvent {
		keys = append(keys, m.keys.Add, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.Add, m.keys.Refresh}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload rebuilds the feed from storage and redraws the current tab.
func (m *Model) reload() error {
	feed, err := agendaview.Load(m.store, m.clock())
	if err != nil {
		logger.Error("Failed to load calendar", "error", err)
		m.loadError = fmt.Sprintf("Failed to load calendar: %v", err)
		return err
	}
	m.feed = feed
	m.loadError = ""
	m.refreshPane()
	return nil
}

// refreshPane renders the active tab into the pane.
func (m *Model) refreshPane() {
	if m.feed == nil {
		return
	}
	f := m.feed
	switch m.state {
	case constants.StateToday:
		events := f.Today()
		m.pane.SetContent(f.Now.Format("Monday, January 2"), agendaview.Render(events, "Nothing scheduled today."), len(events) == 0)
	case constants.StateWeek:
		events := f.Week()
		m.pane.SetContent("This week", agendaview.Render(events, "Nothing scheduled this week."), len(events) == 0)
	case constants.StateUpcoming:
		events := f.Upcoming(0)
		m.pane.SetContent(fmt.Sprintf("Deadlines, next %d days", f.Settings.HorizonDays), f.RenderDeadlines(events), len(events) == 0)
	case constants.StateConflicts:
		pairs := f.Conflicts()
		m.pane.SetContent("Conflicts", agendaview.RenderConflicts(pairs), len(pairs) == 0)
	}
}

func (m *Model) setTab(s constants.SessionState) {
	m.state = s
	m.refreshPane()
}
