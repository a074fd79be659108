package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage"
)

var testNow = time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "coursecal.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	settings, _ := store.GetSettings()
	settings.Timezone = "UTC"
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.SaveSettings(settings))
	must(store.AddTerm(models.Term{ID: "fall", Name: "Fall", StartDate: "2025-09-01", EndDate: "2025-09-30"}))
	must(store.AddCourse(models.Course{
		ID: "cs101", TermID: "fall", Code: "CS101", Title: "Intro",
		MeetingDays: []string{"Mon", "Wed"}, MeetingStart: "09:00", MeetingEnd: "10:15",
	}))
	end := time.Date(2025, 9, 10, 10, 30, 0, 0, time.UTC)
	must(store.AddEvent(models.OneOffEvent{
		ID: "advising", Title: "Advising", Type: models.EventMeeting,
		StartTime: time.Date(2025, 9, 10, 9, 30, 0, 0, time.UTC), EndTime: &end,
	}))
	return store
}

func newTestModel(t *testing.T) (Model, storage.Provider) {
	t.Helper()
	store := setupTestStore(t)
	m, err := NewModel(store, func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m, store
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)

	if m.state != constants.StateToday {
		t.Errorf("initial state = %v, want today", m.state)
	}
	content := m.pane.Content()
	for _, want := range []string{"Wednesday, September 10", "Intro", "Advising"} {
		if !strings.Contains(content, want) {
			t.Errorf("today pane missing %q:\n%s", want, content)
		}
	}
}

func TestNewModelUninitializedStore(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := NewModel(store, nil); err == nil {
		t.Error("expected error for a store that cannot load settings")
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateWeek {
		t.Fatalf("after tab state = %v, want week", m.state)
	}
	if !strings.Contains(m.pane.Content(), "This week") {
		t.Errorf("week pane not rendered:\n%s", m.pane.Content())
	}

	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	if m.state != constants.StateConflicts {
		t.Fatalf("state = %v, want conflicts", m.state)
	}
	if !strings.Contains(m.pane.Content(), "1 conflict(s)") {
		t.Errorf("conflicts pane:\n%s", m.pane.Content())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateToday {
		t.Errorf("tab should wrap to today, got %v", m.state)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateConflicts {
		t.Errorf("shift+tab should wrap to conflicts, got %v", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(Model).quitting {
		t.Error("model not marked as quitting")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestAddEventCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = press(t, m, runes("a"))
	if m.state != constants.StateAddEvent {
		t.Fatalf("state = %v, want add event", m.state)
	}
	if m.eventForm.Date != "2025-09-10" || m.eventForm.Type != models.EventMeeting {
		t.Errorf("form defaults = %+v", m.eventForm)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateWeek {
		t.Errorf("esc should return to the previous tab, got %v", m.state)
	}
}

func TestSaveEvent(t *testing.T) {
	m, store := newTestModel(t)
	m.eventForm = &EventFormModel{
		Title: "Study group",
		Type:  models.EventMeeting,
		Date:  "2025-09-10",
		Start: "15:00",
		End:   "16:00",
	}

	if err := m.saveEvent(); err != nil {
		t.Fatalf("saveEvent() error = %v", err)
	}
	events, _ := store.GetAllEvents()
	if len(events) != 2 {
		t.Fatalf("store has %d events, want 2", len(events))
	}
	if !strings.Contains(m.pane.Content(), "Study group") {
		t.Errorf("new event missing from today:\n%s", m.pane.Content())
	}
}

// settingsFailStore stores events normally but fails to load settings once
// failSettings is set, so the feed cannot be rebuilt.
type settingsFailStore struct {
	storage.Provider
	failSettings bool
}

func (s *settingsFailStore) GetSettings() (models.Settings, error) {
	if s.failSettings {
		return models.Settings{}, errors.New("settings unavailable")
	}
	return s.Provider.GetSettings()
}

func TestSaveEventReloadFailure(t *testing.T) {
	store := &settingsFailStore{Provider: setupTestStore(t)}
	m, err := NewModel(store, func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	m.startAddEvent()
	m.eventForm.Title = "Study group"
	m.eventForm.Start = "15:00"
	m.eventForm.End = "16:00"

	store.failSettings = true
	if err := m.saveEvent(); err != nil {
		t.Fatalf("saveEvent() error = %v, want nil once the event is stored", err)
	}
	if m.loadError == "" {
		t.Error("reload failure not surfaced in the banner")
	}

	// A second submit of the same form must not create another event.
	if err := m.saveEvent(); err != nil {
		t.Fatal(err)
	}
	events, _ := store.GetAllEvents()
	if len(events) != 2 {
		t.Errorf("store has %d events, want 2", len(events))
	}
}

func TestStartAddEventFixesID(t *testing.T) {
	m, _ := newTestModel(t)
	m.startAddEvent()
	if m.eventForm.ID == "" {
		t.Fatal("form opened without an event ID")
	}
	m.eventForm.Title = "Office hours"
	m.eventForm.AllDay = true

	first, err := m.eventForm.Event(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.eventForm.Event(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != m.eventForm.ID || second.ID != first.ID {
		t.Errorf("IDs = %q, %q; want both %q", first.ID, second.ID, m.eventForm.ID)
	}
}

func TestRefresh(t *testing.T) {
	m, store := newTestModel(t)
	if err := store.AddEvent(models.OneOffEvent{
		ID: "lab", Title: "Lab safety", Type: models.EventMeeting,
		StartTime: time.Date(2025, 9, 10, 13, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(m.pane.Content(), "Lab safety") {
		t.Fatal("event visible before refresh")
	}

	m = press(t, m, runes("r"))
	if !strings.Contains(m.pane.Content(), "Lab safety") {
		t.Errorf("event missing after refresh:\n%s", m.pane.Content())
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	for _, want := range []string{"Today", "Week", "Upcoming", "Conflicts", "1 CONFLICT(S) DETECTED", "Advising"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEventFormModel(t *testing.T) {
	tests := []struct {
		name    string
		form    EventFormModel
		wantErr bool
		check   func(t *testing.T, ev models.OneOffEvent)
	}{
		{
			name: "timed with end",
			form: EventFormModel{Title: "Review", Type: models.EventExam, Date: "2025-09-12", Start: "09:00", End: "10:30"},
			check: func(t *testing.T, ev models.OneOffEvent) {
				if !ev.StartTime.Equal(time.Date(2025, 9, 12, 9, 0, 0, 0, time.UTC)) {
					t.Errorf("start = %v", ev.StartTime)
				}
				if ev.EndTime == nil || ev.EndTime.Sub(ev.StartTime) != 90*time.Minute {
					t.Errorf("end = %v", ev.EndTime)
				}
			},
		},
		{
			name: "all day ignores times",
			form: EventFormModel{Title: "Holiday", Type: models.EventMeeting, Date: "2025-09-12", Start: "bogus", AllDay: true},
			check: func(t *testing.T, ev models.OneOffEvent) {
				if !ev.AllDay || ev.EndTime != nil || ev.StartTime.Hour() != 0 {
					t.Errorf("all-day event = %+v", ev)
				}
			},
		},
		{name: "blank title", form: EventFormModel{Title: "  ", Date: "2025-09-12", AllDay: true}, wantErr: true},
		{name: "bad date", form: EventFormModel{Title: "x", Date: "09/12/2025", AllDay: true}, wantErr: true},
		{name: "bad start", form: EventFormModel{Title: "x", Date: "2025-09-12", Start: "9am"}, wantErr: true},
		{name: "inverted", form: EventFormModel{Title: "x", Date: "2025-09-12", Start: "10:00", End: "09:00"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := tt.form.Event(time.UTC)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Event() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if ev.ID == "" {
					t.Error("event has no ID")
				}
				tt.check(t, ev)
			}
		})
	}
}
