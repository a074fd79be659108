// Package storagetest holds the behavior every storage.Provider must share.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage"
)

// Run exercises a freshly initialized provider. newProvider must return a
// provider on which Init has already succeeded.
func Run(t *testing.T, newProvider func(t *testing.T) storage.Provider) {
	t.Run("Settings", func(t *testing.T) { testSettings(t, newProvider(t)) })
	t.Run("Terms", func(t *testing.T) { testTerms(t, newProvider(t)) })
	t.Run("Courses", func(t *testing.T) { testCourses(t, newProvider(t)) })
	t.Run("Assignments", func(t *testing.T) { testAssignments(t, newProvider(t)) })
	t.Run("Events", func(t *testing.T) { testEvents(t, newProvider(t)) })
}

func testSettings(t *testing.T, p storage.Provider) {
	got, err := p.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() after Init error = %v", err)
	}
	if got.HorizonDays == 0 || got.WeekStart == "" {
		t.Errorf("defaults not written on Init: %+v", got)
	}

	want := models.Settings{
		Timezone:      "UTC",
		WeekStart:     "monday",
		HorizonDays:   10,
		HideCompleted: true,
		Palette:       []string{"#010101", "#020202"},
	}
	if err := p.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	got, err = p.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.Timezone != want.Timezone || got.WeekStart != want.WeekStart ||
		got.HorizonDays != want.HorizonDays || got.HideCompleted != want.HideCompleted ||
		len(got.Palette) != 2 || got.Palette[1] != "#020202" {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}

func testTerms(t *testing.T, p storage.Provider) {
	spring := models.Term{ID: "spring", Name: "Spring 2025", StartDate: "2025-01-10", EndDate: "2025-05-01"}
	fall := models.Term{ID: "fall", Name: "Fall 2024", StartDate: "2024-09-01", EndDate: "2024-12-15"}
	for _, term := range []models.Term{spring, fall} {
		if err := p.AddTerm(term); err != nil {
			t.Fatalf("AddTerm(%s) error = %v", term.ID, err)
		}
	}

	got, err := p.GetTerm("spring")
	if err != nil || got != spring {
		t.Errorf("GetTerm() = %+v, %v", got, err)
	}

	all, err := p.GetAllTerms()
	if err != nil {
		t.Fatalf("GetAllTerms() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "fall" {
		t.Errorf("GetAllTerms() = %+v, want fall first", all)
	}

	if err := p.DeleteTerm("fall"); err != nil {
		t.Fatalf("DeleteTerm() error = %v", err)
	}
	if _, err := p.GetTerm("fall"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetTerm(deleted) error = %v, want ErrNotFound", err)
	}
	if err := p.DeleteTerm("fall"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteTerm(missing) error = %v, want ErrNotFound", err)
	}
}

func testCourses(t *testing.T, p storage.Provider) {
	cs := models.Course{
		ID:           "c1",
		TermID:       "spring",
		Code:         "CS101",
		Title:        "Intro",
		MeetingDays:  []string{"Mon", "Wed"},
		MeetingStart: "09:00",
		MeetingEnd:   "10:15",
		Instructor:   "Dr. Hopper",
		Location:     "Hall 2",
	}
	art := models.Course{ID: "c2", Code: "ART1", Title: "Drawing"}
	for _, c := range []models.Course{cs, art} {
		if err := p.AddCourse(c); err != nil {
			t.Fatalf("AddCourse(%s) error = %v", c.ID, err)
		}
	}

	got, err := p.GetCourse("c1")
	if err != nil {
		t.Fatalf("GetCourse() error = %v", err)
	}
	if got.Code != cs.Code || got.MeetingStart != "09:00" || len(got.MeetingDays) != 2 || got.MeetingDays[1] != "Wed" ||
		got.Instructor != cs.Instructor || got.Location != cs.Location || got.TermID != "spring" {
		t.Errorf("GetCourse() = %+v, want %+v", got, cs)
	}

	all, err := p.GetAllCourses()
	if err != nil {
		t.Fatalf("GetAllCourses() error = %v", err)
	}
	if len(all) != 2 || all[0].Code != "ART1" {
		t.Errorf("GetAllCourses() = %+v, want ordered by code", all)
	}
	if len(all[0].MeetingDays) != 0 {
		t.Errorf("course without meeting days came back with %v", all[0].MeetingDays)
	}

	due := time.Date(2025, 2, 1, 23, 59, 0, 0, time.UTC)
	if err := p.AddAssignment(models.Assignment{ID: "a1", CourseID: "c1", Title: "PS1", DueAt: due, Status: models.AssignmentTodo}); err != nil {
		t.Fatalf("AddAssignment() error = %v", err)
	}
	if err := p.DeleteCourse("c1"); err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}
	if _, err := p.GetAssignment("a1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("assignment of deleted course still present: %v", err)
	}
	if _, err := p.GetCourse("c1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCourse(deleted) error = %v, want ErrNotFound", err)
	}
}

func testAssignments(t *testing.T, p storage.Provider) {
	later := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sooner := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	a := models.Assignment{ID: "a1", CourseID: "c1", Title: "Essay", DueAt: later, Status: models.AssignmentTodo, Notes: "5 pages"}
	b := models.Assignment{ID: "a2", Title: "Quiz", DueAt: sooner, Status: models.AssignmentTodo}
	for _, x := range []models.Assignment{a, b} {
		if err := p.AddAssignment(x); err != nil {
			t.Fatalf("AddAssignment(%s) error = %v", x.ID, err)
		}
	}

	got, err := p.GetAssignment("a1")
	if err != nil {
		t.Fatalf("GetAssignment() error = %v", err)
	}
	if !got.DueAt.Equal(later) || got.Notes != "5 pages" || got.CourseID != "c1" || got.Status != models.AssignmentTodo {
		t.Errorf("GetAssignment() = %+v", got)
	}

	all, err := p.GetAllAssignments()
	if err != nil {
		t.Fatalf("GetAllAssignments() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "a2" {
		t.Errorf("GetAllAssignments() = %+v, want soonest first", all)
	}

	got.Status = models.AssignmentDone
	if err := p.UpdateAssignment(got); err != nil {
		t.Fatalf("UpdateAssignment() error = %v", err)
	}
	if got, _ = p.GetAssignment("a1"); !got.Done() {
		t.Errorf("status not updated: %+v", got)
	}
	if err := p.UpdateAssignment(models.Assignment{ID: "nope", DueAt: later}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateAssignment(missing) error = %v, want ErrNotFound", err)
	}

	if err := p.DeleteAssignment("a2"); err != nil {
		t.Fatalf("DeleteAssignment() error = %v", err)
	}
	if err := p.DeleteAssignment("a2"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteAssignment(missing) error = %v, want ErrNotFound", err)
	}
}

func testEvents(t *testing.T, p storage.Provider) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	exam := models.OneOffEvent{
		ID:          "e1",
		Title:       "Midterm",
		Type:        models.EventExam,
		StartTime:   start,
		EndTime:     &end,
		Color:       "#ef4444",
		CourseCode:  "CS101",
		Location:    "Gym",
		Description: "closed book",
	}
	holiday := models.OneOffEvent{
		ID:        "e2",
		Title:     "Reading day",
		Type:      models.EventMeeting,
		StartTime: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		AllDay:    true,
	}
	for _, ev := range []models.OneOffEvent{exam, holiday} {
		if err := p.AddEvent(ev); err != nil {
			t.Fatalf("AddEvent(%s) error = %v", ev.ID, err)
		}
	}

	got, err := p.GetEvent("e1")
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if got.EndTime == nil || !got.EndTime.Equal(end) || !got.StartTime.Equal(start) {
		t.Errorf("times not preserved: %+v", got)
	}
	if got.Type != models.EventExam || got.Color != "#ef4444" || got.Location != "Gym" || got.AllDay {
		t.Errorf("GetEvent() = %+v", got)
	}

	all, err := p.GetAllEvents()
	if err != nil {
		t.Fatalf("GetAllEvents() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "e2" {
		t.Fatalf("GetAllEvents() = %+v, want earliest first", all)
	}
	if all[0].EndTime != nil || !all[0].AllDay {
		t.Errorf("all-day event round trip = %+v", all[0])
	}

	if err := p.DeleteEvent("e1"); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	if _, err := p.GetEvent("e1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEvent(deleted) error = %v, want ErrNotFound", err)
	}
}
