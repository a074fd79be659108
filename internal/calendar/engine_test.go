package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
)

func newTestEngine() *Engine {
	return New(nil, time.UTC)
}

func TestNewDefaults(t *testing.T) {
	e := New(nil, nil)
	if e.Location() != time.Local {
		t.Errorf("Location() = %v, want Local", e.Location())
	}
	if e.Colors() == nil {
		t.Fatal("Colors() is nil")
	}
	if got := e.Colors().Palette(); len(got) != len(constants.DefaultPalette) {
		t.Errorf("palette has %d colors", len(got))
	}
}

func TestBuild(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

	course := testCourse()
	course.TermID = "spring"
	other := testCourse()
	other.ID, other.Code, other.TermID = "course-2", "HIST1", "fall"

	examStart := time.Date(2025, 1, 7, 13, 0, 0, 0, time.FixedZone("EST", -5*3600))
	src := Sources{
		Term:    models.Term{ID: "spring", StartDate: "2025-01-06", EndDate: "2025-01-08"},
		Courses: []models.Course{course, other},
		Assignments: []models.Assignment{
			{ID: "a1", CourseID: course.ID, Title: "Essay", DueAt: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)},
			{ID: "a2", Title: "Done already", DueAt: time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), Status: models.AssignmentDone},
		},
		Events: []models.OneOffEvent{
			{ID: "ev1", Title: "Midterm", Type: models.EventExam, StartTime: examStart, Color: "#111111"},
		},
	}

	events, err := engine.Build(src, now)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// Mon + Wed classes, two assignments, one exam
	if len(events) != 5 {
		t.Fatalf("Build() returned %d events: %v", len(events), ids(events))
	}
	equalIDs(t, events, "course-1-2025-01-06", "assignment-a1", "assignment-a2", "ev1", "course-1-2025-01-08")

	for _, ev := range events {
		if strings.HasPrefix(ev.ID, "course-2") {
			t.Errorf("course from another term was expanded: %s", ev.ID)
		}
	}
	if events[3].StartTime.Location() != time.UTC {
		t.Errorf("one-off start not converted to engine location")
	}

	src.HideCompleted = true
	events, err = engine.Build(src, now)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, ev := range events {
		if ev.ID == "assignment-a2" {
			t.Errorf("completed assignment not hidden")
		}
	}
}

func TestBuildWithoutTerm(t *testing.T) {
	events, err := newTestEngine().Build(Sources{
		Courses: []models.Course{testCourse()},
	}, time.Now())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Build() without term returned %d events", len(events))
	}
}

func TestBuildPropagatesValidationError(t *testing.T) {
	bad := testCourse()
	bad.MeetingStart = "nine"
	_, err := newTestEngine().Build(Sources{
		Term:    models.Term{StartDate: "2025-01-06", EndDate: "2025-01-08"},
		Courses: []models.Course{bad},
	}, time.Now())
	if err == nil {
		t.Fatal("Build() error = nil, want validation error")
	}
}

func TestActiveTerm(t *testing.T) {
	fall := models.Term{ID: "fall", StartDate: "2024-09-01", EndDate: "2024-12-15"}
	spring := models.Term{ID: "spring", StartDate: "2025-01-10", EndDate: "2025-05-01"}
	summer := models.Term{ID: "summer", StartDate: "2025-06-01", EndDate: "2025-08-01"}
	terms := []models.Term{summer, fall, spring}

	tests := []struct {
		name string
		now  time.Time
		want string
		ok   bool
	}{
		{"inside spring", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "spring", true},
		{"last day inclusive", time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC), "spring", true},
		{"between terms", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), "spring", true},
		{"before everything", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "fall", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ActiveTerm(terms, tt.now)
			if ok != tt.ok || got.ID != tt.want {
				t.Errorf("ActiveTerm() = %q, %v; want %q, %v", got.ID, ok, tt.want, tt.ok)
			}
		})
	}

	if _, ok := ActiveTerm(nil, time.Now()); ok {
		t.Error("ActiveTerm(nil) reported a term")
	}
}
