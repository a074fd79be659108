package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage/sqlite"
)

var testNow = time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC)

// newTestContext wraps an uninitialized sqlite store.
func newTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.New(dbPath)
	t.Cleanup(func() { _ = store.Close() })

	var out bytes.Buffer
	return &cli.Context{
		Store: store,
		Now:   func() time.Time { return testNow },
		Out:   &out,
	}, &out, dbPath
}

// setupTestDB returns an initialized store holding one term, one course,
// one assignment and one event that overlaps the course.
func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	ctx, out, dbPath := newTestContext(t)
	store := ctx.Store
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
	must(store.AddAssignment(models.Assignment{
		ID: "hw1", CourseID: "cs101", Title: "Homework 1",
		DueAt: time.Date(2025, 9, 12, 23, 59, 0, 0, time.UTC), Status: models.AssignmentTodo,
	}))
	end := time.Date(2025, 9, 10, 10, 30, 0, 0, time.UTC)
	must(store.AddEvent(models.OneOffEvent{
		ID: "advising", Title: "Advising", Type: models.EventMeeting,
		StartTime: time.Date(2025, 9, 10, 9, 30, 0, 0, time.UTC), EndTime: &end,
	}))
	return ctx, out, dbPath
}
