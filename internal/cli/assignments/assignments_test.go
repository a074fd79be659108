package assignments

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	settings, _ := store.GetSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := store.AddCourse(models.Course{ID: "cs101", Code: "CS101", Title: "Intro"}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	return &cli.Context{
		Store: store,
		Now:   func() time.Time { return time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC) },
		Out:   &out,
	}, &out
}

func onlyAssignment(t *testing.T, ctx *cli.Context) models.Assignment {
	t.Helper()
	all, err := ctx.Store.GetAllAssignments()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d assignments, want 1", len(all))
	}
	return all[0]
}

func TestAssignmentAdd(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &AssignmentAddCmd{Title: "Homework 1", Due: "2025-10-03", Course: "cs101", Notes: "ch. 1"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	a := onlyAssignment(t, ctx)
	if want := time.Date(2025, 10, 3, 23, 59, 0, 0, time.UTC); !a.DueAt.Equal(want) {
		t.Errorf("DueAt = %v, want %v", a.DueAt, want)
	}
	if a.CourseID != "cs101" || a.Status != models.AssignmentTodo || a.Notes != "ch. 1" {
		t.Errorf("assignment = %+v", a)
	}
}

func TestAssignmentAddByCodeWithTime(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&AssignmentAddCmd{Title: "Quiz", Due: "2025-10-02 10:30", Course: "Cs101"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	a := onlyAssignment(t, ctx)
	if a.CourseID != "cs101" {
		t.Errorf("CourseID = %q", a.CourseID)
	}
	if due := a.DueAt.UTC(); due.Hour() != 10 || due.Minute() != 30 {
		t.Errorf("DueAt = %v", a.DueAt)
	}
}

func TestAssignmentAddErrors(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&AssignmentAddCmd{Title: "X", Due: "next week"}).Run(ctx); err == nil {
		t.Error("expected error for bad due date")
	}
	if err := (&AssignmentAddCmd{Title: "X", Due: "2025-10-03", Course: "BIO9"}).Run(ctx); err == nil {
		t.Error("expected error for unknown course")
	}
}

func TestAssignmentDoneAndList(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&AssignmentAddCmd{Title: "Homework 1", Due: "2025-10-01 23:00", Course: "CS101"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	a := onlyAssignment(t, ctx)

	out.Reset()
	if err := (&AssignmentListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[high] CS101 Homework 1") {
		t.Errorf("list output:\n%s", out.String())
	}

	if err := (&AssignmentDoneCmd{ID: a.ID}).Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	if got, _ := ctx.Store.GetAssignment(a.ID); !got.Done() {
		t.Error("assignment not marked done")
	}

	out.Reset()
	if err := (&AssignmentListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "No assignments found" {
		t.Errorf("done assignment listed without --all:\n%s", out.String())
	}

	out.Reset()
	if err := (&AssignmentListCmd{All: true, ShowIDs: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[done]") || !strings.Contains(out.String(), a.ID) {
		t.Errorf("--all output:\n%s", out.String())
	}

	if err := (&AssignmentDoneCmd{ID: a.ID, Undo: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := ctx.Store.GetAssignment(a.ID); got.Done() {
		t.Error("undo did not reopen assignment")
	}
}

func TestAssignmentDelete(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&AssignmentAddCmd{Title: "X", Due: "2025-10-03"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	a := onlyAssignment(t, ctx)
	if err := (&AssignmentDeleteCmd{ID: a.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&AssignmentDeleteCmd{ID: a.ID}).Run(ctx); err == nil || !strings.Contains(err.Error(), "assignment not found") {
		t.Errorf("second delete error = %v", err)
	}
	if err := (&AssignmentDoneCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("expected error marking missing assignment")
	}
}
