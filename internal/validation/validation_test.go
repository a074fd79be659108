package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/models"
)

func course(id, code string, days []string, start, end string) models.Course {
	return models.Course{ID: id, TermID: "t1", Code: code, Title: code, MeetingDays: days, MeetingStart: start, MeetingEnd: end}
}

func hasType(result ValidationResult, ct ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidateCourses_Clean(t *testing.T) {
	result := New().ValidateCourses([]models.Course{
		course("1", "CS101", []string{"Mon", "Wed"}, "09:00", "10:00"),
		course("2", "MATH200", []string{"Tue", "Thu"}, "09:00", "10:00"),
		course("3", "ART1", nil, "", ""),
	})
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
}

func TestValidateCourses_Problems(t *testing.T) {
	tests := []struct {
		name   string
		course models.Course
		want   ConflictType
	}{
		{"bad start", course("1", "A", []string{"Mon"}, "9am", "10:00"), ConflictInvalidDateTime},
		{"bad end", course("1", "A", []string{"Mon"}, "09:00", "24:00"), ConflictInvalidDateTime},
		{"end before start", course("1", "A", []string{"Mon"}, "11:00", "10:00"), ConflictInvalidDateTime},
		{"unknown weekday", course("1", "A", []string{"Mon", "Someday"}, "09:00", "10:00"), ConflictInvalidWeekday},
		{"only start", course("1", "A", []string{"Mon"}, "09:00", ""), ConflictIncompleteMeeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateCourses([]models.Course{tt.course})
			if !hasType(result, tt.want) {
				t.Errorf("expected %s, got: %s", tt.want, result.FormatReport())
			}
		})
	}
}

func TestValidateCourses_ReportsEveryProblem(t *testing.T) {
	result := New().ValidateCourses([]models.Course{
		course("1", "A", []string{"Mon"}, "9am", "10pm"),
	})
	if len(result.Conflicts) != 2 {
		t.Errorf("expected both time fields reported, got: %s", result.FormatReport())
	}
}

func TestValidateCourses_Duplicates(t *testing.T) {
	result := New().ValidateCourses([]models.Course{
		course("b", "CS101", nil, "", ""),
		course("a", "CS101", nil, "", ""),
	})
	if !hasType(result, ConflictDuplicateCourse) {
		t.Fatalf("expected duplicate code conflict, got: %s", result.FormatReport())
	}
	if ids := result.Conflicts[0].CourseIDs; len(ids) != 2 {
		t.Errorf("CourseIDs = %v", ids)
	}
}

func TestValidateCourses_SameCodeAcrossTerms(t *testing.T) {
	fall := course("fall-cs101", "CS101", []string{"Mon"}, "09:00", "10:00")
	fall.TermID = "fall"
	spring := course("spring-cs101", "CS101", []string{"Mon"}, "09:00", "10:00")
	spring.TermID = "spring"

	result := New().ValidateCourses([]models.Course{fall, spring})
	if result.HasConflicts() {
		t.Fatalf("expected no conflicts across terms, got: %s", result.FormatReport())
	}

	var deleted []string
	actions := AutoFixDuplicateCourses(result.Conflicts, func(id string) error {
		deleted = append(deleted, id)
		return nil
	})
	if len(deleted) != 0 || len(actions) != 0 {
		t.Errorf("deleted = %v, actions = %d; want nothing removed", deleted, len(actions))
	}

	again := course("fall-cs101-b", "CS101", nil, "", "")
	again.TermID = "fall"
	result = New().ValidateCourses([]models.Course{fall, spring, again})
	var dups []Conflict
	for _, c := range result.Conflicts {
		if c.Type == ConflictDuplicateCourse {
			dups = append(dups, c)
		}
	}
	if len(dups) != 1 {
		t.Fatalf("expected one duplicate conflict, got: %s", result.FormatReport())
	}
	if ids := dups[0].CourseIDs; len(ids) != 2 || ids[0] != "fall-cs101" || ids[1] != "fall-cs101-b" {
		t.Errorf("CourseIDs = %v, want the two fall courses", ids)
	}
}

func TestValidateCourses_WeeklyOverlap(t *testing.T) {
	result := New().ValidateCourses([]models.Course{
		course("1", "CS101", []string{"Mon", "Wed"}, "09:00", "10:00"),
		course("2", "BIO5", []string{"Wed", "Fri"}, "09:30", "10:30"),
	})
	if !hasType(result, ConflictOverlappingCourses) {
		t.Fatalf("expected overlap on Wednesday, got: %s", result.FormatReport())
	}
	if !strings.Contains(result.Conflicts[0].Description, "Wed") {
		t.Errorf("description should name the shared day: %s", result.Conflicts[0].Description)
	}

	other := course("3", "BIO5", []string{"Wed"}, "09:30", "10:30")
	other.TermID = "t2"
	result = New().ValidateCourses([]models.Course{
		course("1", "CS101", []string{"Wed"}, "09:00", "10:00"),
		other,
	})
	if hasType(result, ConflictOverlappingCourses) {
		t.Errorf("courses in different terms should not overlap")
	}
}

func TestValidateTerm(t *testing.T) {
	tests := []struct {
		name string
		term models.Term
		want ConflictType
		ok   bool
	}{
		{"valid", models.Term{Name: "Spring", StartDate: "2025-01-10", EndDate: "2025-05-01"}, "", true},
		{"single day", models.Term{Name: "Intensive", StartDate: "2025-01-10", EndDate: "2025-01-10"}, "", true},
		{"inverted", models.Term{Name: "Oops", StartDate: "2025-05-01", EndDate: "2025-01-10"}, ConflictInvertedTerm, false},
		{"bad date", models.Term{Name: "Bad", StartDate: "Jan 10", EndDate: "2025-05-01"}, ConflictInvalidDateTime, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateTerm(tt.term)
			if tt.ok && result.HasConflicts() {
				t.Errorf("unexpected conflicts: %s", result.FormatReport())
			}
			if !tt.ok && !hasType(result, tt.want) {
				t.Errorf("expected %s, got: %s", tt.want, result.FormatReport())
			}
		})
	}
}

func TestValidateAssignments(t *testing.T) {
	courses := []models.Course{course("c1", "CS101", nil, "", "")}
	result := New().ValidateAssignments([]models.Assignment{
		{ID: "a1", CourseID: "c1", Title: "ok"},
		{ID: "a2", Title: "no course"},
		{ID: "a3", CourseID: "gone", Title: "orphan", DueAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}, courses)
	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictMissingCourseID {
		t.Fatalf("expected one missing course conflict, got: %s", result.FormatReport())
	}
	if result.Conflicts[0].Date != "2025-03-01" {
		t.Errorf("Date = %q", result.Conflicts[0].Date)
	}
}

func TestConflictsFromPairs(t *testing.T) {
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	pairs := []calendar.ConflictPair{{
		First:  models.CalendarEvent{Title: "Lecture", StartTime: start, EndTime: &end},
		Second: models.CalendarEvent{Title: "Lab", StartTime: start.Add(30 * time.Minute)},
	}}

	result := ConflictsFromPairs(pairs)
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	want := `2025-03-03: 09:00-10:00 "Lecture" overlaps "Lab" at 09:30`
	if result.Conflicts[0].Description != want {
		t.Errorf("Description = %q, want %q", result.Conflicts[0].Description, want)
	}
}

func TestFormatReport(t *testing.T) {
	var empty ValidationResult
	if got := empty.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	r := ValidationResult{Conflicts: []Conflict{{Description: "one"}}}
	r.Merge(ValidationResult{Conflicts: []Conflict{{Description: "two"}}})
	if got := r.FormatReport(); got != "Conflicts detected:\n- one\n- two\n" {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestAutoFixDuplicateCourses(t *testing.T) {
	conflicts := []Conflict{{
		Type:      ConflictDuplicateCourse,
		Items:     []string{"CS101"},
		CourseIDs: []string{"c", "a", "b"},
	}}

	var deleted []string
	actions := AutoFixDuplicateCourses(conflicts, func(id string) error {
		if id == "c" {
			return errors.New("locked")
		}
		deleted = append(deleted, id)
		return nil
	})

	if len(deleted) != 1 || deleted[0] != "b" {
		t.Errorf("deleted = %v, want [b]", deleted)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	if !strings.Contains(actions[0].Action, "kept ID: a") || !strings.Contains(actions[0].Action, "failed to remove: [c]") {
		t.Errorf("Action = %q", actions[0].Action)
	}
}
