package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingCourses ConflictType = "overlapping_courses"
	ConflictOverlappingEvents  ConflictType = "overlapping_events"
	ConflictInvalidDateTime    ConflictType = "invalid_datetime"
	ConflictInvalidWeekday     ConflictType = "invalid_weekday"
	ConflictIncompleteMeeting  ConflictType = "incomplete_meeting"
	ConflictDuplicateCourse    ConflictType = "duplicate_course_code"
	ConflictMissingCourseID    ConflictType = "missing_course_id"
	ConflictInvertedTerm       ConflictType = "inverted_term"
)

// Conflict represents a detected problem in courses, terms or the merged feed
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // course codes or event titles involved
	TimeRange   string   // Human-readable time range (if applicable)
	CourseIDs   []string // IDs of courses involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends other's conflicts.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks stored records before they reach the calendar engine
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateCourses reports every malformed meeting pattern, duplicate course
// code and weekly overlap between two courses. Unlike calendar.Engine.Expand
// it does not stop at the first problem.
func (v *Validator) ValidateCourses(courses []models.Course) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// A code repeats legitimately across terms; only one per term is a duplicate.
	type termCode struct{ termID, code string }
	codeIDs := make(map[termCode][]string)
	for _, c := range courses {
		if c.Code == "" {
			continue
		}
		key := termCode{c.TermID, c.Code}
		codeIDs[key] = append(codeIDs[key], c.ID)
	}
	keys := make([]termCode, 0, len(codeIDs))
	for key := range codeIDs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].code != keys[j].code {
			return keys[i].code < keys[j].code
		}
		return keys[i].termID < keys[j].termID
	})
	for _, key := range keys {
		ids := codeIDs[key]
		if len(ids) > 1 {
			desc := fmt.Sprintf("Duplicate course code: \"%s\" (IDs: %v)", key.code, ids)
			if key.termID != "" {
				desc = fmt.Sprintf("Duplicate course code in term %s: \"%s\" (IDs: %v)", key.termID, key.code, ids)
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateCourse,
				Description: desc,
				Items:       []string{key.code},
				CourseIDs:   ids,
			})
		}
	}

	var valid []models.Course
	for _, c := range courses {
		ok := true

		if len(c.MeetingDays) > 0 && (c.MeetingStart == "") != (c.MeetingEnd == "") {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictIncompleteMeeting,
				Description: fmt.Sprintf("Course \"%s\" has meeting days but only one of start/end time; it will not appear on the calendar", c.Code),
				Items:       []string{c.Code},
				CourseIDs:   []string{c.ID},
			})
			ok = false
		}

		if _, err := utils.ParseWeekdays(c.MeetingDays); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWeekday,
				Description: fmt.Sprintf("Course \"%s\" has %v", c.Code, err),
				Items:       []string{c.Code},
				CourseIDs:   []string{c.ID},
			})
			ok = false
		}

		if c.MeetingStart != "" && !utils.ValidateTimeFormat(c.MeetingStart) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Course \"%s\" has invalid meeting_start time: %s", c.Code, c.MeetingStart),
				Items:       []string{c.Code},
				CourseIDs:   []string{c.ID},
			})
			ok = false
		}
		if c.MeetingEnd != "" && !utils.ValidateTimeFormat(c.MeetingEnd) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Course \"%s\" has invalid meeting_end time: %s", c.Code, c.MeetingEnd),
				Items:       []string{c.Code},
				CourseIDs:   []string{c.ID},
			})
			ok = false
		}

		if ok && c.HasMeetingPattern() {
			startMin, _ := utils.ParseTimeToMinutes(c.MeetingStart)
			endMin, _ := utils.ParseTimeToMinutes(c.MeetingEnd)
			if endMin < startMin {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDateTime,
					Description: fmt.Sprintf("Course \"%s\" has end time (%s) before start time (%s)", c.Code, c.MeetingEnd, c.MeetingStart),
					Items:       []string{c.Code},
					CourseIDs:   []string{c.ID},
				})
				ok = false
			}
		}

		if ok && c.HasMeetingPattern() {
			valid = append(valid, c)
		}
	}

	// Pairwise over courses; a term rarely has more than a dozen
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			a, b := valid[i], valid[j]
			if a.TermID != b.TermID {
				continue
			}
			shared := sharedWeekdays(a.MeetingDays, b.MeetingDays)
			if len(shared) == 0 {
				continue
			}
			if !timesOverlap(a.MeetingStart, a.MeetingEnd, b.MeetingStart, b.MeetingEnd) {
				continue
			}
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverlappingCourses,
				Description: fmt.Sprintf("%s: %s-%s \"%s\" overlaps \"%s\" (%s-%s)",
					strings.Join(shared, ","), a.MeetingStart, a.MeetingEnd, a.Code, b.Code, b.MeetingStart, b.MeetingEnd),
				Items:     []string{a.Code, b.Code},
				TimeRange: fmt.Sprintf("%s-%s", a.MeetingStart, a.MeetingEnd),
				CourseIDs: []string{a.ID, b.ID},
			})
		}
	}

	return result
}

// ValidateTerm checks a term's date bounds. An inverted range is reported
// even though expansion treats it as an empty term.
func (v *Validator) ValidateTerm(term models.Term) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	start, errStart := time.Parse(constants.DateFormat, term.StartDate)
	if errStart != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Term \"%s\" has invalid start date: %s", term.Name, term.StartDate),
			Items:       []string{term.Name},
		})
	}
	end, errEnd := time.Parse(constants.DateFormat, term.EndDate)
	if errEnd != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Term \"%s\" has invalid end date: %s", term.Name, term.EndDate),
			Items:       []string{term.Name},
		})
	}
	if errStart == nil && errEnd == nil && end.Before(start) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvertedTerm,
			Description: fmt.Sprintf("Term \"%s\" ends (%s) before it starts (%s); no classes will be generated", term.Name, term.EndDate, term.StartDate),
			Items:       []string{term.Name},
		})
	}
	return result
}

// ValidateAssignments reports assignments pointing at a course that does not exist.
func (v *Validator) ValidateAssignments(assignments []models.Assignment, courses []models.Course) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(courses))
	for _, c := range courses {
		known[c.ID] = true
	}
	for _, a := range assignments {
		if a.CourseID == "" || known[a.CourseID] {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingCourseID,
			Description: fmt.Sprintf("Assignment \"%s\" references missing course ID: %s", a.Title, a.CourseID),
			Date:        utils.DateKey(a.DueAt),
			Items:       []string{a.Title},
		})
	}
	return result
}

// ConflictsFromPairs turns calendar.FindConflicts output into report entries.
func ConflictsFromPairs(pairs []calendar.ConflictPair) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, p := range pairs {
		a, b := p.First, p.Second
		end := ""
		if a.EndTime != nil {
			end = a.EndTime.Format(constants.TimeFormat)
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictOverlappingEvents,
			Description: fmt.Sprintf("%s: %s-%s \"%s\" overlaps \"%s\" at %s",
				utils.DateKey(a.StartTime), a.StartTime.Format(constants.TimeFormat), end,
				a.Title, b.Title, b.StartTime.Format(constants.TimeFormat)),
			Date:      utils.DateKey(a.StartTime),
			Items:     []string{a.Title, b.Title},
			TimeRange: fmt.Sprintf("%s-%s", a.StartTime.Format(constants.TimeFormat), end),
		})
	}
	return result
}

// AutoFixDuplicateCourses keeps the lexicographically smallest ID of each
// duplicated course code and deletes the rest through deleteFunc.
func AutoFixDuplicateCourses(conflicts []Conflict, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateCourse || len(conflict.CourseIDs) <= 1 {
			continue
		}

		ids := make([]string, len(conflict.CourseIDs))
		copy(ids, conflict.CourseIDs)
		sort.Strings(ids)

		keep := ids[0]
		var deletedIDs, failedIDs []string
		for _, id := range ids[1:] {
			if err := deleteFunc(id); err == nil {
				deletedIDs = append(deletedIDs, id)
			} else {
				failedIDs = append(failedIDs, id)
			}
		}

		code := ""
		if len(conflict.Items) > 0 {
			code = conflict.Items[0]
		}
		switch {
		case len(deletedIDs) > 0:
			msg := fmt.Sprintf("Removed %d duplicate course(s) with code \"%s\" (kept ID: %s, removed: %v)", len(deletedIDs), code, keep, deletedIDs)
			if len(failedIDs) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failedIDs)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		case len(failedIDs) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates for \"%s\": %v", code, failedIDs),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}

func sharedWeekdays(a, b []string) []string {
	da, err := utils.ParseWeekdays(a)
	if err != nil {
		return nil
	}
	db, err := utils.ParseWeekdays(b)
	if err != nil {
		return nil
	}
	inB := make(map[time.Weekday]bool, len(db))
	for _, d := range db {
		inB[d] = true
	}
	var shared []time.Weekday
	for _, d := range da {
		if inB[d] {
			shared = append(shared, d)
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	out := make([]string, 0, len(shared))
	for _, d := range shared {
		out = append(out, utils.ShortWeekday(d))
	}
	return out
}

// timesOverlap checks if two HH:MM ranges overlap
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := utils.ParseTimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := utils.ParseTimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := utils.ParseTimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := utils.ParseTimeToMinutes(end2)
	if err != nil {
		return false
	}

	// Two ranges overlap if: start1 < end2 AND start2 < end1
	return s1 < e2 && s2 < e1
}
