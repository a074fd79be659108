package calendar

import (
	"math"
	"time"

	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
)

// FromAssignment converts an assignment into an all-day event on its due
// date. The event keeps the assignment's own ID; callers merging it with
// other event types must add constants.AssignmentIDPrefix themselves.
//
// With a course the color comes from the course code, otherwise from the
// urgency of the due date relative to now.
func (e *Engine) FromAssignment(a models.Assignment, course *models.Course, now time.Time) models.CalendarEvent {
	ev := models.CalendarEvent{
		ID:          a.ID,
		Title:       a.Title,
		Type:        models.EventAssignment,
		StartTime:   a.DueAt.In(e.loc),
		Description: a.Notes,
		IsAllDay:    true,
	}
	if course != nil {
		ev.Color = e.colors.ColorFor(course.Code)
		ev.CourseCode = course.Code
	} else {
		ev.Color = PriorityColor(PriorityFor(a.DueAt, now))
	}
	return ev
}

// DaysUntil returns ceil((due - now) / 24h). Past due dates are negative.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// PriorityFor buckets a due date: high within a day, medium within a week.
func PriorityFor(due, now time.Time) models.Priority {
	days := DaysUntil(due, now)
	switch {
	case days <= constants.PriorityHighMaxDays:
		return models.PriorityHigh
	case days <= constants.PriorityMediumMaxDays:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func PriorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return constants.ColorPriorityHigh
	case models.PriorityMedium:
		return constants.ColorPriorityMedium
	default:
		return constants.ColorPriorityLow
	}
}

// FromOneOff passes a stored one-off event through as a CalendarEvent.
// Type, color and all-day flag are taken as-is.
func FromOneOff(src models.OneOffEvent) models.CalendarEvent {
	return models.CalendarEvent{
		ID:          src.ID,
		Title:       src.Title,
		Type:        src.Type,
		StartTime:   src.StartTime,
		EndTime:     src.EndTime,
		Color:       src.Color,
		CourseCode:  src.CourseCode,
		Location:    src.Location,
		Description: src.Description,
		IsAllDay:    src.AllDay,
	}
}
