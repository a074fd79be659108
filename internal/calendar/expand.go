package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// Expand turns a course's weekly meeting pattern into one class event per
// matching weekday between the term's start and end dates (inclusive).
//
// Courses without meeting days or without both meeting times produce no
// events. An inverted term range also produces no events. Malformed times,
// weekday tokens or term dates are reported as *ValidationError.
//
// Event IDs are "<courseID>-<YYYY-MM-DD>", so re-expanding the same input
// always yields the same IDs in the same (ascending) order.
func (e *Engine) Expand(course models.Course, term models.Term) ([]models.CalendarEvent, error) {
	if !course.HasMeetingPattern() {
		return nil, nil
	}

	days, err := utils.ParseWeekdays(course.MeetingDays)
	if err != nil {
		return nil, newValidationError(course.ID, "meetingDays", strings.Join(course.MeetingDays, ","), ErrInvalidWeekday, err)
	}

	startHour, startMinute, err := utils.ParseClock(course.MeetingStart)
	if err != nil {
		return nil, newValidationError(course.ID, "meetingStart", course.MeetingStart, ErrInvalidTime, err)
	}
	endHour, endMinute, err := utils.ParseClock(course.MeetingEnd)
	if err != nil {
		return nil, newValidationError(course.ID, "meetingEnd", course.MeetingEnd, ErrInvalidTime, err)
	}
	if endHour*60+endMinute < startHour*60+startMinute {
		return nil, newValidationError(course.ID, "meetingEnd", course.MeetingEnd, ErrInvertedMeeting, nil)
	}

	first, err := utils.ParseDateInLocation(term.StartDate, e.loc)
	if err != nil {
		return nil, newValidationError(course.ID, "term.startDate", term.StartDate, ErrInvalidDate, err)
	}
	last, err := utils.ParseDateInLocation(term.EndDate, e.loc)
	if err != nil {
		return nil, newValidationError(course.ID, "term.endDate", term.EndDate, ErrInvalidDate, err)
	}
	if last.Before(first) {
		return nil, nil
	}

	byDay := make([]rrule.Weekday, 0, len(days))
	for _, wd := range days {
		byDay = append(byDay, rruleWeekdays[wd])
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Wkst:      rrule.SU,
		Byweekday: byDay,
		Dtstart:   utils.AtClock(first, startHour, startMinute, e.loc),
		Until:     utils.AtClock(last, startHour, startMinute, e.loc),
	})
	if err != nil {
		return nil, fmt.Errorf("building weekly rule for course %s: %w", course.ID, err)
	}

	color := e.colors.ColorFor(course.Code)
	description := ""
	if course.Instructor != "" {
		description = "Instructor: " + course.Instructor
	}

	occurrences := rule.All()
	events := make([]models.CalendarEvent, 0, len(occurrences))
	for _, occ := range occurrences {
		start := utils.AtClock(occ.In(e.loc), startHour, startMinute, e.loc)
		end := utils.AtClock(start, endHour, endMinute, e.loc)
		events = append(events, models.CalendarEvent{
			ID:          course.ID + "-" + utils.DateKey(start),
			Title:       course.Title,
			Type:        models.EventClass,
			StartTime:   start,
			EndTime:     &end,
			Color:       color,
			CourseCode:  course.Code,
			Location:    course.Location,
			Description: description,
		})
	}
	return events, nil
}
