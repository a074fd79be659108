// Package calendar expands weekly course meetings into dated class events,
// normalizes assignments and one-off events into the same shape, and offers
// range, grouping, deadline and conflict queries over the merged list.
//
// Nothing here performs I/O. Every result is recomputed from the records the
// caller passes in; the only state is the ColorAssigner held by an Engine.
package calendar

import (
	"time"

	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

// Engine owns the color assignments and the wall-clock location that event
// dates are computed in.
type Engine struct {
	colors *ColorAssigner
	loc    *time.Location
}

// New creates an Engine. A nil assigner gets the default palette and a nil
// location means time.Local.
func New(colors *ColorAssigner, loc *time.Location) *Engine {
	if colors == nil {
		colors = NewColorAssigner(nil)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{colors: colors, loc: loc}
}

func (e *Engine) Colors() *ColorAssigner {
	return e.colors
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Sources are the raw records a merged feed is built from.
type Sources struct {
	Term          models.Term
	Courses       []models.Course
	Assignments   []models.Assignment
	Events        []models.OneOffEvent
	HideCompleted bool
}

// Build merges class, assignment and one-off events into one list sorted by
// start time. Courses attached to another term are skipped, and a zero Term
// contributes no class events. Assignment IDs are prefixed with
// constants.AssignmentIDPrefix. The first expansion error fails the build.
func (e *Engine) Build(src Sources, now time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent

	hasTerm := src.Term.StartDate != "" || src.Term.EndDate != ""
	coursesByID := make(map[string]*models.Course, len(src.Courses))
	for i := range src.Courses {
		course := &src.Courses[i]
		coursesByID[course.ID] = course

		if !hasTerm || (course.TermID != "" && course.TermID != src.Term.ID) {
			continue
		}
		classes, err := e.Expand(*course, src.Term)
		if err != nil {
			return nil, err
		}
		events = append(events, classes...)
	}
	classCount := len(events)

	for _, a := range src.Assignments {
		if src.HideCompleted && a.Done() {
			continue
		}
		ev := e.FromAssignment(a, coursesByID[a.CourseID], now)
		ev.ID = constants.AssignmentIDPrefix + ev.ID
		events = append(events, ev)
	}

	for _, raw := range src.Events {
		ev := FromOneOff(raw)
		ev.StartTime = ev.StartTime.In(e.loc)
		if ev.EndTime != nil {
			end := ev.EndTime.In(e.loc)
			ev.EndTime = &end
		}
		events = append(events, ev)
	}

	logger.Debug("Built calendar feed",
		"term", src.Term.ID,
		"classes", classCount,
		"total", len(events),
	)
	return SortByTime(events), nil
}

// ActiveTerm picks the term containing now's date. Failing that it picks the
// most recently started term, and failing that the earliest upcoming one.
func ActiveTerm(terms []models.Term, now time.Time) (models.Term, bool) {
	if len(terms) == 0 {
		return models.Term{}, false
	}
	today := utils.DateKey(now)

	var started, upcoming *models.Term
	for i := range terms {
		t := &terms[i]
		if t.StartDate <= today && today <= t.EndDate {
			return *t, true
		}
		if t.StartDate <= today {
			if started == nil || t.StartDate > started.StartDate {
				started = t
			}
		} else if upcoming == nil || t.StartDate < upcoming.StartDate {
			upcoming = t
		}
	}
	if started != nil {
		return *started, true
	}
	return *upcoming, true
}
