// Package agenda builds the merged calendar feed from a storage provider and
// renders it for the terminal.
package agenda

import (
	"fmt"
	"time"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage"
	"github.com/julianstephens/coursecal/internal/utils"
)

// Feed is one snapshot of the calendar as of Now.
type Feed struct {
	Now       time.Time
	Location  *time.Location
	Settings  models.Settings
	Term      models.Term
	HasTerm   bool
	WeekStart time.Weekday
	Events    []models.CalendarEvent
}

// Load reads settings and records from store and builds the feed for the
// active term. now is converted into the configured timezone.
func Load(store storage.Provider, now time.Time) (*Feed, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	weekStart, err := utils.ParseWeekday(settings.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid week_start setting: %w", err)
	}

	palette, err := calendar.ParsePalette(settings.Palette)
	if err != nil {
		logger.Warn("Ignoring palette setting", "error", err)
		palette = nil
	}

	terms, err := store.GetAllTerms()
	if err != nil {
		return nil, fmt.Errorf("failed to get terms: %w", err)
	}
	courses, err := store.GetAllCourses()
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	assignments, err := store.GetAllAssignments()
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	events, err := store.GetAllEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	now = now.In(loc)
	term, hasTerm := calendar.ActiveTerm(terms, now)

	engine := calendar.New(calendar.NewColorAssigner(palette), loc)
	merged, err := engine.Build(calendar.Sources{
		Term:          term,
		Courses:       courses,
		Assignments:   assignments,
		Events:        events,
		HideCompleted: settings.HideCompleted,
	}, now)
	if err != nil {
		return nil, err
	}

	return &Feed{
		Now:       now,
		Location:  loc,
		Settings:  settings,
		Term:      term,
		HasTerm:   hasTerm,
		WeekStart: weekStart,
		Events:    merged,
	}, nil
}

func (f *Feed) Today() []models.CalendarEvent {
	return calendar.Today(f.Events, f.Now)
}

// Week returns the events of the current week using the configured week start.
func (f *Feed) Week() []models.CalendarEvent {
	return calendar.ThisWeekFrom(f.Events, f.Now, f.WeekStart)
}

// Upcoming returns deadlines within days, or the configured horizon when
// days is not positive.
func (f *Feed) Upcoming(days int) []models.CalendarEvent {
	if days <= 0 {
		days = f.Settings.HorizonDays
	}
	return calendar.UpcomingDeadlines(f.Events, f.Now, days)
}

// Range returns events starting on any date from "from" through "to"
// (inclusive, YYYY-MM-DD in the feed's timezone).
func (f *Feed) Range(from, to string) ([]models.CalendarEvent, error) {
	start, err := utils.ParseDateInLocation(from, f.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", from, err)
	}
	end, err := utils.ParseDateInLocation(to, f.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", to, from)
	}
	return calendar.FilterByRange(f.Events, start, end.AddDate(0, 0, 1)), nil
}

func (f *Feed) Conflicts() []calendar.ConflictPair {
	return calendar.FindConflicts(f.Events)
}
