package calendar

import (
	"sort"
	"time"

	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

// FilterByRange returns the events whose start falls in [start, end),
// preserving input order.
func FilterByRange(events []models.CalendarEvent, start, end time.Time) []models.CalendarEvent {
	var out []models.CalendarEvent
	for _, ev := range events {
		if !ev.StartTime.Before(start) && ev.StartTime.Before(end) {
			out = append(out, ev)
		}
	}
	return out
}

// Today returns the events starting on now's calendar date.
func Today(events []models.CalendarEvent, now time.Time) []models.CalendarEvent {
	start := utils.StartOfDay(now)
	return FilterByRange(events, start, start.AddDate(0, 0, 1))
}

// ThisWeek returns the events of the Sunday-based week containing now.
func ThisWeek(events []models.CalendarEvent, now time.Time) []models.CalendarEvent {
	return ThisWeekFrom(events, now, time.Sunday)
}

// ThisWeekFrom is ThisWeek with an explicit first day of the week.
func ThisWeekFrom(events []models.CalendarEvent, now time.Time, weekStart time.Weekday) []models.CalendarEvent {
	start := utils.StartOfWeek(now, weekStart)
	return FilterByRange(events, start, start.AddDate(0, 0, 7))
}

// UpcomingDeadlines returns assignment and exam events starting in
// [now, now+horizonDays), soonest first.
func UpcomingDeadlines(events []models.CalendarEvent, now time.Time, horizonDays int) []models.CalendarEvent {
	end := now.AddDate(0, 0, horizonDays)
	var out []models.CalendarEvent
	for _, ev := range events {
		if !ev.Type.IsDeadline() {
			continue
		}
		if !ev.StartTime.Before(now) && ev.StartTime.Before(end) {
			out = append(out, ev)
		}
	}
	return SortByTime(out)
}

// SortByTime returns a copy of events stably sorted by start time.
func SortByTime(events []models.CalendarEvent) []models.CalendarEvent {
	out := make([]models.CalendarEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// GroupByDate partitions events by the calendar date of their start time.
// Each group keeps the relative order of the input.
func GroupByDate(events []models.CalendarEvent) map[string][]models.CalendarEvent {
	groups := make(map[string][]models.CalendarEvent)
	for _, ev := range events {
		key := utils.DateKey(ev.StartTime)
		groups[key] = append(groups[key], ev)
	}
	return groups
}

// SortedDates returns the keys of a GroupByDate result in ascending order.
func SortedDates(groups map[string][]models.CalendarEvent) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConflictPair is two timed events on the same day where the first ends
// after the second starts.
type ConflictPair struct {
	First  models.CalendarEvent
	Second models.CalendarEvent
}

// FindConflicts scans adjacent pairs of timed (non all-day) events in start
// order. A reported pair is consumed and the scan resumes after it, so only
// adjacent overlaps are found: with A 09:00-10:00, B 09:30-10:30 and
// C 10:00-11:00 only (A, B) is reported.
func FindConflicts(events []models.CalendarEvent) []ConflictPair {
	var timed []models.CalendarEvent
	for _, ev := range events {
		if ev.IsAllDay {
			continue
		}
		timed = append(timed, ev)
	}
	sorted := SortByTime(timed)

	var pairs []ConflictPair
	for i := 0; i+1 < len(sorted); {
		a, b := sorted[i], sorted[i+1]
		if a.EndTime != nil && utils.SameDay(a.StartTime, b.StartTime) && a.EndTime.After(b.StartTime) {
			pairs = append(pairs, ConflictPair{First: a, Second: b})
			i += 2
			continue
		}
		i++
	}
	return pairs
}
