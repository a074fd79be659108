// Package ics converts between calendar events and iCalendar (RFC 5545) files.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
)

const (
	propColor  ical.ComponentProperty = "COLOR"
	propCourse ical.ComponentProperty = "X-COURSECAL-COURSE"
)

// UID returns the stable iCalendar UID for an event ID.
func UID(eventID string) string {
	return eventID + "@" + constants.ICSUIDDomain
}

// Export writes events as a PUBLISH calendar. All-day events become DATE
// valued single-day entries; timed events keep their instants in UTC.
// stamp is used for every DTSTAMP so the same input yields the same bytes.
func Export(w io.Writer, events []models.CalendarEvent, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(constants.ICSProductID)

	for _, ev := range events {
		ve := cal.AddEvent(UID(ev.ID))
		ve.SetDtStampTime(stamp.UTC())
		ve.SetSummary(ev.Title)

		if ev.IsAllDay {
			day := time.Date(ev.StartTime.Year(), ev.StartTime.Month(), ev.StartTime.Day(), 0, 0, 0, 0, time.UTC)
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(ev.StartTime.UTC())
			if ev.EndTime != nil {
				ve.SetEndAt(ev.EndTime.UTC())
			}
		}

		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Type != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, string(ev.Type))
		}
		if ev.Color != "" {
			ve.SetProperty(propColor, ev.Color)
		}
		if ev.CourseCode != "" {
			ve.SetProperty(propCourse, ev.CourseCode)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// stripUID removes the domain suffix Export adds, so a round trip keeps IDs.
func stripUID(uid string) string {
	return strings.TrimSuffix(uid, "@"+constants.ICSUIDDomain)
}
