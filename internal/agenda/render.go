package agenda

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(13)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	conflictStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// TextColor picks black or white text for a badge on the given background.
func TextColor(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return "#ffffff"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// Badge renders a short label on the event's color.
func Badge(label, color string) string {
	if color == "" {
		return label
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(TextColor(color))).
		Padding(0, 1).
		Render(label)
}

// TimeLabel formats the time column: "all day", "09:00" or "09:00-10:15".
func TimeLabel(ev models.CalendarEvent) string {
	if ev.IsAllDay {
		return "all day"
	}
	label := ev.StartTime.Format(constants.TimeFormat)
	if ev.EndTime != nil {
		label += "-" + ev.EndTime.Format(constants.TimeFormat)
	}
	return label
}

// Line renders a single event row.
func Line(ev models.CalendarEvent) string {
	label := ev.CourseCode
	if label == "" {
		label = string(ev.Type)
	}

	var meta []string
	if ev.CourseCode != "" {
		meta = append(meta, string(ev.Type))
	}
	if ev.Location != "" {
		meta = append(meta, ev.Location)
	}
	if ev.Description != "" {
		meta = append(meta, ev.Description)
	}

	line := fmt.Sprintf("%s %s %s", timeStyle.Render(TimeLabel(ev)), Badge(label, ev.Color), titleStyle.Render(ev.Title))
	if len(meta) > 0 {
		line += " " + metaStyle.Render("("+strings.Join(meta, ", ")+")")
	}
	return line
}

// Render groups events by date under a heading for each day, or returns
// empty when there are no events.
func Render(events []models.CalendarEvent, empty string) string {
	if len(events) == 0 {
		return empty
	}
	groups := calendar.GroupByDate(events)

	var b strings.Builder
	for i, date := range calendar.SortedDates(groups) {
		if i > 0 {
			b.WriteString("\n")
		}
		day := groups[date]
		b.WriteString(dateStyle.Render(day[0].StartTime.Format("Mon Jan 2, 2006")))
		b.WriteString("\n")
		for _, ev := range day {
			b.WriteString("  " + Line(ev) + "\n")
		}
	}
	return b.String()
}

// RenderDeadlines lists deadlines with the calendar days remaining from f.Now.
func (f *Feed) RenderDeadlines(events []models.CalendarEvent) string {
	if len(events) == 0 {
		return fmt.Sprintf("No deadlines in the next %d day(s).", f.Settings.HorizonDays)
	}
	var b strings.Builder
	for _, ev := range events {
		days := int(math.Round(utils.StartOfDay(ev.StartTime).Sub(utils.StartOfDay(f.Now)).Hours() / 24))
		when := fmt.Sprintf("in %dd", days)
		switch {
		case days <= 0:
			when = "today"
		case days == 1:
			when = "tomorrow"
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			timeStyle.Render(ev.StartTime.Format("Mon Jan 2")),
			Badge(when, calendar.PriorityColor(calendar.PriorityFor(ev.StartTime, f.Now))),
			titleStyle.Render(ev.Title))
	}
	return b.String()
}

// RenderConflicts lists overlapping pairs.
func RenderConflicts(pairs []calendar.ConflictPair) string {
	if len(pairs) == 0 {
		return "No conflicts detected."
	}
	var b strings.Builder
	b.WriteString(conflictStyle.Render(fmt.Sprintf("%d conflict(s)", len(pairs))))
	b.WriteString("\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s\n  %s\n  %s\n",
			dateStyle.Render(p.First.StartTime.Format("Mon Jan 2, 2006")),
			Line(p.First),
			Line(p.Second))
	}
	return b.String()
}
