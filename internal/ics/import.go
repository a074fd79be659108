package ics

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/models"
)

const defaultMaxOccurrences = 500

// ImportOptions bounds recurrence expansion. Non-recurring events are
// imported regardless of the window.
type ImportOptions struct {
	Location       *time.Location // wall clock for floating and DATE values; nil means time.Local
	RangeStart     time.Time
	RangeEnd       time.Time
	MaxOccurrences int // per recurring VEVENT; 0 means 500
}

// Import reads VEVENTs from r into one-off events. RRULEs are expanded
// between RangeStart and RangeEnd with EXDATEs removed; each occurrence gets
// the ID "<uid>-<YYYYMMDDTHHMM>". VEVENTs without a UID or DTSTART are
// skipped and logged.
func Import(r io.Reader, opts ImportOptions) ([]models.OneOffEvent, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxOccurrences <= 0 {
		opts.MaxOccurrences = defaultMaxOccurrences
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var out []models.OneOffEvent
	for _, ve := range cal.Events() {
		base, rule, exdates, err := parseVEvent(ve, opts.Location)
		if err != nil {
			logger.Warn("Skipping VEVENT", "error", err)
			continue
		}
		if rule == "" {
			out = append(out, base)
			continue
		}
		occ, err := expand(base, rule, exdates, opts)
		if err != nil {
			logger.Warn("Skipping recurring VEVENT", "uid", base.ID, "rrule", rule, "error", err)
			continue
		}
		out = append(out, occ...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (models.OneOffEvent, string, []time.Time, error) {
	var ev models.OneOffEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, "", nil, errors.New("missing UID")
	}
	ev.ID = stripUID(uid.Value)

	dtstart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtstart == nil || dtstart.Value == "" {
		return ev, "", nil, fmt.Errorf("%s: missing DTSTART", ev.ID)
	}
	ev.AllDay = isDateValue(dtstart)

	if ev.AllDay {
		day, err := time.ParseInLocation("20060102", dtstart.Value, loc)
		if err != nil {
			return ev, "", nil, fmt.Errorf("%s: DTSTART %q: %w", ev.ID, dtstart.Value, err)
		}
		ev.StartTime = day
	} else {
		start, err := parseDateTime(dtstart, loc)
		if err != nil {
			return ev, "", nil, fmt.Errorf("%s: DTSTART %q: %w", ev.ID, dtstart.Value, err)
		}
		ev.StartTime = start
		if dtend := ve.GetProperty(ical.ComponentPropertyDtEnd); dtend != nil && dtend.Value != "" {
			if end, err := parseDateTime(dtend, loc); err == nil && !end.Before(start) {
				ev.EndTime = &end
			}
		}
	}

	ev.Title = propValue(ve, ical.ComponentPropertySummary)
	ev.Description = propValue(ve, ical.ComponentPropertyDescription)
	ev.Location = propValue(ve, ical.ComponentPropertyLocation)
	ev.Color = propValue(ve, propColor)
	ev.CourseCode = propValue(ve, propCourse)

	ev.Type = models.EventMeeting
	for _, cat := range strings.Split(propValue(ve, ical.ComponentPropertyCategories), ",") {
		if t, err := models.ParseEventType(strings.ToLower(strings.TrimSpace(cat))); err == nil {
			ev.Type = t
			break
		}
	}

	rule := propValue(ve, ical.ComponentPropertyRrule)
	var exdates []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseBasic(part, tzid(p, loc)); err == nil {
				exdates = append(exdates, t)
			}
		}
	}

	return ev, rule, exdates, nil
}

func expand(base models.OneOffEvent, raw string, exdates []time.Time, opts ImportOptions) ([]models.OneOffEvent, error) {
	if opts.RangeEnd.Before(opts.RangeStart) {
		return nil, errors.New("range end is before range start")
	}

	r, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, err
	}
	r.DTStart(base.StartTime)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range exdates {
		set.ExDate(ex.In(base.StartTime.Location()))
	}

	times := set.Between(opts.RangeStart, opts.RangeEnd, true)
	if len(times) > opts.MaxOccurrences {
		logger.Warn("Truncated recurring event", "uid", base.ID, "cap", opts.MaxOccurrences)
		times = times[:opts.MaxOccurrences]
	}

	var duration time.Duration
	if base.EndTime != nil {
		duration = base.EndTime.Sub(base.StartTime)
	}

	out := make([]models.OneOffEvent, 0, len(times))
	for _, start := range times {
		occ := base
		occ.ID = base.ID + "-" + start.Format("20060102T1504")
		occ.StartTime = start
		if base.EndTime != nil {
			end := start.Add(duration)
			occ.EndTime = &end
		}
		out = append(out, occ)
	}
	return out, nil
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return p.Value
	}
	return ""
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func tzid(p *ical.IANAProperty, fallback *time.Location) *time.Location {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if loc, err := time.LoadLocation(tzs[0]); err == nil {
			return loc
		}
	}
	return fallback
}

func parseDateTime(p *ical.IANAProperty, loc *time.Location) (time.Time, error) {
	return parseBasic(p.Value, tzid(p, loc))
}

// parseBasic handles UTC ("...Z"), floating date-time and DATE forms.
func parseBasic(v string, loc *time.Location) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
