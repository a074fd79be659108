// Package seed loads a semester from a YAML file: terms, courses,
// assignments and one-off events in one document.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage"
	"github.com/julianstephens/coursecal/internal/utils"
)

// File is the on-disk layout. Dates and times are kept as strings so that
// "2025-09-15 23:59" and bare dates are both accepted.
type File struct {
	Terms       []models.Term `yaml:"terms"`
	Courses     []Course      `yaml:"courses"`
	Assignments []Assignment  `yaml:"assignments"`
	Events      []Event       `yaml:"events"`
}

type Course struct {
	ID         string   `yaml:"id"`
	Term       string   `yaml:"term"`
	Code       string   `yaml:"code"`
	Title      string   `yaml:"title"`
	Days       []string `yaml:"days"`
	Start      string   `yaml:"start"` // HH:MM
	End        string   `yaml:"end"`   // HH:MM
	Instructor string   `yaml:"instructor"`
	Location   string   `yaml:"location"`
}

type Assignment struct {
	ID     string `yaml:"id"`
	Course string `yaml:"course"` // course ID or course code
	Title  string `yaml:"title"`
	Due    string `yaml:"due"`
	Done   bool   `yaml:"done"`
	Notes  string `yaml:"notes"`
}

type Event struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Type        string `yaml:"type"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Color       string `yaml:"color"`
	Course      string `yaml:"course"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

// Records is a parsed File converted into storage models.
type Records struct {
	Terms       []models.Term
	Courses     []models.Course
	Assignments []models.Assignment
	Events      []models.OneOffEvent
}

// Summary counts what Apply wrote.
type Summary struct {
	Terms       int
	Courses     int
	Assignments int
	Events      int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d term(s), %d course(s), %d assignment(s), %d event(s)",
		s.Terms, s.Courses, s.Assignments, s.Events)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// ParseFile opens and parses the seed file at path.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Existing holds records already in the store that a seed file may refer to.
type Existing struct {
	Terms   []models.Term
	Courses []models.Course
}

// Records converts the file into models, resolving date strings in loc.
// Entries without an ID get a UUID. A course "term" names a term by ID or
// by name, and assignment and event "course" fields name a course by ID or
// by code. References resolve against this file first, then existing.
func (f *File) Records(loc *time.Location, existing Existing) (Records, error) {
	var recs Records

	termRef := make(map[string]string)
	for _, t := range existing.Terms {
		termRef[t.ID] = t.ID
		termRef[strings.ToLower(t.Name)] = t.ID
	}

	for i, t := range f.Terms {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if _, err := utils.ParseDateInLocation(t.StartDate, loc); err != nil {
			return Records{}, fmt.Errorf("terms[%d] %q: invalid start_date %q", i, t.Name, t.StartDate)
		}
		if _, err := utils.ParseDateInLocation(t.EndDate, loc); err != nil {
			return Records{}, fmt.Errorf("terms[%d] %q: invalid end_date %q", i, t.Name, t.EndDate)
		}
		termRef[t.ID] = t.ID
		if t.Name != "" {
			termRef[strings.ToLower(t.Name)] = t.ID
		}
		recs.Terms = append(recs.Terms, t)
	}

	byRef := make(map[string]models.Course)
	for _, c := range existing.Courses {
		byRef[c.ID] = c
		byRef[strings.ToUpper(c.Code)] = c
	}

	for i, c := range f.Courses {
		course, err := c.model()
		if err != nil {
			return Records{}, fmt.Errorf("courses[%d] %s: %w", i, c.Code, err)
		}
		if c.Term != "" {
			id, ok := termRef[c.Term]
			if !ok {
				id, ok = termRef[strings.ToLower(c.Term)]
			}
			if !ok {
				return Records{}, fmt.Errorf("courses[%d] %s: unknown term %q", i, c.Code, c.Term)
			}
			course.TermID = id
		}
		byRef[course.ID] = course
		byRef[strings.ToUpper(course.Code)] = course
		recs.Courses = append(recs.Courses, course)
	}

	resolve := func(ref string) (models.Course, bool) {
		if ref == "" {
			return models.Course{}, false
		}
		if c, ok := byRef[ref]; ok {
			return c, true
		}
		c, ok := byRef[strings.ToUpper(ref)]
		return c, ok
	}

	for i, a := range f.Assignments {
		due, dateOnly, err := utils.ParseDateTimeInLocation(a.Due, loc)
		if err != nil {
			return Records{}, fmt.Errorf("assignments[%d] %q: %w", i, a.Title, err)
		}
		if dateOnly {
			due = utils.AtClock(due, 23, 59, loc)
		}
		asg := models.Assignment{
			ID:     a.ID,
			Title:  a.Title,
			DueAt:  due,
			Status: models.AssignmentTodo,
			Notes:  a.Notes,
		}
		if asg.ID == "" {
			asg.ID = uuid.New().String()
		}
		if a.Done {
			asg.Status = models.AssignmentDone
		}
		if a.Course != "" {
			c, ok := resolve(a.Course)
			if !ok {
				return Records{}, fmt.Errorf("assignments[%d] %q: unknown course %q", i, a.Title, a.Course)
			}
			asg.CourseID = c.ID
		}
		recs.Assignments = append(recs.Assignments, asg)
	}

	for i, e := range f.Events {
		ev, err := e.model(loc)
		if err != nil {
			return Records{}, fmt.Errorf("events[%d] %q: %w", i, e.Title, err)
		}
		if e.Course != "" {
			c, ok := resolve(e.Course)
			if !ok {
				return Records{}, fmt.Errorf("events[%d] %q: unknown course %q", i, e.Title, e.Course)
			}
			ev.CourseCode = c.Code
		}
		recs.Events = append(recs.Events, ev)
	}

	return recs, nil
}

func (c Course) model() (models.Course, error) {
	days, err := utils.NormalizeWeekdays(c.Days)
	if err != nil {
		return models.Course{}, err
	}
	for _, v := range []string{c.Start, c.End} {
		if v != "" && !utils.ValidateTimeFormat(v) {
			return models.Course{}, fmt.Errorf("invalid time %q (expected HH:MM)", v)
		}
	}
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	return models.Course{
		ID:           id,
		Code:         c.Code,
		Title:        c.Title,
		MeetingDays:  days,
		MeetingStart: c.Start,
		MeetingEnd:   c.End,
		Instructor:   c.Instructor,
		Location:     c.Location,
	}, nil
}

func (e Event) model(loc *time.Location) (models.OneOffEvent, error) {
	typ := models.EventMeeting
	if e.Type != "" {
		t, err := models.ParseEventType(e.Type)
		if err != nil {
			return models.OneOffEvent{}, err
		}
		typ = t
	}

	start, dateOnly, err := utils.ParseDateTimeInLocation(e.Start, loc)
	if err != nil {
		return models.OneOffEvent{}, err
	}
	ev := models.OneOffEvent{
		ID:          e.ID,
		Title:       e.Title,
		Type:        typ,
		StartTime:   start,
		Color:       e.Color,
		Location:    e.Location,
		Description: e.Description,
		AllDay:      dateOnly && e.End == "",
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if e.End != "" {
		end, _, err := utils.ParseDateTimeInLocation(e.End, loc)
		if err != nil {
			return models.OneOffEvent{}, err
		}
		if end.Before(start) {
			return models.OneOffEvent{}, fmt.Errorf("end %s is before start %s", e.End, e.Start)
		}
		ev.EndTime = &end
	}
	return ev, nil
}

// Apply writes recs through p. Existing records with the same IDs are
// replaced.
func Apply(p storage.Provider, recs Records) (Summary, error) {
	var s Summary
	for _, t := range recs.Terms {
		if err := p.AddTerm(t); err != nil {
			return s, fmt.Errorf("failed to add term %s: %w", t.ID, err)
		}
		s.Terms++
	}
	for _, c := range recs.Courses {
		if err := p.AddCourse(c); err != nil {
			return s, fmt.Errorf("failed to add course %s: %w", c.Code, err)
		}
		s.Courses++
	}
	for _, a := range recs.Assignments {
		if err := p.AddAssignment(a); err != nil {
			return s, fmt.Errorf("failed to add assignment %s: %w", a.ID, err)
		}
		s.Assignments++
	}
	for _, ev := range recs.Events {
		if err := p.AddEvent(ev); err != nil {
			return s, fmt.Errorf("failed to add event %s: %w", ev.ID, err)
		}
		s.Events++
	}
	logger.Info("Applied seed", "summary", s.String())
	return s, nil
}
