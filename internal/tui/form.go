package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

type EventFormModel struct {
	// ID is fixed when the form opens so a resubmit updates the same event.
	ID     string
	Title  string
	Type   models.EventType
	Date   string
	Start  string
	End    string
	AllDay bool
}

// Event converts the form into a one-off event in loc. An empty ID gets a
// fresh UUID.
func (fm EventFormModel) Event(loc *time.Location) (models.OneOffEvent, error) {
	day, err := utils.ParseDateInLocation(strings.TrimSpace(fm.Date), loc)
	if err != nil {
		return models.OneOffEvent{}, fmt.Errorf("invalid date: %s", fm.Date)
	}
	id := fm.ID
	if id == "" {
		id = uuid.New().String()
	}
	ev := models.OneOffEvent{
		ID:        id,
		Title:     strings.TrimSpace(fm.Title),
		Type:      fm.Type,
		StartTime: day,
		AllDay:    fm.AllDay,
	}
	if ev.Title == "" {
		return models.OneOffEvent{}, fmt.Errorf("title cannot be empty")
	}
	if fm.AllDay {
		return ev, nil
	}

	h, mnt, err := utils.ParseClock(strings.TrimSpace(fm.Start))
	if err != nil {
		return models.OneOffEvent{}, fmt.Errorf("invalid start time: %s", fm.Start)
	}
	ev.StartTime = utils.AtClock(day, h, mnt, loc)

	if end := strings.TrimSpace(fm.End); end != "" {
		h, mnt, err := utils.ParseClock(end)
		if err != nil {
			return models.OneOffEvent{}, fmt.Errorf("invalid end time: %s", fm.End)
		}
		endTime := utils.AtClock(day, h, mnt, loc)
		if endTime.Before(ev.StartTime) {
			return models.OneOffEvent{}, fmt.Errorf("end %s is before start %s", fm.End, fm.Start)
		}
		ev.EndTime = &endTime
	}
	return ev, nil
}

func validateClock(optional bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" && optional {
			return nil
		}
		if !utils.ValidateTimeFormat(s) {
			return fmt.Errorf("expected HH:MM")
		}
		return nil
	}
}

// NewEventForm creates the add-event form bound to fm.
func NewEventForm(fm *EventFormModel) *huh.Form {
	types := make([]huh.Option[models.EventType], 0, len(models.EventTypes))
	for _, t := range models.EventTypes {
		if t == models.EventClass || t == models.EventAssignment {
			continue
		}
		types = append(types, huh.NewOption(string(t), t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.EventType]().
				Title("Type").
				Options(types...).
				Value(&fm.Type),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
					return err
				}),
			huh.NewConfirm().
				Title("All day?").
				Value(&fm.AllDay),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start).
				Validate(validateClock(false)),
			huh.NewInput().
				Title("End (HH:MM, optional)").
				Value(&fm.End).
				Validate(validateClock(true)),
		).WithHideFunc(func() bool { return fm.AllDay }),
	).WithTheme(huh.ThemeDracula())
}
