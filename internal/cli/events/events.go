package events

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/coursecal/internal/agenda"
	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

type EventAddCmd struct {
	Title       string `arg:"" help:"Event title."`
	Type        string `short:"t" help:"Event type (class|assignment|exam|office-hours|meeting)." default:"meeting"`
	Start       string `short:"s" help:"Start (YYYY-MM-DD HH:MM, or YYYY-MM-DD with --all-day)." required:""`
	End         string `short:"e" help:"End (YYYY-MM-DD HH:MM)."`
	AllDay      bool   `help:"Mark as an all-day event."`
	Color       string `help:"Hex color, e.g. #8b5cf6."`
	CourseCode  string `short:"c" help:"Course code to file the event under." name:"course-code"`
	Location    string `short:"l" help:"Location."`
	Description string `help:"Description."`
}

func (c *EventAddCmd) Validate() error {
	if _, err := models.ParseEventType(c.Type); err != nil {
		return err
	}
	if c.AllDay && c.End != "" {
		return errors.New("--end cannot be combined with --all-day")
	}
	if c.Color != "" {
		if _, err := calendar.ParsePalette([]string{c.Color}); err != nil {
			return fmt.Errorf("invalid --color: %w", err)
		}
	}
	return nil
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	typ, err := models.ParseEventType(c.Type)
	if err != nil {
		return err
	}

	start, dateOnly, err := utils.ParseDateTimeInLocation(c.Start, loc)
	if err != nil {
		return err
	}
	if dateOnly && !c.AllDay {
		return errors.New("--start needs a time (YYYY-MM-DD HH:MM) unless --all-day is set")
	}

	ev := models.OneOffEvent{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Type:        typ,
		StartTime:   start,
		CourseCode:  c.CourseCode,
		Location:    c.Location,
		Description: c.Description,
		AllDay:      c.AllDay,
	}
	if c.AllDay {
		ev.StartTime = utils.StartOfDay(start)
	}
	if c.Color != "" {
		colors, _ := calendar.ParsePalette([]string{c.Color}) // validated
		ev.Color = colors[0]
	}
	if c.End != "" {
		end, _, err := utils.ParseDateTimeInLocation(c.End, loc)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("--end %s is before --start %s", c.End, c.Start)
		}
		ev.EndTime = &end
	}

	if err := ctx.Store.AddEvent(ev); err != nil {
		return err
	}
	ctx.Printf("Added event: %s (ID: %s)\n", ev.Title, ev.ID)
	return nil
}

type EventListCmd struct {
	ShowIDs bool `help:"Show event IDs." name:"show-ids"`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	stored, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	if len(stored) == 0 {
		ctx.Println("No events found")
		return nil
	}

	ctx.Println("Events:")
	for _, raw := range stored {
		ev := calendar.FromOneOff(raw)
		ev.StartTime = ev.StartTime.In(loc)
		if ev.EndTime != nil {
			end := ev.EndTime.In(loc)
			ev.EndTime = &end
		}
		line := fmt.Sprintf("  %s %s", ev.StartTime.Format("2006-01-02"), agenda.Line(ev))
		if c.ShowIDs {
			line += fmt.Sprintf(" (ID: %s)", ev.ID)
		}
		ctx.Println(line)
	}
	return nil
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"ID of the event to delete."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return cli.NotFound(err, "event", c.ID)
	}
	ctx.Printf("Deleted event: %s\n", c.ID)
	return nil
}
