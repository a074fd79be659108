package views

import (
	"fmt"

	"github.com/julianstephens/coursecal/internal/agenda"
	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Feed()
	if err != nil {
		return err
	}
	ctx.Print(agenda.Render(feed.Today(), "Nothing scheduled today."))
	return nil
}

type WeekCmd struct {
	WeekStart string `help:"First day of the week (overrides the week_start setting)." name:"week-start"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Feed()
	if err != nil {
		return err
	}
	if c.WeekStart != "" {
		wd, err := utils.ParseWeekday(c.WeekStart)
		if err != nil {
			return fmt.Errorf("invalid --week-start: %w", err)
		}
		feed.WeekStart = wd
	}
	ctx.Print(agenda.Render(feed.Week(), "Nothing scheduled this week."))
	return nil
}

type RangeCmd struct {
	From string `arg:"" help:"First date (YYYY-MM-DD)."`
	To   string `arg:"" help:"Last date, inclusive (YYYY-MM-DD)."`
}

func (c *RangeCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Feed()
	if err != nil {
		return err
	}
	events, err := feed.Range(c.From, c.To)
	if err != nil {
		return err
	}
	ctx.Print(agenda.Render(events, fmt.Sprintf("Nothing scheduled from %s to %s.", c.From, c.To)))
	return nil
}

type UpcomingCmd struct {
	Days int `short:"d" help:"How many days ahead to look (defaults to the horizon_days setting)."`
}

func (c *UpcomingCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Feed()
	if err != nil {
		return err
	}
	if c.Days > 0 {
		feed.Settings.HorizonDays = c.Days
	}
	ctx.Print(feed.RenderDeadlines(feed.Upcoming(c.Days)))
	return nil
}

type ConflictsCmd struct{}

func (c *ConflictsCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Feed()
	if err != nil {
		return err
	}
	ctx.Println(agenda.RenderConflicts(feed.Conflicts()))
	return nil
}

// window resolves optional --from/--to flags, defaulting to the active term
// and otherwise to everything in the feed.
func window(feed *agenda.Feed, from, to string) ([]models.CalendarEvent, error) {
	if from == "" && feed.HasTerm {
		from = feed.Term.StartDate
	}
	if to == "" && feed.HasTerm {
		to = feed.Term.EndDate
	}
	if from == "" || to == "" {
		if from != "" || to != "" {
			return nil, fmt.Errorf("--from and --to must be given together when no term exists")
		}
		return feed.Events, nil
	}
	return feed.Range(from, to)
}
