package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/ics"
	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/seed"
	"github.com/julianstephens/coursecal/internal/utils"
)

type ImportCmd struct {
	YAML string `name:"yaml" help:"Semester file with terms, courses, assignments and events." type:"existingfile"`
	ICS  string `name:"ics" help:"iCalendar file whose events are imported as one-off events." type:"existingfile"`
	From string `help:"First date for expanding recurring iCalendar events (YYYY-MM-DD)."`
	To   string `help:"Last date for expanding recurring iCalendar events (YYYY-MM-DD)."`
}

func (c *ImportCmd) Validate() error {
	if (c.YAML == "") == (c.ICS == "") {
		return errors.New("exactly one of --yaml or --ics is required")
	}
	if (c.From != "" || c.To != "") && c.ICS == "" {
		return errors.New("--from and --to only apply to --ics")
	}
	return nil
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	if c.YAML != "" {
		return c.importYAML(ctx, loc)
	}
	return c.importICS(ctx, loc)
}

func (c *ImportCmd) importYAML(ctx *cli.Context, loc *time.Location) error {
	file, err := seed.ParseFile(c.YAML)
	if err != nil {
		return err
	}
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	terms, err := ctx.Store.GetAllTerms()
	if err != nil {
		return fmt.Errorf("failed to get terms: %w", err)
	}
	recs, err := file.Records(loc, seed.Existing{Terms: terms, Courses: courses})
	if err != nil {
		return fmt.Errorf("invalid semester file %s: %w", c.YAML, err)
	}
	summary, err := seed.Apply(ctx.Store, recs)
	if err != nil {
		return err
	}
	ctx.Printf("Imported %s from %s\n", summary, c.YAML)
	return nil
}

func (c *ImportCmd) importICS(ctx *cli.Context, loc *time.Location) error {
	start, end, err := c.window(ctx, loc)
	if err != nil {
		return err
	}

	f, err := os.Open(c.ICS)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.ICS, err)
	}
	defer f.Close()

	events, err := ics.Import(f, ics.ImportOptions{
		Location:   loc,
		RangeStart: start,
		RangeEnd:   end,
	})
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := ctx.Store.AddEvent(ev); err != nil {
			return fmt.Errorf("failed to add event %s: %w", ev.ID, err)
		}
	}

	logger.Info("Imported iCalendar file", "path", c.ICS, "events", len(events))
	ctx.Printf("Imported %d event(s) from %s\n", len(events), c.ICS)
	return nil
}

// window picks the recurrence range: explicit flags, then the active term,
// then one year either side of today.
func (c *ImportCmd) window(ctx *cli.Context, loc *time.Location) (time.Time, time.Time, error) {
	from, to := c.From, c.To
	if from == "" || to == "" {
		terms, err := ctx.Store.GetAllTerms()
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("failed to get terms: %w", err)
		}
		if term, ok := calendar.ActiveTerm(terms, ctx.Clock().In(loc)); ok {
			if from == "" {
				from = term.StartDate
			}
			if to == "" {
				to = term.EndDate
			}
		}
	}

	today := utils.StartOfDay(ctx.Clock().In(loc))
	start, end := today.AddDate(-1, 0, 0), today.AddDate(1, 0, 0)
	var err error
	if from != "" {
		if start, err = utils.ParseDateInLocation(from, loc); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", from, err)
		}
	}
	if to != "" {
		if end, err = utils.ParseDateInLocation(to, loc); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", to, err)
		}
		end = end.AddDate(0, 0, 1)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("import range is empty: %s to %s", start.Format(constants.DateFormat), end.Format(constants.DateFormat))
	}
	return start, end, nil
}
