package terms

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/validation"
)

type TermAddCmd struct {
	Name  string `arg:"" help:"Term name, e.g. 'Fall 2025'."`
	Start string `short:"s" help:"First day of the term (YYYY-MM-DD)." required:""`
	End   string `short:"e" help:"Last day of the term (YYYY-MM-DD)." required:""`
	ID    string `help:"Explicit term ID (defaults to a UUID)."`
}

func (c *TermAddCmd) Validate() error {
	start, err := time.Parse(constants.DateFormat, c.Start)
	if err != nil {
		return fmt.Errorf("invalid --start date (expected YYYY-MM-DD): %s", c.Start)
	}
	end, err := time.Parse(constants.DateFormat, c.End)
	if err != nil {
		return fmt.Errorf("invalid --end date (expected YYYY-MM-DD): %s", c.End)
	}
	if end.Before(start) {
		return fmt.Errorf("--end %s is before --start %s", c.End, c.Start)
	}
	return nil
}

func (c *TermAddCmd) Run(ctx *cli.Context) error {
	term := models.Term{
		ID:        c.ID,
		Name:      c.Name,
		StartDate: c.Start,
		EndDate:   c.End,
	}
	if term.ID == "" {
		term.ID = uuid.New().String()
	}

	if res := validation.New().ValidateTerm(term); res.HasConflicts() {
		return fmt.Errorf("invalid term: %s", res.Conflicts[0].Description)
	}
	if err := ctx.Store.AddTerm(term); err != nil {
		return err
	}

	ctx.Printf("Added term: %s (ID: %s)\n", term.Name, term.ID)
	return nil
}

type TermListCmd struct{}

func (c *TermListCmd) Run(ctx *cli.Context) error {
	terms, err := ctx.Store.GetAllTerms()
	if err != nil {
		return fmt.Errorf("failed to get terms: %w", err)
	}
	if len(terms) == 0 {
		ctx.Println("No terms found")
		return nil
	}

	active, _ := calendar.ActiveTerm(terms, ctx.Clock())
	ctx.Println("Terms:")
	for _, t := range terms {
		marker := " "
		if t.ID == active.ID {
			marker = "*"
		}
		ctx.Printf(" %s %s  %s to %s  (ID: %s)\n", marker, t.Name, t.StartDate, t.EndDate, t.ID)
	}
	return nil
}

type TermDeleteCmd struct {
	ID string `arg:"" help:"ID of the term to delete."`
}

func (c *TermDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteTerm(c.ID); err != nil {
		return cli.NotFound(err, "term", c.ID)
	}
	ctx.Printf("Deleted term: %s\n", c.ID)
	return nil
}
