package views

import (
	"fmt"
	"os"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/ics"
	"github.com/julianstephens/coursecal/internal/logger"
)

type ExportCmd struct {
	File string `arg:"" help:"Output .ics file, or '-' for stdout."`
	From string `help:"First date to export (YYYY-MM-DD); defaults to the term start."`
	To   string `help:"Last date to export (YYYY-MM-DD); defaults to the term end."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Feed()
	if err != nil {
		return err
	}
	events, err := window(feed, c.From, c.To)
	if err != nil {
		return err
	}

	if c.File == "-" {
		return ics.Export(ctx.Stdout(), events, ctx.Clock())
	}

	f, err := os.Create(c.File)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.File, err)
	}
	if err := ics.Export(f, events, ctx.Clock()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.File, err)
	}

	logger.Info("Exported calendar", "file", c.File, "events", len(events))
	ctx.Printf("Exported %d event(s) to %s\n", len(events), c.File)
	return nil
}
