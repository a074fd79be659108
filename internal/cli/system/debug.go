package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/coursecal/internal/cli"
)

type DebugCmd struct {
	DBPath         DebugDBPathCmd         `cmd:"" name:"db-path" help:"Show database path."`
	DumpCourse     DebugDumpCourseCmd     `cmd:"" help:"Dump course data as JSON."`
	DumpAssignment DebugDumpAssignmentCmd `cmd:"" help:"Dump assignment data as JSON."`
	DumpSettings   DebugDumpSettingsCmd   `cmd:"" help:"Dump settings data as JSON."`
	DumpFeed       DebugDumpFeedCmd       `cmd:"" help:"Dump the merged calendar feed as JSON."`
}

func printJSON(ctx *cli.Context, what string, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, "output", map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpCourseCmd struct {
	ID string `arg:"" help:"ID of the course to dump."`
}

func (cmd *DebugDumpCourseCmd) Run(ctx *cli.Context) error {
	course, err := ctx.Store.GetCourse(cmd.ID)
	if err != nil {
		return cli.NotFound(err, "course", cmd.ID)
	}
	return printJSON(ctx, "course", course)
}

type DebugDumpAssignmentCmd struct {
	ID string `arg:"" help:"ID of the assignment to dump."`
}

func (cmd *DebugDumpAssignmentCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.GetAssignment(cmd.ID)
	if err != nil {
		return cli.NotFound(err, "assignment", cmd.ID)
	}
	return printJSON(ctx, "assignment", a)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, "settings", settings)
}

type DebugDumpFeedCmd struct {
	From string `help:"First date to include (YYYY-MM-DD)."`
	To   string `help:"Last date to include (YYYY-MM-DD)."`
}

func (cmd *DebugDumpFeedCmd) Validate() error {
	if (cmd.From == "") != (cmd.To == "") {
		return fmt.Errorf("--from and --to must be given together")
	}
	return nil
}

func (cmd *DebugDumpFeedCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Feed()
	if err != nil {
		return err
	}

	events := feed.Events
	if cmd.From != "" {
		if events, err = feed.Range(cmd.From, cmd.To); err != nil {
			return err
		}
	}
	return printJSON(ctx, "feed", events)
}
