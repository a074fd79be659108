package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/cli/assignments"
	"github.com/julianstephens/coursecal/internal/cli/courses"
	"github.com/julianstephens/coursecal/internal/cli/events"
	"github.com/julianstephens/coursecal/internal/cli/settings"
	"github.com/julianstephens/coursecal/internal/cli/system"
	"github.com/julianstephens/coursecal/internal/cli/terms"
	"github.com/julianstephens/coursecal/internal/cli/views"
	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/errors"
	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path, PostgreSQL connection string, or 'keyring'." type:"string" default:"~/.config/coursecal/coursecal.db" env:"COURSECAL_CONFIG"`
	DebugLog bool   `name:"debug" help:"Enable debug logging." env:"COURSECAL_DEBUG"`

	Init     system.InitCmd       `cmd:"" help:"Initialize storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Apply pending database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks."`
	Validate system.ValidateCmd   `cmd:"" help:"Check stored data for problems and conflicts."`
	Import   system.ImportCmd     `cmd:"" help:"Import a YAML seed file or an ICS calendar."`
	Debug    system.DebugCmd      `cmd:"" help:"Inspect stored data."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"View or change settings."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Today     views.TodayCmd     `cmd:"" help:"Show today's schedule."`
	Week      views.WeekCmd      `cmd:"" help:"Show the current week."`
	Range     views.RangeCmd     `cmd:"" help:"Show events between two dates."`
	Upcoming  views.UpcomingCmd  `cmd:"" help:"Show upcoming deadlines."`
	Conflicts views.ConflictsCmd `cmd:"" help:"List overlapping events."`
	Export    views.ExportCmd    `cmd:"" help:"Export the calendar as ICS."`

	Term struct {
		Add    terms.TermAddCmd    `cmd:"" help:"Add a term."`
		List   terms.TermListCmd   `cmd:"" help:"List terms."`
		Delete terms.TermDeleteCmd `cmd:"" help:"Delete a term."`
	} `cmd:"" help:"Manage terms."`

	Course struct {
		Add    courses.CourseAddCmd    `cmd:"" help:"Add a course."`
		List   courses.CourseListCmd   `cmd:"" help:"List courses."`
		Delete courses.CourseDeleteCmd `cmd:"" help:"Delete a course and its assignments."`
	} `cmd:"" help:"Manage courses."`

	Assignment struct {
		Add    assignments.AssignmentAddCmd    `cmd:"" help:"Add an assignment."`
		List   assignments.AssignmentListCmd   `cmd:"" help:"List assignments."`
		Done   assignments.AssignmentDoneCmd   `cmd:"" help:"Mark an assignment completed."`
		Delete assignments.AssignmentDeleteCmd `cmd:"" help:"Delete an assignment."`
	} `cmd:"" help:"Manage assignments."`

	Event struct {
		Add    events.EventAddCmd    `cmd:"" help:"Add a one-off event."`
		List   events.EventListCmd   `cmd:"" help:"List one-off events."`
		Delete events.EventDeleteCmd `cmd:"" help:"Delete a one-off event."`
	} `cmd:"" help:"Manage one-off events."`
}

func main() {
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Class schedule calendar: terms, courses, assignments and conflicts."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.DebugLog,
		ConfigDir: cli.ConfigDir(CLI.Config),
		Backend:   cli.BackendName(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := strings.Fields(ctx.Command())
	top := ""
	if len(command) > 0 {
		top = command[0]
	}
	logger.SetCommand(top)

	appCtx := &cli.Context{}
	if top != "keyring" {
		store, err := cli.OpenStore(CLI.Config)
		if err != nil {
			if stderrors.Is(err, cli.ErrEmbeddedCredentials) {
				fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
				os.Exit(1)
			}
			errors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store

		// init creates the store, doctor reports on a store it cannot load
		if top != "init" && top != "doctor" {
			if err := store.Load(); err != nil {
				store.Close()
				errors.Fatal(err)
			}
			if settings, err := store.GetSettings(); err == nil {
				if loc, err := utils.LoadLocation(settings.Timezone); err == nil {
					logger.SetLocation(loc)
				}
			}
		}
	}

	logger.Debug("Running command", "command", ctx.Command())
	if err := ctx.Run(appCtx); err != nil {
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		errors.Fatal(err)
	}
}
