package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/storage"
	"github.com/julianstephens/coursecal/internal/utils"
	"github.com/julianstephens/coursecal/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	check := func(name string, err error) {
		if err != nil {
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.Printf("✓ %s: OK\n", name)
	}
	dependent := func(name string, reachable bool, fn func(*cli.Context) error) {
		if !reachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", name)
			return
		}
		check(name, fn(ctx))
	}

	err := checkDBReachable(ctx)
	check("Database reachable", err)
	dbReachable := err == nil

	dependent("Schema version", dbReachable, checkSchemaVersion)
	dependent("Migrations complete", dbReachable, checkMigrationsComplete)
	dependent("Timezone setting", dbReachable, checkTimezone)

	if dbReachable {
		if err := checkValidation(ctx); err != nil {
			// Data problems are reported but do not fail the run
			ctx.Printf("⚠ Data validation: WARNING\n")
			ctx.Printf("   %v\n", err)
		} else {
			ctx.Printf("✓ Data validation: OK\n")
		}
	} else {
		ctx.Printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	dependent("Calendar feed", dbReachable, checkFeed)
	check("Clock/timezone", checkClock(ctx.Clock()))

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'coursecal migrate')", current, latest)
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown timezone %q, fix it with 'coursecal settings --timezone'", settings.Timezone)
	}
	return nil
}

// checkValidation runs the record validators over everything in storage.
func checkValidation(ctx *cli.Context) error {
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found, run 'coursecal validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkFeed(ctx *cli.Context) error {
	_, err := ctx.Feed()
	return err
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// validateStore merges course, term and assignment validation.
func validateStore(ctx *cli.Context) (validation.ValidationResult, error) {
	result := validation.ValidationResult{Conflicts: []validation.Conflict{}}

	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return result, fmt.Errorf("failed to get courses: %w", err)
	}
	terms, err := ctx.Store.GetAllTerms()
	if err != nil {
		return result, fmt.Errorf("failed to get terms: %w", err)
	}
	assignments, err := ctx.Store.GetAllAssignments()
	if err != nil {
		return result, fmt.Errorf("failed to get assignments: %w", err)
	}

	v := validation.New()
	for _, term := range terms {
		result.Merge(v.ValidateTerm(term))
	}
	result.Merge(v.ValidateCourses(courses))
	result.Merge(v.ValidateAssignments(assignments, courses))
	return result, nil
}
