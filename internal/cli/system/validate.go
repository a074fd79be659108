package system

import (
	"fmt"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/logger"
	"github.com/julianstephens/coursecal/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove duplicate courses, keeping the smallest ID of each code."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}

	feed, err := ctx.Feed()
	if err != nil {
		return err
	}
	result.Merge(validation.ConflictsFromPairs(feed.Conflicts()))

	ctx.Print(result.FormatReport())
	if !result.HasConflicts() {
		ctx.Println()
		return nil
	}

	if !c.Fix {
		ctx.Printf("\n%d problem(s) found.\n", len(result.Conflicts))
		return nil
	}

	actions := validation.AutoFixDuplicateCourses(result.Conflicts, ctx.Store.DeleteCourse)
	if len(actions) == 0 {
		ctx.Println("\nNothing to fix automatically.")
		return nil
	}
	ctx.Println("\nApplied fixes:")
	for _, a := range actions {
		logger.Info("Validation fix", "action", a.Action)
		ctx.Printf("- %s\n", a.Action)
	}

	remaining, err := validateStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to re-validate: %w", err)
	}
	if remaining.HasConflicts() {
		ctx.Printf("\n%d problem(s) remain and need manual attention.\n", len(remaining.Conflicts))
	}
	return nil
}
