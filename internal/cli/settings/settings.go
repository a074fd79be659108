package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone for calendar dates, or 'Local'."`
	WeekStart     *string `help:"First day of the week for the week view."`
	HorizonDays   *int    `help:"Days ahead that 'upcoming' looks for deadlines."`
	HideCompleted *bool   `help:"Hide completed assignments from the calendar."`
	Palette       *string `help:"Comma-separated hex colors for courses, or 'default'."`
}

func (c *SettingsCmd) Validate() error {
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", *c.Timezone)
	}
	if c.WeekStart != nil {
		if _, err := utils.ParseWeekday(*c.WeekStart); err != nil {
			return fmt.Errorf("invalid --week-start: %w", err)
		}
	}
	if c.HorizonDays != nil && *c.HorizonDays < 1 {
		return fmt.Errorf("--horizon-days must be at least 1, got %d", *c.HorizonDays)
	}
	if c.Palette != nil {
		if _, err := parsePalette(*c.Palette); err != nil {
			return err
		}
	}
	return nil
}

func parsePalette(s string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(s), "default") {
		return nil, nil
	}
	return calendar.ParsePalette(strings.Split(s, ","))
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		palette := "default"
		if len(settings.Palette) > 0 {
			palette = strings.Join(settings.Palette, ", ")
		}
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:        %s\n", settings.Timezone)
		ctx.Printf("  Week Start:      %s\n", settings.WeekStart)
		ctx.Printf("  Horizon Days:    %d\n", settings.HorizonDays)
		ctx.Printf("  Hide Completed:  %v\n", settings.HideCompleted)
		ctx.Printf("  Palette:         %s\n", palette)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.WeekStart != nil {
		day, _ := utils.ParseWeekday(*c.WeekStart)
		settings.WeekStart = strings.ToLower(day.String())
		updated = true
	}
	if c.HorizonDays != nil {
		settings.HorizonDays = *c.HorizonDays
		updated = true
	}
	if c.HideCompleted != nil {
		settings.HideCompleted = *c.HideCompleted
		updated = true
	}
	if c.Palette != nil {
		palette, err := parsePalette(*c.Palette)
		if err != nil {
			return err
		}
		settings.Palette = palette
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
