package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/coursecal/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingWeekStart:
			settings.WeekStart = value
		case constants.SettingHorizonDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.HorizonDays); err != nil {
				return Settings{}, fmt.Errorf("parsing horizon_days: %w", err)
			}
		case constants.SettingHideCompleted:
			settings.HideCompleted = value == "true"
		case constants.SettingPalette:
			settings.Palette = splitPalette(value)
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:      settings.Timezone,
		constants.SettingWeekStart:     settings.WeekStart,
		constants.SettingHorizonDays:   fmt.Sprintf("%d", settings.HorizonDays),
		constants.SettingHideCompleted: fmt.Sprintf("%v", settings.HideCompleted),
		constants.SettingPalette:       strings.Join(settings.Palette, ","),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.WeekStart == "" {
		settings.WeekStart = constants.DefaultWeekStart
	}
	if settings.HorizonDays <= 0 {
		settings.HorizonDays = constants.DefaultHorizonDays
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	s := Settings{HideCompleted: constants.DefaultHideCompleted}
	ApplyDefaultSettings(&s)
	return s
}

func splitPalette(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
