package constants

const (
	SettingTimezone      = "timezone"
	SettingWeekStart     = "week_start"
	SettingHorizonDays   = "horizon_days"
	SettingHideCompleted = "hide_completed"
	SettingPalette       = "palette"

	// Default Settings Values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultWeekStart     = "sunday"
	DefaultHorizonDays   = 7
	DefaultHideCompleted = false
)
