package models

// Settings represents application-wide settings
type Settings struct {
	Timezone      string   `json:"timezone"`       // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	WeekStart     string   `json:"week_start"`     // first day of the week for week views, e.g. "sunday"
	HorizonDays   int      `json:"horizon_days"`   // how far ahead "upcoming" looks
	HideCompleted bool     `json:"hide_completed"` // drop done assignments from the merged feed
	Palette       []string `json:"palette"`        // course colors in assignment order; empty means the default palette
}
