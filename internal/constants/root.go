package constants

const (
	AppName            = "coursecal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/coursecal/coursecal.db"
	Version            = "v0.1.0"

	// EnvDBConnection overrides the PostgreSQL connection string when --config is "keyring"
	EnvDBConnection = "COURSECAL_DB_CONNECTION"
	// EnvDebug enables debug logging, same as --debug
	EnvDebug = "COURSECAL_DEBUG"

	// KeyringConfig selects the PostgreSQL backend with the connection string
	// read from the OS keyring
	KeyringConfig = "keyring"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is accepted for assignment due dates and one-off events
	DateTimeFormat = "2006-01-02 15:04"

	// AssignmentIDPrefix is prepended to assignment IDs when they are merged
	// into a combined feed with other event types.
	AssignmentIDPrefix = "assignment-"

	// ICSProductID identifies exported calendars
	ICSProductID = "-//julianstephens//coursecal//EN"
	ICSUIDDomain = "coursecal.local"

	// Priority colors for assignments without a course
	ColorPriorityHigh   = "#ef4444"
	ColorPriorityMedium = "#f97316"
	ColorPriorityLow    = "#22c55e"

	// Days-until-due thresholds for priority bands (inclusive)
	PriorityHighMaxDays   = 1
	PriorityMediumMaxDays = 7
)

// DefaultPalette is the ordered set of course colors handed out on first sight.
var DefaultPalette = []string{
	"#3b82f6", // blue
	"#ef4444", // red
	"#10b981", // emerald
	"#f59e0b", // amber
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#84cc16", // lime
	"#f97316", // orange
	"#6366f1", // indigo
}

// SessionState represents the current state of the TUI application
type SessionState int

const (
	// Tab states, in tab order
	StateToday SessionState = iota
	StateWeek
	StateUpcoming
	StateConflicts

	StateAddEvent
)
