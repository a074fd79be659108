package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix.
// Course validation failures get a second line pointing at the fix.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a short remediation line for known error kinds, or "".
func Hint(err error) string {
	var verr *calendar.ValidationError
	if !stderrors.As(err, &verr) {
		return ""
	}
	switch {
	case stderrors.Is(err, calendar.ErrInvalidDate):
		return "Hint: term dates use YYYY-MM-DD; check 'coursecal term list'"
	case stderrors.Is(err, calendar.ErrInvalidWeekday):
		return fmt.Sprintf("Hint: meeting days are Sun..Sat; fix with 'coursecal course delete %s' and re-add", verr.CourseID)
	case stderrors.Is(err, calendar.ErrInvertedMeeting):
		return fmt.Sprintf("Hint: course %s ends before it starts; meetings cannot run past midnight", verr.CourseID)
	default:
		return fmt.Sprintf("Hint: meeting times are 24h HH:MM; run 'coursecal validate' to list every problem in course %s", verr.CourseID)
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
