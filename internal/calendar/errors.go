package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTime is returned when a meeting time is not a valid HH:MM value.
	ErrInvalidTime = errors.New("invalid meeting time")
	// ErrInvalidWeekday is returned for meeting day tokens outside Sun..Sat.
	ErrInvalidWeekday = errors.New("invalid meeting day")
	// ErrInvalidDate is returned when a term bound is not a YYYY-MM-DD date.
	ErrInvalidDate = errors.New("invalid term date")
	// ErrInvertedMeeting is returned when a course ends before it starts.
	// Meetings that cross midnight are not supported.
	ErrInvertedMeeting = errors.New("meeting end is before meeting start")
)

// ValidationError identifies the course and field that made expansion fail.
type ValidationError struct {
	CourseID string
	Field    string
	Value    string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("course %q: %s %q: %v", e.CourseID, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(courseID, field, value string, sentinel, cause error) *ValidationError {
	err := sentinel
	if cause != nil {
		err = fmt.Errorf("%w: %v", sentinel, cause)
	}
	return &ValidationError{CourseID: courseID, Field: field, Value: value, Err: err}
}
