package models

import "time"

// Term is an academic period bounded by inclusive calendar dates.
type Term struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"start_date" yaml:"start_date"` // YYYY-MM-DD format
	EndDate   string `json:"end_date" yaml:"end_date"`     // YYYY-MM-DD format
}

type Course struct {
	ID           string   `json:"id" yaml:"id"`
	TermID       string   `json:"term_id,omitempty" yaml:"term_id,omitempty"`
	Code         string   `json:"code" yaml:"code"`
	Title        string   `json:"title" yaml:"title"`
	MeetingDays  []string `json:"meeting_days,omitempty" yaml:"meeting_days,omitempty"`   // Sun..Sat tokens
	MeetingStart string   `json:"meeting_start,omitempty" yaml:"meeting_start,omitempty"` // HH:MM format
	MeetingEnd   string   `json:"meeting_end,omitempty" yaml:"meeting_end,omitempty"`     // HH:MM format
	Instructor   string   `json:"instructor,omitempty" yaml:"instructor,omitempty"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
}

// HasMeetingPattern reports whether the course contributes recurring class events.
func (c Course) HasMeetingPattern() bool {
	return len(c.MeetingDays) > 0 && c.MeetingStart != "" && c.MeetingEnd != ""
}

type AssignmentStatus string

const (
	AssignmentTodo AssignmentStatus = "todo"
	AssignmentDone AssignmentStatus = "done"
)

type Assignment struct {
	ID       string           `json:"id" yaml:"id"`
	CourseID string           `json:"course_id,omitempty" yaml:"course_id,omitempty"`
	Title    string           `json:"title" yaml:"title"`
	DueAt    time.Time        `json:"due_at" yaml:"due_at"`
	Status   AssignmentStatus `json:"status" yaml:"status"`
	Notes    string           `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (a Assignment) Done() bool {
	return a.Status == AssignmentDone
}
