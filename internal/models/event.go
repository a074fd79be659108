package models

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventClass       EventType = "class"
	EventAssignment  EventType = "assignment"
	EventExam        EventType = "exam"
	EventOfficeHours EventType = "office-hours"
	EventMeeting     EventType = "meeting"
)

// EventTypes lists every recognized event type in display order.
var EventTypes = []EventType{EventClass, EventAssignment, EventExam, EventOfficeHours, EventMeeting}

// ParseEventType maps a user supplied string onto a known EventType.
func ParseEventType(s string) (EventType, error) {
	for _, t := range EventTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid event type: %s", s)
}

// IsDeadline reports whether events of this type count as deadlines.
func (t EventType) IsDeadline() bool {
	return t == EventAssignment || t == EventExam
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// OneOffEvent is a stored, already-shaped event that is not derived from a
// course or an assignment.
type OneOffEvent struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Type        EventType  `json:"type" yaml:"type"`
	StartTime   time.Time  `json:"start_time" yaml:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Color       string     `json:"color,omitempty" yaml:"color,omitempty"`
	CourseCode  string     `json:"course_code,omitempty" yaml:"course_code,omitempty"`
	Location    string     `json:"location,omitempty" yaml:"location,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	AllDay      bool       `json:"all_day" yaml:"all_day"`
}

// CalendarEvent is the unified shape produced by the calendar engine.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Type        EventType  `json:"type"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"` // nil for point-in-time or all-day events
	Color       string     `json:"color"`
	CourseCode  string     `json:"course_code,omitempty"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	IsAllDay    bool       `json:"is_all_day"`
}

// HasEnd reports whether the event carries an end time.
func (e CalendarEvent) HasEnd() bool {
	return e.EndTime != nil
}
