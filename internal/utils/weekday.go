package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a single weekday token: a short or full English name
// (case-insensitive) or a number where 0=Sunday and 6=Saturday.
func ParseWeekday(s string) (time.Weekday, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// ParseWeekdays parses a list of weekday tokens, dropping duplicates while
// keeping first-seen order.
func ParseWeekdays(tokens []string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, tok := range tokens {
		wd, err := ParseWeekday(tok)
		if err != nil {
			return nil, err
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		weekdays = append(weekdays, wd)
	}
	return weekdays, nil
}

// SplitWeekdays splits a comma-separated weekday list such as "Mon,Wed".
func SplitWeekdays(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ShortWeekday returns the three-letter token used in stored meeting days.
func ShortWeekday(wd time.Weekday) string {
	return wd.String()[:3]
}

// NormalizeWeekdays rewrites tokens into canonical short form ("Mon", "Wed").
func NormalizeWeekdays(tokens []string) ([]string, error) {
	wds, err := ParseWeekdays(tokens)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(wds))
	for _, wd := range wds {
		out = append(out, ShortWeekday(wd))
	}
	return out, nil
}
