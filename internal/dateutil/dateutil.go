// Package dateutil provides date parsing utilities for the --date flags.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned for dates the parser does not understand.
var ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD, today, tomorrow, yesterday or a weekday name")

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDay parses a day given as:
//   - empty string or "today": the day of relativeTo
//   - "tomorrow" or "yesterday"
//   - weekday names "monday" through "sunday": the next occurrence
//   - "last-monday" through "last-sunday": the previous occurrence
//   - an absolute date "2025-01-15"
//
// Absolute dates are midnight in relativeTo's location. Input is case-insensitive.
func ParseDay(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if name, ok := strings.CutPrefix(input, "last-"); ok {
		target, ok := weekdayMap[name]
		if !ok {
			return time.Time{}, ErrInvalidDateFormat
		}
		return previousWeekday(today, target), nil
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	result, err := time.ParseInLocation("2006-01-02", input, today.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of target after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := int(target) - int(today.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

// previousWeekday returns the last occurrence of target before today.
func previousWeekday(today time.Time, target time.Weekday) time.Time {
	days := int(today.Weekday()) - int(target)
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, -days)
}
