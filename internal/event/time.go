package event

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a wall-clock time is not HH:MM.
var ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

// FormatClock converts a minute offset from the grid start hour into a
// 12-hour label such as "9 AM" or "1:30 PM".
// The minutes component is omitted when it is zero.
func FormatClock(offset, startHour int) string {
	minute := offset % 60
	hour := (startHour + offset/60) % 24

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	display := hour % 12
	if display == 0 {
		display = 12
	}

	if minute != 0 {
		return fmt.Sprintf("%d:%02d %s", display, minute, period)
	}
	return fmt.Sprintf("%d %s", display, period)
}

// FormatRange renders the "<start> – <end>" label of an event.
func FormatRange(e Event, startHour int) string {
	return FormatClock(e.StartsAt, startHour) + " – " + FormatClock(e.EndsAt(), startHour)
}

// HourLabels returns one label per displayed hour mark, starting at startHour.
func HourLabels(startHour, marks int) []string {
	labels := make([]string, 0, marks)
	for i := 0; i < marks; i++ {
		labels = append(labels, FormatClock(i*60, startHour))
	}
	return labels
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 {
		return 0, ErrInvalidTimeFormat
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return t.Hour()*60 + t.Minute(), nil
}

// OffsetFromClock converts a wall-clock "HH:MM" into a minute offset from
// the grid start hour. Times before the start hour are rejected.
func OffsetFromClock(s string, startHour int) (int, error) {
	m, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	offset := m - startHour*60
	if offset < 0 {
		return 0, fmt.Errorf("%s is before the grid start hour %02d:00", s, startHour)
	}
	return offset, nil
}
