// Package event defines the calendar event model used by the day-view layout.
package event

import (
	"errors"
	"fmt"
)

// Layout errors.
var (
	// ErrInvalidLayoutInput is returned when events cannot be laid out
	// without producing degenerate geometry.
	ErrInvalidLayoutInput = errors.New("invalid event layout input")
)

// Event is a single time-bound item on the day grid.
// StartsAt and Duration are minutes; StartsAt is relative to the grid's
// first displayed hour. Empty Title or Location means the field is absent.
type Event struct {
	ID       int
	StartsAt int
	Duration int
	Title    string
	Location string
}

// EndsAt returns the exclusive end of the event in minutes.
func (e Event) EndsAt() int {
	return e.StartsAt + e.Duration
}

// Overlaps reports whether the half-open intervals [StartsAt, EndsAt) of
// both events intersect. Touching intervals do not overlap.
func (e Event) Overlaps(other Event) bool {
	return e.StartsAt < other.EndsAt() && other.StartsAt < e.EndsAt()
}

// HasTitle reports whether the event carries a title.
func (e Event) HasTitle() bool {
	return e.Title != ""
}

// HasLocation reports whether the event carries a location.
func (e Event) HasLocation() bool {
	return e.Location != ""
}

// Label returns the bold label line: "title/location", whichever one is
// present, or an empty string when neither is.
func (e Event) Label() string {
	switch {
	case e.HasTitle() && e.HasLocation():
		return e.Title + "/" + e.Location
	case e.HasTitle():
		return e.Title
	default:
		return e.Location
	}
}

// Validate checks the preconditions of the layout pipeline.
// Durations must be positive, starts must not be negative and ids must be unique.
func Validate(events []Event) error {
	seen := make(map[int]struct{}, len(events))
	for _, e := range events {
		if e.ID < 0 {
			return fmt.Errorf("%w: event id %d is negative", ErrInvalidLayoutInput, e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate event id %d", ErrInvalidLayoutInput, e.ID)
		}
		seen[e.ID] = struct{}{}

		if e.Duration <= 0 {
			return fmt.Errorf("%w: event %d has non-positive duration %d",
				ErrInvalidLayoutInput, e.ID, e.Duration)
		}
		if e.StartsAt < 0 {
			return fmt.Errorf("%w: event %d starts before the grid (%d)",
				ErrInvalidLayoutInput, e.ID, e.StartsAt)
		}
	}
	return nil
}

// ByID indexes events by their identifier.
func ByID(events []Event) map[int]Event {
	m := make(map[int]Event, len(events))
	for _, e := range events {
		m[e.ID] = e
	}
	return m
}
