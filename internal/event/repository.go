package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Storage errors.
var (
	// ErrEventNotFound is returned when a stored event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidEntry is returned when an entry cannot be stored.
	ErrInvalidEntry = errors.New("invalid event entry")
)

// Entry is a stored event for a specific day.
type Entry struct {
	ID        int64
	Date      time.Time
	StartsAt  int
	Duration  int
	Title     string
	Location  string
	CreatedAt time.Time
}

// Validate checks an entry before it is stored.
func (e *Entry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	if e.StartsAt < 0 {
		return fmt.Errorf("%w: start %d is before the grid", ErrInvalidEntry, e.StartsAt)
	}
	if e.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidEntry, e.Duration)
	}
	e.Title = strings.TrimSpace(e.Title)
	e.Location = strings.TrimSpace(e.Location)
	return nil
}

// FromEntries converts stored entries into render events.
// Ids are assigned by position, matching the decoders.
func FromEntries(entries []*Entry) []Event {
	inputs := make([]Input, len(entries))
	for i, e := range entries {
		inputs[i] = Input{
			StartsAt: e.StartsAt,
			Duration: e.Duration,
			Title:    e.Title,
			Location: e.Location,
		}
	}
	return FromInputs(inputs)
}

// Repository defines the storage interface for day event lists.
type Repository interface {
	// CreateEvent adds a new entry and sets its ID.
	CreateEvent(ctx context.Context, e *Entry) error

	// CreateEvents adds multiple entries in a single transaction.
	CreateEvents(ctx context.Context, entries []*Entry) error

	// GetEvent retrieves an entry by ID.
	// Returns ErrEventNotFound if it does not exist.
	GetEvent(ctx context.Context, id int64) (*Entry, error)

	// ListEventsByDate returns the entries of a day in insertion order.
	ListEventsByDate(ctx context.Context, date time.Time) ([]*Entry, error)

	// DeleteEvent removes a single entry.
	// Returns ErrEventNotFound if it does not exist.
	DeleteEvent(ctx context.Context, id int64) error

	// DeleteEventsByDate removes every entry of a day and returns the count.
	DeleteEventsByDate(ctx context.Context, date time.Time) (int64, error)

	// Close releases any resources held by the repository.
	Close() error
}
