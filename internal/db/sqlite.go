// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kolybasov/day-schedule-wasm/internal/event"
)

const dateLayout = "2006-01-02"

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
// The parent directory of path is created when missing.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const insertEvent = `
	INSERT INTO events (event_date, starts_at, duration, title, location, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
`

// CreateEvent adds a new entry and sets its ID.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, insertEvent,
		e.Date.Format(dateLayout),
		e.StartsAt,
		e.Duration,
		e.Title,
		e.Location,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	e.ID = id

	return nil
}

// CreateEvents adds multiple entries in a single transaction.
// Nothing is stored if any entry is invalid.
func (s *SQLite) CreateEvents(ctx context.Context, entries []*event.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, e := range entries {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		result, err := stmt.ExecContext(ctx,
			e.Date.Format(dateLayout),
			e.StartsAt,
			e.Duration,
			e.Title,
			e.Location,
			e.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting event %q: %w", e.Title, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		e.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

const selectEvent = `
	SELECT id, event_date, starts_at, duration, title, location, created_at
	FROM events
`

// GetEvent retrieves an entry by ID.
func (s *SQLite) GetEvent(ctx context.Context, id int64) (*event.Entry, error) {
	row := s.db.QueryRowContext(ctx, selectEvent+` WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", id, event.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// ListEventsByDate returns the entries of a day in insertion order.
func (s *SQLite) ListEventsByDate(ctx context.Context, date time.Time) ([]*event.Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectEvent+` WHERE event_date = ? ORDER BY id`, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*event.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return entries, nil
}

// DeleteEvent removes a single entry.
func (s *SQLite) DeleteEvent(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %d: %w", id, event.ErrEventNotFound)
	}

	return nil
}

// DeleteEventsByDate removes every entry of a day and returns the count.
func (s *SQLite) DeleteEventsByDate(ctx context.Context, date time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE event_date = ?`, date.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("deleting events: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted events: %w", err)
	}
	return n, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*event.Entry, error) {
	var (
		e         event.Entry
		eventDate string
		createdAt sql.NullString
	)

	if err := sc.Scan(
		&e.ID,
		&eventDate,
		&e.StartsAt,
		&e.Duration,
		&e.Title,
		&e.Location,
		&createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	e.Date, err = parseDate(eventDate)
	if err != nil {
		return nil, fmt.Errorf("parsing event date: %w", err)
	}

	if createdAt.Valid {
		e.CreatedAt, err = parseDate(createdAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
	}

	return &e, nil
}

// parseDate parses a date string in the formats SQLite might return.
// Date-only values are local midnight.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// DATE columns can come back as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' && s[11:19] == "00:00:00" {
		if t, err := time.ParseInLocation(dateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
