package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			event_date  DATE NOT NULL,
			starts_at   INTEGER NOT NULL CHECK(starts_at >= 0),
			duration    INTEGER NOT NULL CHECK(duration > 0),
			title       TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
