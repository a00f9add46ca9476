package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/event"
)

func (a *App) importCmd() *cobra.Command {
	var (
		date    string
		format  string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a day of events into the event store",
		Long: `Import events from a JSON, YAML or ICS file into the local event store.

ICS calendars contribute the timed events that start on --date at or after
the grid's first hour; other entries are skipped and counted.`,
		Example: `  dayview import calendar.ics --date=2025-01-15
  dayview import day.yaml --date=tomorrow --replace
  cat day.json | dayview import - --format=json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.loadDay(cmd, args, format, date)
			if err != nil {
				return err
			}
			if err := event.Validate(in.Events); err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			removed, count, err := importEvents(cmd.Context(), a.repo, in.Date, in.Events, replace)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if removed > 0 {
				fmt.Fprintf(out, "Replaced %d existing events\n", removed)
			}
			fmt.Fprintf(out, "Imported %d events into %s from %s\n", count, in.Date.Format("2006-01-02"), in.Source)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to import into (YYYY-MM-DD, today, tomorrow, weekday; default: today)")
	cmd.Flags().StringVar(&format, "format", "", "Input format: json, yaml or ics (default: from extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Clear the day before importing")

	return cmd
}

// importEvents stores events on day, optionally clearing the day first.
// It returns the number of removed and stored events.
func importEvents(ctx context.Context, repo event.Repository, day time.Time, events []event.Event, replace bool) (int64, int, error) {
	entries := make([]*event.Entry, len(events))
	for i, e := range events {
		entries[i] = &event.Entry{
			Date:     day,
			StartsAt: e.StartsAt,
			Duration: e.Duration,
			Title:    e.Title,
			Location: e.Location,
		}
		if err := entries[i].Validate(); err != nil {
			return 0, 0, err
		}
	}

	var removed int64
	if replace {
		n, err := repo.DeleteEventsByDate(ctx, day)
		if err != nil {
			return 0, 0, fmt.Errorf("clearing day: %w", err)
		}
		removed = n
	}

	if err := repo.CreateEvents(ctx, entries); err != nil {
		return removed, 0, fmt.Errorf("importing events: %w", err)
	}
	return removed, len(entries), nil
}
