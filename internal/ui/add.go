package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/event"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		start    string
		duration int
		location string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an event to a day",
		Long: `Add an event to the local event store.

The title is optional; an event may carry a title, a location, both or neither.`,
		Example: `  dayview add "Standup" --start=09:30 --duration=15
  dayview add "Lunch" --date=tomorrow --start=12:00 --duration=60 --location=Cafe`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.parseDay(date)
			if err != nil {
				return err
			}

			startsAt, err := event.OffsetFromClock(start, a.config.Grid.StartHour)
			if err != nil {
				return err
			}

			entry := &event.Entry{
				Date:     day,
				StartsAt: startsAt,
				Duration: duration,
				Location: location,
			}
			if len(args) == 1 {
				entry.Title = args[0]
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.CreateEvent(cmd.Context(), entry); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added event #%d: %s %s %s\n",
				entry.ID,
				day.Format("2006-01-02"),
				event.FormatRange(entryEvent(entry), a.config.Grid.StartHour),
				entryLabel(entry),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day of the event (YYYY-MM-DD, today, tomorrow, weekday; default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().IntVar(&duration, "duration", 30, "Duration in minutes")
	cmd.Flags().StringVar(&location, "location", "", "Event location")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func entryEvent(e *event.Entry) event.Event {
	return event.Event{
		ID:       int(e.ID),
		StartsAt: e.StartsAt,
		Duration: e.Duration,
		Title:    e.Title,
		Location: e.Location,
	}
}

func entryLabel(e *event.Entry) string {
	if label := entryEvent(e).Label(); label != "" {
		return label
	}
	return formatMuted("(untitled)")
}
