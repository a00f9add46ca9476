package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/event"
)

func (a *App) removeCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "remove [id...]",
		Short: "Remove stored events",
		Long: `Remove events from the local event store by id, or clear a whole day
with --date.`,
		Example: `  dayview remove 12
  dayview remove 12 13
  dayview remove --date=2025-01-15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			clearDay := cmd.Flags().Changed("date")
			if clearDay == (len(args) > 0) {
				return fmt.Errorf("pass either event ids or --date")
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if clearDay {
				day, err := a.parseDay(date)
				if err != nil {
					return err
				}
				n, err := a.repo.DeleteEventsByDate(ctx, day)
				if err != nil {
					return fmt.Errorf("clearing %s: %w", day.Format("2006-01-02"), err)
				}
				fmt.Fprintf(out, "Removed %d events from %s\n", n, day.Format("2006-01-02"))
				return nil
			}

			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid event id %q", arg)
				}

				if err := a.repo.DeleteEvent(ctx, id); err != nil {
					if errors.Is(err, event.ErrEventNotFound) {
						return fmt.Errorf("event #%d not found", id)
					}
					return fmt.Errorf("removing event #%d: %w", id, err)
				}
				fmt.Fprintf(out, "Removed event #%d\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Remove every event of this day (YYYY-MM-DD, today, tomorrow, weekday)")

	return cmd
}
