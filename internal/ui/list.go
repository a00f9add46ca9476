package ui

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/event"
	"github.com/kolybasov/day-schedule-wasm/internal/position"
)

func (a *App) listCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored events of a day",
		Long: `List the events stored for a day, in the order they were added,
together with the column each one is drawn in.`,
		Example: `  dayview list
  dayview list --date=2025-01-15
  dayview list --date=friday`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.parseDay(date)
			if err != nil {
				return err
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			entries, err := a.repo.ListEventsByDate(cmd.Context(), day)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No events on %s.\n", day.Format("2006-01-02"))
				return nil
			}

			layout, err := layoutDay(event.FromEntries(entries))
			if err != nil {
				return err
			}
			columns := position.Index(layout.Positions)

			fmt.Fprintf(out, "=== %s ===\n", formatHeader(day.Format("2006-01-02")))
			for i, e := range entries {
				fmt.Fprintf(out, "  #%d %s %s %s\n",
					e.ID,
					formatEvent(event.FormatRange(entryEvent(e), a.config.Grid.StartHour)),
					entryLabel(e),
					formatMuted(columnLabel(columns[i])),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD, today, tomorrow, weekday; default: today)")

	return cmd
}

// columnLabel describes a position as "[col 2/3]".
func columnLabel(p position.Position) string {
	if p.WidthFraction <= 0 {
		return ""
	}
	total := int(math.Round(1 / p.WidthFraction))
	return fmt.Sprintf("[col %d/%d]", p.Offset+1, total)
}
