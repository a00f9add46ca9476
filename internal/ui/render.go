package ui

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/dayview"
	"github.com/kolybasov/day-schedule-wasm/internal/debuglog"
	"github.com/kolybasov/day-schedule-wasm/internal/event"
)

func (a *App) renderCmd() *cobra.Command {
	var (
		output    string
		format    string
		date      string
		themeName string
		copyOut   bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a day of events as SVG",
		Long: `Render a day of events as SVG.

Events are read from a JSON, YAML or ICS file ("-" reads stdin). The format
is taken from the file extension unless --format is given. Without a file,
the events stored for --date are rendered.

JSON and YAML input is a list of records:
  [{"starts_at": 60, "duration": 45, "title": "Standup", "location": "Room 1"}]
where starts_at is minutes after the first hour of the grid.`,
		Example: `  dayview render day.json > day.svg
  dayview render calendar.ics --date=2025-01-15 -o day.svg
  dayview render --date=tomorrow --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.loadDay(cmd, args, format, date)
			if err != nil {
				return err
			}

			t, err := a.loadTheme(themeName)
			if err != nil {
				return err
			}

			markup, err := renderSVG(in.Events, a.config.RenderOptions(t.SVGColors()))
			if err != nil {
				return err
			}

			return a.writeSVG(cmd, markup, len(in.Events), output, copyOut)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the SVG to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "Input format: json, yaml or ics (default: from extension)")
	cmd.Flags().StringVar(&date, "date", "", "Day to render (YYYY-MM-DD, today, tomorrow, weekday; default: today)")
	cmd.Flags().StringVar(&themeName, "theme", "", "Colour theme (default: from config)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the SVG to the clipboard")

	return cmd
}

// renderSVG lays out events and draws them.
func renderSVG(events []event.Event, opts dayview.Options) (string, error) {
	layout, err := layoutDay(events)
	if err != nil {
		return "", err
	}

	markup, err := dayview.Render(events, layout, opts)
	if err != nil {
		debuglog.LogError("render", err)
		return "", err
	}
	debuglog.LogRender(len(events), len(markup))
	return markup, nil
}

func (a *App) writeSVG(cmd *cobra.Command, markup string, count int, output string, copyOut bool) error {
	if copyOut {
		if err := clipboard.WriteAll(markup); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied SVG with %d events to clipboard\n", count)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(markup), 0o644); err != nil {
			return fmt.Errorf("writing svg: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d events to %s\n", count, output)
		return nil
	}

	if copyOut {
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), markup)
	return err
}
