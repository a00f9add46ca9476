package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/dateutil"
	"github.com/kolybasov/day-schedule-wasm/internal/dayview"
	"github.com/kolybasov/day-schedule-wasm/internal/debuglog"
	"github.com/kolybasov/day-schedule-wasm/internal/event"
	"github.com/kolybasov/day-schedule-wasm/internal/theme"
)

// dayInput holds the events of one day and where they came from.
type dayInput struct {
	Events []event.Event
	Date   time.Time
	Source string
}

// parseDay resolves a --date flag against the current time.
func (a *App) parseDay(s string) (time.Time, error) {
	return dateutil.ParseDay(s, a.now())
}

// loadDay reads events from a file argument, stdin ("-"), or the event store
// when no argument is given.
func (a *App) loadDay(cmd *cobra.Command, args []string, formatName, date string) (*dayInput, error) {
	day, err := a.parseDay(date)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		return a.loadStoredDay(cmd.Context(), day)
	}

	path := args[0]
	format := event.FormatJSON
	if formatName != "" {
		if format, err = event.ParseFormat(formatName); err != nil {
			return nil, err
		}
	} else if path != "-" {
		format = event.FormatFromPath(path)
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening events: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	events, skipped, err := a.decode(r, format, day)
	if err != nil {
		debuglog.LogError("decode", err)
		return nil, err
	}
	debuglog.LogDecode(path, string(format), len(events), skipped)

	return &dayInput{Events: events, Date: day, Source: path}, nil
}

func (a *App) decode(r io.Reader, format event.Format, day time.Time) ([]event.Event, int, error) {
	if format != event.FormatICS {
		events, err := event.Decode(r, format)
		return events, 0, err
	}

	res, err := event.ParseICS(r, event.ICSOptions{
		Date:      day,
		Location:  day.Location(),
		StartHour: a.config.Grid.StartHour,
	})
	if err != nil {
		return nil, 0, err
	}
	return event.FromInputs(res.Inputs), res.Skipped, nil
}

func (a *App) loadStoredDay(ctx context.Context, day time.Time) (*dayInput, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	entries, err := a.repo.ListEventsByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	source := "store:" + day.Format("2006-01-02")
	events := event.FromEntries(entries)
	debuglog.LogDecode(source, "sqlite", len(events), 0)

	return &dayInput{Events: events, Date: day, Source: source}, nil
}

// loadTheme resolves the theme flag, falling back to the configured theme.
func (a *App) loadTheme(name string) (*theme.Theme, error) {
	if name == "" {
		name = a.config.UI.Theme
	}
	if !theme.IsAvailable(name) {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return theme.Load(name)
}

// layoutDay computes the column layout and traces it.
func layoutDay(events []event.Event) (dayview.Layout, error) {
	layout, err := dayview.ComputeLayout(events)
	if err != nil {
		debuglog.LogError("layout", err)
		return dayview.Layout{}, err
	}
	debuglog.LogBands(layout.Bands)
	debuglog.LogPositions(layout.Positions)
	return layout, nil
}
