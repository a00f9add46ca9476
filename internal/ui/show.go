package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/dayview"
	"github.com/kolybasov/day-schedule-wasm/internal/event"
	"github.com/kolybasov/day-schedule-wasm/internal/position"
	"github.com/kolybasov/day-schedule-wasm/internal/theme"
)

const (
	defaultSlotMinutes = 30
	rulerWidth         = 9
	minPreviewWidth    = 40
	maxPreviewWidth    = 120
)

func (a *App) showCmd() *cobra.Command {
	var (
		format    string
		date      string
		themeName string
		slot      int
		width     int
	)

	cmd := &cobra.Command{
		Use:   "show [file|-]",
		Short: "Preview a day's layout in the terminal",
		Long: `Preview a day's column layout in the terminal.

Takes the same inputs as render. Each row is one time slot; overlapping
events are drawn side by side in the columns the SVG would use.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if slot <= 0 || 60%slot != 0 {
				return fmt.Errorf("slot must divide an hour, got %d", slot)
			}

			in, err := a.loadDay(cmd, args, format, date)
			if err != nil {
				return err
			}

			t, err := a.loadTheme(themeName)
			if err != nil {
				return err
			}

			layout, err := layoutDay(in.Events)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(in.Date.Format("Monday, January 2, 2006")))
			if len(in.Events) == 0 {
				fmt.Fprintln(out, formatMuted("No events."))
				return nil
			}

			if width <= 0 {
				width = min(max(termWidth(), minPreviewWidth), maxPreviewWidth)
			}

			fmt.Fprint(out, renderPreview(in.Events, layout, previewOptions{
				StartHour:   a.config.Grid.StartHour,
				HourMarks:   a.config.Grid.HourMarks,
				SlotMinutes: slot,
				Width:       width,
				Palette:     theme.NewPalette(t),
				Renderer:    a.previewRenderer(out),
			}))

			if hidden := outsideGrid(in.Events, a.config.Grid.HourMarks); hidden > 0 {
				fmt.Fprintln(out, formatWarn(fmt.Sprintf("%d event(s) start after the last hour mark", hidden)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: json, yaml or ics (default: from extension)")
	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, today, tomorrow, weekday; default: today)")
	cmd.Flags().StringVar(&themeName, "theme", "", "Colour theme (default: from config)")
	cmd.Flags().IntVar(&slot, "slot", defaultSlotMinutes, "Minutes per row")
	cmd.Flags().IntVar(&width, "width", 0, "Preview width in columns (default: terminal width)")
	return cmd
}

func (a *App) previewRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if a.noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// outsideGrid counts events starting at or after the last hour mark.
func outsideGrid(events []event.Event, hourMarks int) int {
	limit := (hourMarks - 1) * 60
	n := 0
	for _, e := range events {
		if e.StartsAt >= limit {
			n++
		}
	}
	return n
}

type previewOptions struct {
	StartHour   int
	HourMarks   int
	SlotMinutes int
	Width       int
	Palette     *theme.Palette
	Renderer    *lipgloss.Renderer
}

// block is one event placed on the character grid.
type block struct {
	event    event.Event
	startRow int
	alt      bool
}

// renderPreview draws the layout as rows of time slots. Each event occupies
// the character columns matching its offset and width and the rows its
// interval touches.
func renderPreview(events []event.Event, layout dayview.Layout, opts previewOptions) string {
	rows := (opts.HourMarks - 1) * 60 / opts.SlotMinutes
	area := opts.Width - rulerWidth - 1
	if rows <= 0 || area <= 0 {
		return ""
	}

	byID := event.ByID(events)
	owner := make([][]int, rows)
	for i := range owner {
		owner[i] = make([]int, area)
		for j := range owner[i] {
			owner[i][j] = -1
		}
	}

	blocks := make([]block, 0, len(layout.Positions))
	for _, p := range layout.Positions {
		e, ok := byID[p.ID]
		if !ok {
			continue
		}
		x0, x1 := columnSpan(p, area)
		r0 := e.StartsAt / opts.SlotMinutes
		r1 := min((e.EndsAt()+opts.SlotMinutes-1)/opts.SlotMinutes, rows)
		if r0 >= rows || x1 <= x0 {
			continue
		}

		idx := len(blocks)
		blocks = append(blocks, block{event: e, startRow: r0, alt: p.Offset%2 == 1})
		for r := r0; r < r1; r++ {
			for x := x0; x < x1; x++ {
				owner[r][x] = idx
			}
		}
	}

	style := opts.Renderer.NewStyle()
	ruler := style.Foreground(opts.Palette.FgMuted)
	border := style.Foreground(opts.Palette.Accent)
	on := style.Foreground(opts.Palette.TextOnEvent).Bold(true)
	onMuted := style.Foreground(opts.Palette.TextOnEvent)

	var b strings.Builder
	for r := 0; r < rows; r++ {
		offset := r * opts.SlotMinutes
		label := ""
		if offset%60 == 0 {
			label = event.FormatClock(offset, opts.StartHour)
		}
		b.WriteString(ruler.Render(fmt.Sprintf("%*s ", rulerWidth-1, label)))
		b.WriteString(border.Render("│"))

		for x := 0; x < area; {
			run := x
			for run < area && owner[r][run] == owner[r][x] {
				run++
			}
			n := run - x

			idx := owner[r][x]
			if idx < 0 {
				b.WriteString(strings.Repeat(" ", n))
				x = run
				continue
			}

			blk := blocks[idx]
			bg := opts.Palette.EventBg
			if blk.alt {
				bg = opts.Palette.EventBgAlt
			}
			text, strong := blockLine(blk.event, r-blk.startRow, opts.StartHour)
			st := onMuted
			if strong {
				st = on
			}
			b.WriteString(st.Background(bg).Width(n).MaxWidth(n).Render(ansi.Truncate(text, n, "…")))
			x = run
		}
		b.WriteString("\n")
	}
	return b.String()
}

// blockLine returns the text of the given row of an event block and whether
// it is the bold label line.
func blockLine(e event.Event, row, startHour int) (string, bool) {
	label := e.Label()
	switch {
	case row == 0 && label != "":
		return " " + label, true
	case row == 0, row == 1 && label != "":
		return " " + event.FormatRange(e, startHour), false
	default:
		return "", false
	}
}

// columnSpan maps a fractional position onto character columns, leaving a
// one-column gap on the right.
func columnSpan(p position.Position, area int) (int, int) {
	x0 := int(float64(p.Offset)*p.WidthFraction*float64(area) + 0.5)
	x1 := int(float64(p.Offset+1)*p.WidthFraction*float64(area)+0.5) - 1
	if x1 <= x0 {
		x1 = x0 + 1
	}
	return min(x0, area), min(x1, area)
}
