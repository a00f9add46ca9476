// Package dayview lays out a day's events and draws them as SVG.
//
// LayoutAndRender is the entry point: events are grouped into bands, each
// event gets a width fraction and a column offset, and the result is drawn
// on an hour grid. Every call is independent; nothing is shared between
// renders.
package dayview

import (
	"fmt"

	"github.com/kolybasov/day-schedule-wasm/internal/band"
	"github.com/kolybasov/day-schedule-wasm/internal/event"
	"github.com/kolybasov/day-schedule-wasm/internal/position"
	"github.com/kolybasov/day-schedule-wasm/internal/svg"
)

const (
	svgNamespace = "http://www.w3.org/2000/svg"
	rootStyle    = "overflow: visible; font-family: Helvetica, Arial; font-size: 0.8em;"
	labelStyle   = "font-weight: bold;"
)

// Layout is the column arrangement of a day's events.
type Layout struct {
	Bands     []band.Band
	Positions []position.Position
}

// ComputeLayout validates events and derives their bands and positions.
func ComputeLayout(events []event.Event) (Layout, error) {
	if err := event.Validate(events); err != nil {
		return Layout{}, err
	}

	bands := band.Build(events)
	positions := position.Calculate(bands)
	if len(positions) != len(events) {
		return Layout{}, fmt.Errorf("%w: %d events produced %d positions",
			event.ErrInvalidLayoutInput, len(events), len(positions))
	}

	return Layout{Bands: bands, Positions: positions}, nil
}

// Render draws events at the given positions.
// Positions and events must cover the same set of ids.
func Render(events []event.Event, layout Layout, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	if err := event.Validate(events); err != nil {
		return "", err
	}

	byID := event.ByID(events)
	if len(byID) != len(layout.Positions) {
		return "", fmt.Errorf("%w: %d events but %d positions",
			event.ErrInvalidLayoutInput, len(byID), len(layout.Positions))
	}
	placed := make(map[int]struct{}, len(layout.Positions))
	for _, p := range layout.Positions {
		if _, ok := byID[p.ID]; !ok {
			return "", fmt.Errorf("%w: position for unknown event %d",
				event.ErrInvalidLayoutInput, p.ID)
		}
		if _, dup := placed[p.ID]; dup {
			return "", fmt.Errorf("%w: event %d placed twice",
				event.ErrInvalidLayoutInput, p.ID)
		}
		placed[p.ID] = struct{}{}
		if p.WidthFraction <= 0 || p.WidthFraction > 1 || p.Offset < 0 {
			return "", fmt.Errorf("%w: event %d has degenerate position %+v",
				event.ErrInvalidLayoutInput, p.ID, p)
		}
	}

	r := newRenderer(opts)
	return r.render(byID, layout.Positions).String(), nil
}

// LayoutAndRender computes the layout of events and returns the SVG markup.
func LayoutAndRender(events []event.Event, opts Options) (string, error) {
	layout, err := ComputeLayout(events)
	if err != nil {
		return "", err
	}
	return Render(events, layout, opts)
}

// renderer holds the state of a single render call.
type renderer struct {
	opts       Options
	scale      float64
	hourHeight float64
	eventWidth float64
	clipID     int
}

func newRenderer(opts Options) *renderer {
	return &renderer{
		opts:       opts,
		scale:      opts.Scale(),
		hourHeight: opts.HourHeight(),
		eventWidth: float64(opts.EventWidth()),
	}
}

func (r *renderer) render(byID map[int]event.Event, positions []position.Position) *svg.Element {
	root := svg.New("svg",
		svg.A("xmlns", svgNamespace),
		svg.A("width", svg.Int(r.opts.Width)),
		svg.A("height", svg.Int(r.opts.Height)),
		svg.A("viewBox", fmt.Sprintf("0 0 %d %d", r.opts.Width, r.opts.Height)),
		svg.A("style", rootStyle),
	)
	root.Append(r.grid())

	events := svg.New("g", svg.A("transform", translate(float64(r.opts.Padding), 0)))
	for _, p := range positions {
		e := byID[p.ID]
		width := r.eventWidth * p.WidthFraction
		height := r.scale * float64(e.Duration)

		id, clip := r.clipPath(width, height)
		root.Append(clip)
		events.Append(r.eventGroup(e, p, width, height, id))
	}
	root.Append(events)

	return root
}

func (r *renderer) grid() *svg.Element {
	g := svg.New("g", svg.A("stroke", r.opts.Colors.Grid))

	for i, label := range event.HourLabels(r.opts.StartHour, r.opts.HourMarks) {
		text := svg.New("text",
			svg.A("text-anchor", "end"),
			svg.A("dy", ".35em"),
			svg.A("x", "-10"),
			svg.A("fill", r.opts.Colors.Label),
			svg.A("stroke", "none"),
		).AppendText(label)

		hour := svg.New("g", svg.A("transform", translate(0, float64(i)*r.hourHeight)))
		hour.Append(svg.New("line", svg.A("x2", svg.Int(r.opts.Width))), text)
		g.Append(hour)
	}

	g.Append(
		r.verticalLine(float64(r.opts.Width)),
		r.verticalLine(0),
	)
	return g
}

func (r *renderer) verticalLine(x float64) *svg.Element {
	return svg.New("line",
		svg.A("transform", translate(x, 0)),
		svg.A("y2", svg.Int(r.opts.Height)),
	)
}

// clipPath allocates the next clip id for this call.
func (r *renderer) clipPath(width, height float64) (string, *svg.Element) {
	r.clipID++
	id := fmt.Sprintf("clip-path-%d", r.clipID)

	clip := svg.New("clipPath", svg.A("id", id))
	clip.Append(svg.New("rect",
		svg.A("width", svg.Num(width)),
		svg.A("height", svg.Num(height)),
	))
	return id, clip
}

func (r *renderer) eventGroup(e event.Event, p position.Position, width, height float64, clipID string) *svg.Element {
	color := r.opts.Colors.Event

	g := svg.New("g",
		svg.A("transform", translate(float64(p.Offset)*width, float64(e.StartsAt)*r.scale)),
		svg.A("clip-path", "url(#"+clipID+")"),
	)

	g.Append(
		svg.New("rect",
			svg.A("width", svg.Num(width)),
			svg.A("height", svg.Num(height)),
			svg.A("fill", color),
			svg.A("opacity", "0.3"),
		),
		svg.New("line",
			svg.A("stroke-width", "4"),
			svg.A("stroke", color),
			svg.A("y2", svg.Num(height)),
		),
		r.eventText(e, height),
	)
	return g
}

func (r *renderer) eventText(e event.Event, height float64) *svg.Element {
	text := svg.New("text",
		svg.A("transform", translate(10, height/2)),
		svg.A("fill", r.opts.Colors.Event),
	)

	timeDY := "0.35em"
	if label := e.Label(); label != "" {
		text.Append(svg.New("tspan",
			svg.A("style", labelStyle),
			svg.A("dy", "-0.1em"),
		).AppendText(label))
		timeDY = "0.9em"
	}

	text.Append(svg.New("tspan",
		svg.A("dy", timeDY),
		svg.A("x", "0"),
	).AppendText(event.FormatRange(e, r.opts.StartHour)))

	return text
}

func translate(x, y float64) string {
	return "translate(" + svg.Num(x) + "," + svg.Num(y) + ")"
}
