package dayview

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is returned when the grid geometry cannot be drawn.
var ErrInvalidOptions = errors.New("invalid day view options")

// Default grid geometry. With 720px over 12 hour intervals the scale is
// exactly one pixel per minute.
const (
	DefaultWidth     = 600
	DefaultHeight    = 720
	DefaultStartHour = 9
	DefaultHourMarks = 13
	DefaultPadding   = 10
)

// Colors holds the fills used by the renderer.
type Colors struct {
	Grid  string // hour and border lines
	Label string // hour labels
	Event string // event box, accent line and text
}

// DefaultColors returns the classic palette.
func DefaultColors() Colors {
	return Colors{
		Grid:  "#f8f8f8",
		Label: "#c9c9c9",
		Event: "#45a51c",
	}
}

// Options configures the canvas.
type Options struct {
	Width     int
	Height    int
	StartHour int // first displayed hour, 0-23
	HourMarks int // number of hour labels, including both ends
	Padding   int // horizontal inset of the events group
	Colors    Colors
}

// DefaultOptions returns the 600x720 nine-to-nine grid.
func DefaultOptions() Options {
	return Options{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		StartHour: DefaultStartHour,
		HourMarks: DefaultHourMarks,
		Padding:   DefaultPadding,
		Colors:    DefaultColors(),
	}
}

// Validate checks that the geometry produces positive sizes.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.HourMarks < 2 {
		return fmt.Errorf("%w: need at least 2 hour marks, got %d", ErrInvalidOptions, o.HourMarks)
	}
	if o.StartHour < 0 || o.StartHour > 23 {
		return fmt.Errorf("%w: start hour must be 0-23, got %d", ErrInvalidOptions, o.StartHour)
	}
	if o.Padding < 0 || o.EventWidth() <= 0 {
		return fmt.Errorf("%w: padding %d leaves no room for events", ErrInvalidOptions, o.Padding)
	}
	return nil
}

// HourHeight returns the pixel distance between two hour marks.
func (o Options) HourHeight() float64 {
	return float64(o.Height) / float64(o.HourMarks-1)
}

// Scale returns pixels per minute.
func (o Options) Scale() float64 {
	return o.HourHeight() / 60
}

// EventWidth returns the horizontal space shared by overlapping events.
func (o Options) EventWidth() int {
	return o.Width - 2*o.Padding
}
