package event

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ICSOptions selects which calendar entries become grid events.
type ICSOptions struct {
	// Date is the day to extract; only its year/month/day are used.
	Date time.Time
	// Location is the display timezone. Nil means time.Local.
	Location *time.Location
	// StartHour is the grid's first displayed hour.
	StartHour int
}

// ICSResult holds the extracted inputs and the number of skipped entries.
type ICSResult struct {
	Inputs  []Input
	Skipped int
}

// ParseICS extracts the timed VEVENTs starting on opts.Date.
// All-day entries, entries without a usable start or end, and entries
// starting before the grid start hour are skipped and counted.
func ParseICS(r io.Reader, opts ICSOptions) (ICSResult, error) {
	var result ICSResult

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return result, fmt.Errorf("parsing ics: %w", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	y, m, d := opts.Date.Date()
	gridStart := time.Date(y, m, d, opts.StartHour, 0, 0, 0, loc)

	for _, ve := range cal.Events() {
		in, ok, err := icsInput(ve, loc, gridStart)
		if err != nil || !ok {
			result.Skipped++
			continue
		}
		result.Inputs = append(result.Inputs, in)
	}

	return result, nil
}

func icsInput(ve *ical.VEvent, loc *time.Location, gridStart time.Time) (Input, bool, error) {
	if isAllDay(ve) {
		return Input{}, false, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return Input{}, false, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return Input{}, false, err
	}
	start = start.In(loc)
	end = end.In(loc)

	if !sameDay(start, gridStart) {
		return Input{}, false, nil
	}
	if start.Before(gridStart) {
		return Input{}, false, nil
	}
	if !end.After(start) {
		return Input{}, false, errors.New("event ends before it starts")
	}

	in := Input{
		StartsAt: int(start.Sub(gridStart).Minutes()),
		Duration: int(end.Sub(start).Minutes()),
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		in.Title = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		in.Location = strings.TrimSpace(p.Value)
	}
	return in, true, nil
}

// isAllDay detects VALUE=DATE starts or date-only DTSTART values.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
