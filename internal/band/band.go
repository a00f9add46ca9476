// Package band groups events into the ordered bands used to derive column widths.
package band

import (
	"cmp"
	"slices"

	"github.com/kolybasov/day-schedule-wasm/internal/event"
)

// Band is an ordered sequence of event ids. The index of an id within a
// band is the column it occupies while that band is current.
type Band []int

// Contains reports whether id is a member of the band.
func (b Band) Contains(id int) bool {
	return slices.Contains(b, id)
}

// Intersects reports whether both bands share at least one id.
func (b Band) Intersects(other Band) bool {
	for _, id := range b {
		if other.Contains(id) {
			return true
		}
	}
	return false
}

// Build sweeps the events in ascending start order and returns their bands.
//
// A new band starts whenever the last band holds an event that does not
// overlap the incoming one. Members of the previous band that still overlap
// the incoming event are carried into the new band at their old column, and
// the incoming event takes the column of the first member it does not overlap.
func Build(events []event.Event) []Band {
	if len(events) == 0 {
		return nil
	}

	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b event.Event) int {
		return cmp.Compare(a.StartsAt, b.StartsAt)
	})
	byID := event.ByID(sorted)

	var bands []Band
	for _, e := range sorted {
		if len(bands) == 0 {
			bands = append(bands, Band{e.ID})
			continue
		}

		last := len(bands) - 1
		if needsNewBand(e, bands[last], byID) {
			bands = append(bands, Band{})
			last++
		}

		if last == 0 {
			bands[0] = append(bands[0], e.ID)
			continue
		}

		bands[last] = carryForward(e, bands[last-1], bands[last], byID)
	}

	return bands
}

// needsNewBand reports whether some member of the band does not overlap e.
func needsNewBand(e event.Event, last Band, byID map[int]event.Event) bool {
	for _, id := range last {
		if !e.Overlaps(byID[id]) {
			return true
		}
	}
	return false
}

// carryForward walks prev in order and fills cur, keeping overlapping
// members aligned with their column in prev.
func carryForward(e event.Event, prev, cur Band, byID map[int]event.Event) Band {
	inserted := false
	for idx, id := range prev {
		if e.Overlaps(byID[id]) {
			// Never overwrite a slot cur already filled.
			if len(cur) == 0 || len(cur)-1 < idx {
				cur = append(cur, id)
			}
		} else if !inserted {
			cur = append(cur, e.ID)
			inserted = true
		}
	}
	return cur
}
