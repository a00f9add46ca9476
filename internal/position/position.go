// Package position derives column width and offset for each banded event.
package position

import (
	"github.com/kolybasov/day-schedule-wasm/internal/band"
)

// Position places one event on the grid.
type Position struct {
	ID            int
	WidthFraction float64 // share of the available width, in (0, 1]
	Offset        int     // zero-based column index
}

// Calculate assigns one Position per distinct id, in band order.
//
// Every id in a band gets width 1/m, where m is the size of the widest band
// sharing at least one id with it. An id keeps the placement of the first
// band it appears in.
func Calculate(bands []band.Band) []Position {
	var positions []Position
	placed := make(map[int]struct{})

	for _, row := range bands {
		maxWidth := widestIntersecting(row, bands)
		if maxWidth == 0 {
			continue
		}

		for offset, id := range row {
			if _, ok := placed[id]; ok {
				continue
			}
			positions = append(positions, Position{
				ID:            id,
				WidthFraction: 1 / float64(maxWidth),
				Offset:        offset,
			})
			placed[id] = struct{}{}
		}
	}

	return positions
}

func widestIntersecting(row band.Band, bands []band.Band) int {
	widest := 0
	for _, other := range bands {
		if row.Intersects(other) && len(other) > widest {
			widest = len(other)
		}
	}
	return widest
}

// Index maps event ids to their positions.
func Index(positions []Position) map[int]Position {
	m := make(map[int]Position, len(positions))
	for _, p := range positions {
		m[p.ID] = p
	}
	return m
}
