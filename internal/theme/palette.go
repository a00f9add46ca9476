package theme

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the lipgloss colours used by the terminal preview.
type Palette struct {
	Fg      lipgloss.Color
	FgMuted lipgloss.Color
	Accent  lipgloss.Color

	// EventBg fills an event block; EventBgAlt alternates between
	// neighbouring columns.
	EventBg     lipgloss.Color
	EventBgAlt  lipgloss.Color
	TextOnEvent lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := luminance(t.Bg) > 0.55
	eventBg := blend(t.Event, t.Bg, 0.7)
	if !light {
		eventBg = blend(t.Event, "#000000", 0.5)
	}
	eventBgAlt := blend(eventBg, "#000000", 0.12)
	if !light {
		eventBgAlt = blend(eventBg, "#ffffff", 0.2)
	}

	return &Palette{
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		EventBg:     lipgloss.Color(eventBg),
		EventBgAlt:  lipgloss.Color(eventBgAlt),
		TextOnEvent: lipgloss.Color(readableOn(eventBg, t.Fg, t.Bg)),
	}
}

type rgb struct {
	r, g, b float64
}

// parseRGB reads "#rrggbb". ok is false for anything else.
func parseRGB(hex string) (rgb, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{
		r: float64(v>>16&0xff),
		g: float64(v>>8&0xff),
		b: float64(v&0xff),
	}, true
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.r), clampByte(c.g), clampByte(c.b))
}

func clampByte(v float64) int {
	return int(math.Max(0, math.Min(255, v)))
}

// blend mixes a towards b by ratio in [0, 1]. Invalid input returns a.
func blend(a, b string, ratio float64) string {
	ca, okA := parseRGB(a)
	cb, okB := parseRGB(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y float64) float64 { return x*(1-ratio) + y*ratio }
	return rgb{
		r: mix(ca.r, cb.r),
		g: mix(ca.g, cb.g),
		b: mix(ca.b, cb.b),
	}.hex()
}

// luminance returns the WCAG relative luminance of a hex colour.
func luminance(hex string) float64 {
	c, ok := parseRGB(hex)
	if !ok {
		return 0
	}
	return 0.2126*linear(c.r) + 0.7152*linear(c.g) + 0.0722*linear(c.b)
}

func linear(channel float64) float64 {
	v := channel / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func contrast(a, b string) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// readableOn picks whichever candidate contrasts more with bg.
func readableOn(bg string, candidates ...string) string {
	best, bestRatio := "", -1.0
	for _, c := range candidates {
		if r := contrast(bg, c); r > bestRatio {
			best, bestRatio = c, r
		}
	}
	return best
}
