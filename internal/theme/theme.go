// Package theme provides colour themes for the SVG output and the terminal preview.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kolybasov/day-schedule-wasm/internal/dayview"
)

// DefaultName is the theme used when none is configured.
const DefaultName = "classic"

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds the colours of one theme.
type Theme struct {
	Name string `toml:"name"`

	Grid  string `toml:"grid"`  // hour and border lines
	Label string `toml:"label"` // hour labels
	Event string `toml:"event"` // event boxes and text

	Bg      string `toml:"bg"`       // preview background
	Fg      string `toml:"fg"`       // preview text
	FgMuted string `toml:"fg_muted"` // hour ruler
	Accent  string `toml:"accent"`   // headings and borders
}

// Load loads a theme by name from embedded files.
// Unknown names fall back to the classic theme.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	classic := dayview.DefaultColors()
	t.Grid = coalesce(t.Grid, classic.Grid)
	t.Label = coalesce(t.Label, t.FgMuted, classic.Label)
	t.Event = coalesce(t.Event, t.Accent, classic.Event)
	t.Accent = coalesce(t.Accent, t.Event)
	t.FgMuted = coalesce(t.FgMuted, t.Label)
}

// SVGColors returns the renderer colours of the theme.
func (t *Theme) SVGColors() dayview.Colors {
	return dayview.Colors{
		Grid:  t.Grid,
		Label: t.Label,
		Event: t.Event,
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the names of the embedded themes.
func Available() []string {
	return []string{"classic", "mocha", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
