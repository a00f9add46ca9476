package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for input formats the decoder does not handle.
var ErrUnknownFormat = errors.New("unknown event input format")

// Format identifies an event input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// ParseFormat normalizes a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ics", "ical", "icalendar":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from a file extension.
// Paths without a known extension default to JSON.
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return FormatJSON
}

// Input is the external record shape of a single event.
type Input struct {
	StartsAt int    `json:"starts_at" yaml:"starts_at"`
	Duration int    `json:"duration" yaml:"duration"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// FromInputs assigns each record an id equal to its position in the list.
func FromInputs(inputs []Input) []Event {
	events := make([]Event, len(inputs))
	for i, in := range inputs {
		events[i] = Event{
			ID:       i,
			StartsAt: in.StartsAt,
			Duration: in.Duration,
			Title:    in.Title,
			Location: in.Location,
		}
	}
	return events
}

// DecodeJSON reads a JSON array of event records.
func DecodeJSON(r io.Reader) ([]Event, error) {
	var inputs []Input
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("decoding json events: %w", err)
	}
	return FromInputs(inputs), nil
}

// DecodeYAML reads a YAML sequence of event records.
func DecodeYAML(r io.Reader) ([]Event, error) {
	var inputs []Input
	if err := yaml.NewDecoder(r).Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("decoding yaml events: %w", err)
	}
	return FromInputs(inputs), nil
}

// Decode reads events in the given format. ICS input needs a date and
// grid start hour, so it goes through ParseICS instead.
func Decode(r io.Reader, format Format) ([]Event, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
