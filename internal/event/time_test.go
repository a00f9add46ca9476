package event

import (
	"errors"
	"slices"
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		startHour int
		want      string
	}{
		{name: "grid start", offset: 0, startHour: 9, want: "9 AM"},
		{name: "one hour", offset: 60, startHour: 9, want: "10 AM"},
		{name: "noon", offset: 180, startHour: 9, want: "12 PM"},
		{name: "afternoon", offset: 270, startHour: 9, want: "1:30 PM"},
		{name: "padded minutes", offset: 65, startHour: 9, want: "10:05 AM"},
		{name: "end of grid", offset: 720, startHour: 9, want: "9 PM"},
		{name: "midnight", offset: 0, startHour: 0, want: "12 AM"},
		{name: "wraps past midnight", offset: 120, startHour: 23, want: "1 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatClock(tt.offset, tt.startHour)
			if got != tt.want {
				t.Errorf("FormatClock(%d, %d) = %q, want %q", tt.offset, tt.startHour, got, tt.want)
			}
		})
	}
}

func TestFormatRange(t *testing.T) {
	e := Event{StartsAt: 60, Duration: 90}
	if got, want := FormatRange(e, 9), "10 AM – 11:30 AM"; got != want {
		t.Errorf("FormatRange() = %q, want %q", got, want)
	}
}

func TestHourLabels(t *testing.T) {
	got := HourLabels(9, 13)
	want := []string{
		"9 AM", "10 AM", "11 AM", "12 PM", "1 PM", "2 PM", "3 PM",
		"4 PM", "5 PM", "6 PM", "7 PM", "8 PM", "9 PM",
	}
	if !slices.Equal(got, want) {
		t.Errorf("HourLabels(9, 13) = %v, want %v", got, want)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "9am", input: "09:00", want: 540},
		{name: "with minutes", input: "13:45", want: 825},
		{name: "short", input: "9:00", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Fatalf("expected ErrInvalidTimeFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestOffsetFromClock(t *testing.T) {
	got, err := OffsetFromClock("10:30", 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 90 {
		t.Errorf("expected 90, got %d", got)
	}

	if _, err := OffsetFromClock("08:59", 9); err == nil {
		t.Error("expected error for time before the grid start")
	}
}
