package debuglog

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kolybasov/day-schedule-wasm/internal/band"
	"github.com/kolybasov/day-schedule-wasm/internal/position"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	defer func() { _ = f.Close() }()

	var entries []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", sc.Text(), err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerWritesTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := InitAt(path); err != nil {
		t.Fatalf("InitAt() error = %v", err)
	}
	if !Enabled() {
		t.Fatal("expected logger to be enabled")
	}

	LogCommand("render", []string{"day.json"})
	LogDecode("day.json", "json", 3, 0)
	LogBands([]band.Band{{0, 1}, {2}})
	LogPositions([]position.Position{{ID: 0, WidthFraction: 0.5, Offset: 0}})
	LogRender(3, 1024)
	LogError("render", errors.New("boom"))
	Close()

	entries := readEntries(t, path)
	want := []string{"DEBUG_START", "COMMAND", "DECODE", "BANDS", "POSITIONS", "RENDER", "ERROR", "DEBUG_END"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, name := range want {
		if entries[i]["event"] != name {
			t.Errorf("entry %d: expected event %s, got %v", i, name, entries[i]["event"])
		}
		// JSON numbers decode as float64.
		if seq, _ := entries[i]["seq"].(float64); int(seq) != i+1 {
			t.Errorf("entry %d: expected seq %d, got %v", i, i+1, entries[i]["seq"])
		}
	}

	if entries[3]["count"] != float64(2) {
		t.Errorf("expected 2 bands, got %v", entries[3]["count"])
	}
	if entries[6]["error"] != "boom" {
		t.Errorf("expected error boom, got %v", entries[6]["error"])
	}
}

func TestDisabledLoggerIsSilent(t *testing.T) {
	if err := Init(false); err != nil {
		t.Fatalf("Init(false) error = %v", err)
	}
	if Enabled() {
		t.Fatal("expected logger to be disabled")
	}

	// Must not panic without a file.
	LogRender(1, 10)
	LogError("x", errors.New("y"))
	Close()
}
