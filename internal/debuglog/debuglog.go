// Package debuglog writes a JSON-lines trace of the layout pipeline.
package debuglog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kolybasov/day-schedule-wasm/internal/band"
	"github.com/kolybasov/day-schedule-wasm/internal/position"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "dayview-debug.log"

// Logger appends one JSON object per line.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

var (
	stateMu sync.Mutex
	std     *Logger
)

// Init enables logging to DefaultPath when enabled is true.
func Init(enabled bool) error {
	if !enabled {
		setLogger(&Logger{})
		return nil
	}
	return InitAt(DefaultPath)
}

// InitAt enables logging to path, truncating any previous log.
func InitAt(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	l := &Logger{file: f, enabled: true}
	setLogger(l)

	l.log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// Close ends the trace and closes the log file.
func Close() {
	l := current()
	if l == nil || l.file == nil {
		return
	}
	l.log("DEBUG_END", map[string]any{
		"time": time.Now().Format(time.RFC3339),
	})

	l.mu.Lock()
	_ = l.file.Close()
	l.file = nil
	l.enabled = false
	l.mu.Unlock()
}

// Enabled reports whether entries are being written.
func Enabled() bool {
	l := current()
	return l != nil && l.enabled
}

func setLogger(l *Logger) {
	stateMu.Lock()
	defer stateMu.Unlock()
	std = l
}

func current() *Logger {
	stateMu.Lock()
	defer stateMu.Unlock()
	return std
}

func (l *Logger) log(event string, data map[string]any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || l.file == nil {
		return
	}

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.file, "%s\n", b)
}

// LogCommand logs the CLI command being run.
func LogCommand(name string, args []string) {
	current().log("COMMAND", map[string]any{
		"command": name,
		"args":    args,
	})
}

// LogDecode logs the events read from an input.
func LogDecode(source, format string, count, skipped int) {
	current().log("DECODE", map[string]any{
		"source":  source,
		"format":  format,
		"events":  count,
		"skipped": skipped,
	})
}

// LogBands logs the band sequence.
func LogBands(bands []band.Band) {
	rows := make([][]int, len(bands))
	for i, b := range bands {
		rows[i] = []int(b)
	}
	current().log("BANDS", map[string]any{
		"count": len(bands),
		"bands": rows,
	})
}

// LogPositions logs the placement of each event.
func LogPositions(positions []position.Position) {
	out := make([]map[string]any, 0, len(positions))
	for _, p := range positions {
		out = append(out, map[string]any{
			"id":     p.ID,
			"width":  p.WidthFraction,
			"offset": p.Offset,
		})
	}
	current().log("POSITIONS", map[string]any{
		"positions": out,
	})
}

// LogRender logs the size of the produced markup.
func LogRender(events, bytes int) {
	current().log("RENDER", map[string]any{
		"events": events,
		"bytes":  bytes,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	current().log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}
