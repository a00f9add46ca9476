package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kolybasov/day-schedule-wasm/internal/config"
	"github.com/kolybasov/day-schedule-wasm/internal/db"
	"github.com/kolybasov/day-schedule-wasm/internal/event"
)

const dayJSON = `[
  {"starts_at": 0, "duration": 60, "title": "Standup"},
  {"starts_at": 30, "duration": 60, "title": "Review", "location": "Room 2"}
]`

type testEnv struct {
	t    *testing.T
	dir  string
	repo *db.SQLite
	cfg  *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "events.db")

	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	return &testEnv{t: t, dir: dir, repo: repo, cfg: cfg}
}

// run executes one command on a fresh App sharing the test repository.
func (e *testEnv) run(stdin string, args ...string) (string, string, error) {
	e.t.Helper()

	app := NewApp(e.repo, e.cfg)
	app.now = func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) }

	var stdout, stderr bytes.Buffer
	app.root.SetOut(&stdout)
	app.root.SetErr(&stderr)
	app.root.SetIn(strings.NewReader(stdin))
	app.root.SetArgs(append(args, "--no-color"))

	err := app.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, _, err := e.run("", args...)
	if err != nil {
		e.t.Fatalf("%s: unexpected error: %v", strings.Join(args, " "), err)
	}
	return out
}

func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestRender_JSONFileToStdout(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("day.json", dayJSON)

	out := env.mustRun("render", path)

	if !strings.HasPrefix(out, "<svg ") {
		t.Fatalf("expected svg output, got %q", out)
	}
	for _, want := range []string{"Standup", "Review/Room 2", `clip-path="url(#clip-path-1)"`, "9 AM"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRender_StdinYAML(t *testing.T) {
	env := newTestEnv(t)
	yamlDay := "- starts_at: 60\n  duration: 30\n  location: Cafe\n"

	out, _, err := env.run(yamlDay, "render", "-", "--format=yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Cafe") {
		t.Errorf("expected location in output, got %q", out)
	}
}

func TestRender_WritesOutputFile(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("day.json", dayJSON)
	output := filepath.Join(env.dir, "day.svg")

	stdout, stderr, err := env.run("", "render", path, "-o", output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Wrote 2 events to "+output) {
		t.Errorf("unexpected stderr %q", stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg ") {
		t.Errorf("expected svg file, got %q", data)
	}
}

func TestRender_InvalidEvents(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("bad.json", `[{"starts_at": 0, "duration": 0}]`)

	_, _, err := env.run("", "render", path)
	if !errors.Is(err, event.ErrInvalidLayoutInput) {
		t.Errorf("expected ErrInvalidLayoutInput, got %v", err)
	}
}

func TestRender_UnknownTheme(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("day.json", dayJSON)

	if _, _, err := env.run("", "render", path, "--theme=neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestRender_ThemeColours(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("day.json", dayJSON)

	classic := env.mustRun("render", path)
	mocha := env.mustRun("render", path, "--theme=mocha")

	if !strings.Contains(classic, "#45a51c") {
		t.Error("expected classic event colour")
	}
	if classic == mocha {
		t.Error("expected themes to change the output")
	}
}

func TestAddListRemove(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("add", "Standup", "--date=2025-01-15", "--start=09:30", "--duration=30")
	if want := "Added event #1: 2025-01-15 9:30 AM – 10 AM Standup"; !strings.Contains(out, want) {
		t.Errorf("add output = %q, want %q", out, want)
	}
	env.mustRun("add", "Review", "--date=2025-01-15", "--start=09:45", "--duration=60", "--location=Room 2")
	env.mustRun("add", "--date=2025-01-16", "--start=11:00", "--location=Elsewhere")

	out = env.mustRun("list", "--date=2025-01-15")
	for _, want := range []string{"#1", "Standup", "[col 1/2]", "#2", "Review/Room 2", "[col 2/2]"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Elsewhere") {
		t.Error("list included an event from another day")
	}

	out = env.mustRun("remove", "1")
	if !strings.Contains(out, "Removed event #1") {
		t.Errorf("remove output = %q", out)
	}

	out = env.mustRun("list", "--date=2025-01-15")
	if strings.Contains(out, "Standup") || !strings.Contains(out, "[col 1/1]") {
		t.Errorf("unexpected list after remove:\n%s", out)
	}

	if _, _, err := env.run("", "remove", "99"); err == nil || !strings.Contains(err.Error(), "#99 not found") {
		t.Errorf("expected not found error, got %v", err)
	}

	out = env.mustRun("remove", "--date=2025-01-15")
	if !strings.Contains(out, "Removed 1 events from 2025-01-15") {
		t.Errorf("remove --date output = %q", out)
	}

	out = env.mustRun("list", "--date=2025-01-15")
	if !strings.Contains(out, "No events on 2025-01-15.") {
		t.Errorf("expected empty day, got %q", out)
	}
}

func TestAdd_DefaultsToToday(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("add", "--start=13:00", "--duration=45")
	if !strings.Contains(out, "2025-01-15 1 PM – 1:45 PM") {
		t.Errorf("unexpected add output %q", out)
	}
	if !strings.Contains(out, "(untitled)") {
		t.Errorf("expected untitled marker, got %q", out)
	}
}

func TestAdd_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "before grid start", args: []string{"add", "Early", "--start=08:00"}},
		{name: "bad clock", args: []string{"add", "Late", "--start=9am"}},
		{name: "zero duration", args: []string{"add", "Empty", "--start=10:00", "--duration=0"}},
		{name: "bad date", args: []string{"add", "Someday", "--start=10:00", "--date=someday"}},
		{name: "missing start", args: []string{"add", "Floating"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := env.run("", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRemove_NeedsIDsOrDate(t *testing.T) {
	env := newTestEnv(t)

	if _, _, err := env.run("", "remove"); err == nil {
		t.Error("expected error without ids or --date")
	}
	if _, _, err := env.run("", "remove", "1", "--date=today"); err == nil {
		t.Error("expected error with both ids and --date")
	}
	if _, _, err := env.run("", "remove", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestImportAndRenderStored(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("day.json", dayJSON)

	out := env.mustRun("import", path, "--date=2025-01-15")
	if !strings.Contains(out, "Imported 2 events into 2025-01-15") {
		t.Errorf("import output = %q", out)
	}

	out = env.mustRun("import", path, "--date=2025-01-15", "--replace")
	if !strings.Contains(out, "Replaced 2 existing events") {
		t.Errorf("import --replace output = %q", out)
	}

	entries, err := env.repo.ListEventsByDate(context.Background(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListEventsByDate() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 stored events, got %d", len(entries))
	}

	fromFile := env.mustRun("render", path)
	fromStore := env.mustRun("render", "--date=2025-01-15")
	if fromFile != fromStore {
		t.Error("rendering the stored day should match rendering the file")
	}
}

func TestImport_RejectsInvalidWithoutClearing(t *testing.T) {
	env := newTestEnv(t)
	good := env.writeFile("day.json", dayJSON)
	bad := env.writeFile("bad.json", `[{"starts_at": -5, "duration": 30}]`)

	env.mustRun("import", good, "--date=2025-01-15")
	if _, _, err := env.run("", "import", bad, "--date=2025-01-15", "--replace"); err == nil {
		t.Fatal("expected error for invalid import")
	}

	out := env.mustRun("list", "--date=2025-01-15")
	if !strings.Contains(out, "Standup") {
		t.Errorf("existing events should survive a failed import:\n%s", out)
	}
}

func TestShow_File(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("day.json", dayJSON)

	out := env.mustRun("show", path, "--width=60")
	for _, want := range []string{"Wednesday, January 15, 2025", "9 AM", "Standup", "Review/Room 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShow_EmptyStoredDay(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("show", "--date=tomorrow")
	if !strings.Contains(out, "Thursday, January 16, 2025") || !strings.Contains(out, "No events.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestShow_RejectsBadSlot(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeFile("day.json", dayJSON)

	if _, _, err := env.run("", "show", path, "--slot=7"); err == nil {
		t.Error("expected error for slot that does not divide an hour")
	}
}

func TestConfig_Show(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "config.toml")

	out := env.mustRun("config", "--show", "--path", path)
	for _, want := range []string{"[grid]", "width      = 600", "hour_marks = 13", "theme      = classic"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestConfig_InteractiveEdit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "config.toml")

	// Accept edits, change width and theme, keep everything else.
	input := "y\n800\n\n\n\n\n\nmocha\n"
	if _, _, err := env.run(input, "config", "--path", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Grid.Width != 800 {
		t.Errorf("Width = %d, want 800", cfg.Grid.Width)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("Theme = %q, want mocha", cfg.UI.Theme)
	}
	if cfg.Grid.HourMarks != 13 {
		t.Errorf("HourMarks = %d, want 13", cfg.Grid.HourMarks)
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("version")
	if !strings.HasPrefix(out, "dayview dev") {
		t.Errorf("unexpected version output %q", out)
	}
}
