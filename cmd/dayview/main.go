package main

import (
	"fmt"
	"os"

	"github.com/kolybasov/day-schedule-wasm/internal/config"
	"github.com/kolybasov/day-schedule-wasm/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The event store is opened on first use, so render and show work
	// without a database.
	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
