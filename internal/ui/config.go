package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolybasov/day-schedule-wasm/internal/config"
	"github.com/kolybasov/day-schedule-wasm/internal/theme"
)

func (a *App) configCmd() *cobra.Command {
	var (
		path string
		show bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  dayview config
  dayview config --show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if show {
				cfg, err := config.LoadFrom(path)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				printConfig(cmd.OutOrStdout(), cfg)
				return nil
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Config file (default: "+config.DefaultConfigPath()+")")
	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration and exit")

	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, path string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", path)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(path)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", path)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Grid.Width = promptInt(reader, out, "Canvas width", cfg.Grid.Width)
	cfg.Grid.Height = promptInt(reader, out, "Canvas height", cfg.Grid.Height)
	cfg.Grid.StartHour = promptInt(reader, out, "First hour (0-23)", cfg.Grid.StartHour)
	cfg.Grid.HourMarks = promptInt(reader, out, "Hour marks", cfg.Grid.HourMarks)
	cfg.Grid.Padding = promptInt(reader, out, "Padding", cfg.Grid.Padding)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[grid]")
	fmt.Fprintf(out, "  width      = %d\n", cfg.Grid.Width)
	fmt.Fprintf(out, "  height     = %d\n", cfg.Grid.Height)
	fmt.Fprintf(out, "  start_hour = %d\n", cfg.Grid.StartHour)
	fmt.Fprintf(out, "  hour_marks = %d\n", cfg.Grid.HourMarks)
	fmt.Fprintf(out, "  padding    = %d\n", cfg.Grid.Padding)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path    = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme      = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("Theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
