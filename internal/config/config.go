// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kolybasov/day-schedule-wasm/internal/dayview"
	"github.com/kolybasov/day-schedule-wasm/internal/theme"
)

// Config holds the application configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// GridConfig holds the canvas geometry.
type GridConfig struct {
	Width     int `toml:"width"`      // canvas width in pixels
	Height    int `toml:"height"`     // canvas height in pixels
	StartHour int `toml:"start_hour"` // first displayed hour, 0-23
	HourMarks int `toml:"hour_marks"` // hour labels including both ends
	Padding   int `toml:"padding"`    // horizontal inset of the events
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds output settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "classic", "mocha", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:     dayview.DefaultWidth,
			Height:    dayview.DefaultHeight,
			StartHour: dayview.DefaultStartHour,
			HourMarks: dayview.DefaultHourMarks,
			Padding:   dayview.DefaultPadding,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: theme.DefaultName,
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dayview.db"
	}
	return filepath.Join(home, ".local", "share", "dayview", "dayview.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "dayview", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies DAYVIEW_* variables on top of the file config.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"DAYVIEW_WIDTH", &cfg.Grid.Width},
		{"DAYVIEW_HEIGHT", &cfg.Grid.Height},
		{"DAYVIEW_START_HOUR", &cfg.Grid.StartHour},
		{"DAYVIEW_HOUR_MARKS", &cfg.Grid.HourMarks},
		{"DAYVIEW_PADDING", &cfg.Grid.Padding},
	}
	for _, o := range ints {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.key, v)
		}
		*o.dst = n
	}

	if v := os.Getenv("DAYVIEW_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAYVIEW_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.RenderOptions(dayview.DefaultColors()).Validate(); err != nil {
		return err
	}
	if c.Grid.StartHour*60+(c.Grid.HourMarks-1)*60 > 24*60 {
		return fmt.Errorf("grid from %02d:00 with %d hour marks runs past midnight",
			c.Grid.StartHour, c.Grid.HourMarks)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme %q, available: %s",
			c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	return nil
}

// RenderOptions converts the grid settings into renderer options.
func (c *Config) RenderOptions(colors dayview.Colors) dayview.Options {
	return dayview.Options{
		Width:     c.Grid.Width,
		Height:    c.Grid.Height,
		StartHour: c.Grid.StartHour,
		HourMarks: c.Grid.HourMarks,
		Padding:   c.Grid.Padding,
		Colors:    colors,
	}
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
