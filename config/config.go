// Package config loads the runner configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
	VSync     bool   `toml:"vsync"`
}

type Config struct {
	Window Window `toml:"window"`

	// Program is the name of the scene to draw.
	Program string `toml:"program"`

	// ShaderDir, when set, loads shader sources from this directory instead of
	// the copies built into the binary.
	ShaderDir string `toml:"shader_dir"`

	// Watch reloads shaders when their sources change. Requires ShaderDir.
	Watch bool `toml:"watch"`

	ClearColour   [4]float32 `toml:"clear_colour"`
	ScreenshotDir string     `toml:"screenshot_dir"`
	LogLevel      string     `toml:"log_level"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "LearnOpenGL",
			Resizable: true,
			VSync:     true,
		},
		Program:       "colors",
		ClearColour:   [4]float32{0.2, 0.3, 0.3, 1.0},
		ScreenshotDir: ".",
		LogLevel:      "info",
	}
}

// Load reads the file at path over the defaults. An empty path returns the
// defaults. The result isn't validated, since flags may still complete it;
// call Validate once every override is applied.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every setting that can't be run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Program == "" {
		errs = append(errs, errors.New("program must be set"))
	}
	if c.Watch && c.ShaderDir == "" {
		errs = append(errs, errors.New("watch requires shader_dir"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
