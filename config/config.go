// Package config loads viewer and host settings from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds file-level settings.
type Config struct {
	// Style names the chroma style used for highlighting.
	Style string `yaml:"style"`

	// TabWidth is the tab stop interval of the grid buffer.
	TabWidth int `yaml:"tab_width"`

	// Scrollback is the number of lines kept above the viewport.
	// -1 keeps every line.
	Scrollback int `yaml:"scrollback"`

	// MessageBuffer sizes the host message queue.
	MessageBuffer int `yaml:"message_buffer"`

	// TickRate drives host ticks. Zero disables them.
	TickRate Duration `yaml:"tick_rate"`

	// FollowInterval enables reloading the viewed file when it changes.
	// Zero disables following.
	FollowInterval Duration `yaml:"follow_interval"`

	// Palette overrides colours by index (0-255). Values are colour names
	// or #rrggbb.
	Palette map[int]string `yaml:"palette"`

	// LogFile receives debug output when set. The screen owns stdout.
	LogFile string `yaml:"log_file"`

	// LogLevel is a slog level name.
	LogLevel string `yaml:"log_level"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// UnmarshalYAML parses strings such as "500ms".
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Style:         "monokai",
		TabWidth:      8,
		Scrollback:    -1,
		MessageBuffer: 128,
		LogLevel:      "info",
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("%w: tab_width must be positive, got %d", ErrInvalid, c.TabWidth)
	}
	if c.Scrollback < -1 {
		return fmt.Errorf("%w: scrollback must be -1 or more, got %d", ErrInvalid, c.Scrollback)
	}
	if c.MessageBuffer < 0 {
		return fmt.Errorf("%w: message_buffer must not be negative, got %d", ErrInvalid, c.MessageBuffer)
	}
	if c.TickRate < 0 {
		return fmt.Errorf("%w: tick_rate must not be negative", ErrInvalid)
	}
	if c.FollowInterval < 0 {
		return fmt.Errorf("%w: follow_interval must not be negative", ErrInvalid)
	}
	for idx, colour := range c.Palette {
		if idx < 0 || idx > 255 {
			return fmt.Errorf("%w: palette index %d out of range", ErrInvalid, idx)
		}
		if colour == "" {
			return fmt.Errorf("%w: palette index %d has no colour", ErrInvalid, idx)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return level, nil
}
