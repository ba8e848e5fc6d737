package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultKeepsAllScrollback(t *testing.T) {
	if Default().Scrollback != -1 {
		t.Fatalf("default scrollback = %d, want -1", Default().Scrollback)
	}
	cfg, err := Parse([]byte("scrollback: -1"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scrollback != -1 {
		t.Fatalf("scrollback = %d", cfg.Scrollback)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
style: dracula
tab_width: 4
scrollback: 50
follow_interval: 750ms
tick_rate: 1s
log_level: debug
palette:
  1: "#ff5555"
  12: blue
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Style != "dracula" || cfg.TabWidth != 4 || cfg.Scrollback != 50 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.MessageBuffer != 128 {
		t.Fatalf("message buffer default lost: %d", cfg.MessageBuffer)
	}
	if time.Duration(cfg.FollowInterval) != 750*time.Millisecond {
		t.Fatalf("follow interval = %v", time.Duration(cfg.FollowInterval))
	}
	if time.Duration(cfg.TickRate) != time.Second {
		t.Fatalf("tick rate = %v", time.Duration(cfg.TickRate))
	}
	if cfg.Palette[1] != "#ff5555" || cfg.Palette[12] != "blue" {
		t.Fatalf("palette = %v", cfg.Palette)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Fatalf("level = %v", level)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []string{
		"tab_width: 0",
		"scrollback: -2",
		"message_buffer: -2",
		"palette: {300: red}",
		"palette: {3: \"\"}",
		"log_level: loud",
		"tick_rate: -1s",
	}
	for _, data := range tests {
		_, err := Parse([]byte(data))
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("Parse(%q) err = %v, want ErrInvalid", data, err)
		}
	}
}

func TestParseBadDuration(t *testing.T) {
	_, err := Parse([]byte("follow_interval: soon"))
	if err == nil {
		t.Fatal("expected duration error")
	}
}

func TestDurationRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(struct {
		D Duration `yaml:"d"`
	}{Duration(2 * time.Second)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "d: 2s\n" {
		t.Fatalf("yaml = %q", out)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furry.yaml")
	if err := os.WriteFile(path, []byte("style: github\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Style != "github" {
		t.Fatalf("style = %q", cfg.Style)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
}
