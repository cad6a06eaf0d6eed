package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blobterm.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[canvas]
canvas_width = 40
canvas_height = 12

[loop]
tick_rate_hz = 30.0

[input]
retry_base = "5ms"
retry_cap = "250ms"

[terminal]
backend = "tcell"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 40 || cfg.Canvas.Height != 12 {
		t.Fatalf("canvas = %dx%d, want 40x12", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Loop.TickRateHz != 30 {
		t.Fatalf("tick rate = %v, want 30", cfg.Loop.TickRateHz)
	}
	if cfg.Input.RetryBase != 5*time.Millisecond || cfg.Input.RetryCap != 250*time.Millisecond {
		t.Fatalf("retry = %s/%s", cfg.Input.RetryBase, cfg.Input.RetryCap)
	}
	if cfg.Terminal.Backend != BackendTcell {
		t.Fatalf("backend = %q", cfg.Terminal.Backend)
	}
	// Untouched keys keep their defaults.
	if cfg.Canvas.CellColumns != 1 || cfg.Input.QueueSize != 64 || cfg.World.Decoys != 9 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 20 || cfg.Canvas.Height != 8 || cfg.Loop.TickRateHz != 10 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing explicit config")
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[world]\ndecoys = 3\n")
	t.Setenv(EnvPath, path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Decoys != 3 {
		t.Fatalf("decoys = %d, want 3", cfg.World.Decoys)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, "[canvas\ncanvas_width = ")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadRejectsInfiniteTickRate(t *testing.T) {
	path := writeConfig(t, "[loop]\ntick_rate_hz = inf\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "tick_rate_hz") {
		t.Fatalf("expected tick_rate_hz error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, "canvas_width"},
		{"negative height", func(c *Config) { c.Canvas.Height = -2 }, "canvas_height"},
		{"three columns", func(c *Config) { c.Canvas.CellColumns = 3 }, "cell_columns"},
		{"zero tick rate", func(c *Config) { c.Loop.TickRateHz = 0 }, "tick_rate_hz"},
		{"infinite tick rate", func(c *Config) { c.Loop.TickRateHz = math.Inf(1) }, "tick_rate_hz"},
		{"sub-nanosecond tick", func(c *Config) { c.Loop.TickRateHz = 2e9 }, "tick_rate_hz"},
		{"empty queue", func(c *Config) { c.Input.QueueSize = 0 }, "queue_size"},
		{"cap below base", func(c *Config) { c.Input.RetryCap = time.Millisecond }, "retry_cap"},
		{"unknown backend", func(c *Config) { c.Terminal.Backend = "sdl" }, "terminal.backend"},
		{"unknown keys", func(c *Config) { c.Terminal.Keys = "both" }, "terminal.keys"},
		{"negative decoys", func(c *Config) { c.World.Decoys = -1 }, "decoys"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected error naming %s, got %v", tc.field, err)
			}
		})
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
