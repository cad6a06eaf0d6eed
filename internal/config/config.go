package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when no path is given and BLOBTERM_CONFIG is unset.
const DefaultPath = "blobterm.toml"

// EnvPath names the environment variable overriding the config path.
const EnvPath = "BLOBTERM_CONFIG"

type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Loop     LoopConfig     `toml:"loop"`
	Input    InputConfig    `toml:"input"`
	Terminal TerminalConfig `toml:"terminal"`
	World    WorldConfig    `toml:"world"`
	Logging  LoggingConfig  `toml:"logging"`
	Server   ServerConfig   `toml:"server"`
}

type CanvasConfig struct {
	Width       int `toml:"canvas_width"`
	Height      int `toml:"canvas_height"`
	CellColumns int `toml:"cell_columns"` // terminal columns per cell (1 or 2)
}

type LoopConfig struct {
	TickRateHz float64 `toml:"tick_rate_hz"`
}

type InputConfig struct {
	QueueSize int           `toml:"queue_size"`
	RetryBase time.Duration `toml:"retry_base"`
	RetryCap  time.Duration `toml:"retry_cap"`
}

type TerminalConfig struct {
	Backend string `toml:"backend"` // "ansi" or "tcell"
	Keys    string `toml:"keys"`    // "bridge" or "buttons" (tcell only)
	Mouse   bool   `toml:"mouse"`
}

type WorldConfig struct {
	Decoys int    `toml:"decoys"`
	Seed   int64  `toml:"seed"`   // 0 = seed from the clock
	Layout string `toml:"layout"` // YAML spawn layout; empty = built in
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // path, "stderr" or "stdout"
}

type ServerConfig struct {
	Addr    string `toml:"addr"`
	HostKey string `toml:"host_key"`
}

const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"

	KeysBridge  = "bridge"
	KeysButtons = "buttons"
)

// Load reads the TOML file at path over the defaults. An empty path uses
// BLOBTERM_CONFIG, then DefaultPath; only an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvPath); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath
		}
	}

	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !explicit && errors.Is(err, os.ErrNotExist):
		// No config file: run on defaults.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file overrides it.
func Defaults() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:       20,
			Height:      8,
			CellColumns: 1,
		},
		Loop: LoopConfig{
			TickRateHz: 10,
		},
		Input: InputConfig{
			QueueSize: 64,
			RetryBase: 10 * time.Millisecond,
			RetryCap:  time.Second,
		},
		Terminal: TerminalConfig{
			Backend: BackendANSI,
			Keys:    KeysBridge,
			Mouse:   true,
		},
		World: WorldConfig{
			Decoys: 9,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "blobterm.log",
		},
		Server: ServerConfig{
			Addr:    ":2222",
			HostKey: "server_host_key",
		},
	}
}

// Validate reports the first setting outside its allowed range.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0:
		return fmt.Errorf("canvas.canvas_width must be positive, got %d", c.Canvas.Width)
	case c.Canvas.Height <= 0:
		return fmt.Errorf("canvas.canvas_height must be positive, got %d", c.Canvas.Height)
	case c.Canvas.CellColumns != 1 && c.Canvas.CellColumns != 2:
		return fmt.Errorf("canvas.cell_columns must be 1 or 2, got %d", c.Canvas.CellColumns)
	case !(c.Loop.TickRateHz > 0):
		return fmt.Errorf("loop.tick_rate_hz must be positive, got %v", c.Loop.TickRateHz)
	case math.IsInf(c.Loop.TickRateHz, 0) || time.Duration(float64(time.Second)/c.Loop.TickRateHz) <= 0:
		return fmt.Errorf("loop.tick_rate_hz %v is too high for a nanosecond tick period", c.Loop.TickRateHz)
	case c.Input.QueueSize <= 0:
		return fmt.Errorf("input.queue_size must be positive, got %d", c.Input.QueueSize)
	case c.Input.RetryBase <= 0:
		return fmt.Errorf("input.retry_base must be positive, got %s", c.Input.RetryBase)
	case c.Input.RetryCap < c.Input.RetryBase:
		return fmt.Errorf("input.retry_cap %s is below retry_base %s", c.Input.RetryCap, c.Input.RetryBase)
	case c.Terminal.Backend != BackendANSI && c.Terminal.Backend != BackendTcell:
		return fmt.Errorf("terminal.backend must be %q or %q, got %q", BackendANSI, BackendTcell, c.Terminal.Backend)
	case c.Terminal.Keys != KeysBridge && c.Terminal.Keys != KeysButtons:
		return fmt.Errorf("terminal.keys must be %q or %q, got %q", KeysBridge, KeysButtons, c.Terminal.Keys)
	case c.World.Decoys < 0:
		return fmt.Errorf("world.decoys must not be negative, got %d", c.World.Decoys)
	}
	return nil
}
