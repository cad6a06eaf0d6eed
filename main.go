// blobterm runs the blob simulation in the current terminal.
//
//	go build -o blobterm .
//	./blobterm [--config blobterm.toml] [--backend ansi|tcell]
//
// Move with WASD, HJKL or the arrow keys; Ctrl-C quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"blobterm/internal/config"
	"blobterm/internal/game"
	"blobterm/internal/logging"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfgPath := flag.String("config", "", "Path to the TOML config (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	backend := flag.String("backend", "", "Terminal backend, overrides terminal.backend (ansi or tcell)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Terminal.Backend = *backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, restore, err := openTerminal(cfg, log)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, restore()) }()

	g, err := game.New(cfg, deps)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, g.Close()) }()

	log.Info("starting",
		zap.String("backend", cfg.Terminal.Backend),
		zap.Int("width", cfg.Canvas.Width),
		zap.Int("height", cfg.Canvas.Height),
		zap.Float64("tick_rate_hz", cfg.Loop.TickRateHz),
	)
	if err := g.Run(ctx); err != nil {
		log.Error("simulation stopped", zap.Error(err))
		return err
	}
	return nil
}
