package main

import (
	"fmt"
	"os"

	"blobterm/internal/config"
	"blobterm/internal/console"
	"blobterm/internal/game"
	"blobterm/internal/input"
	"blobterm/internal/render"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// openTerminal prepares the keyboard and display for the configured backend.
// The returned restore func puts the terminal back the way it was.
func openTerminal(cfg *config.Config, log *zap.Logger) (game.Deps, func() error, error) {
	switch cfg.Terminal.Backend {
	case config.BackendTcell:
		return openScreen(cfg, log)
	default:
		return openConsole(cfg, log)
	}
}

// openConsole uses raw stdin for keys and ANSI sequences on stdout.
func openConsole(cfg *config.Config, log *zap.Logger) (game.Deps, func() error, error) {
	r, err := console.Open(os.Stdin)
	if err != nil {
		return game.Deps{}, nil, err
	}
	deps := game.Deps{
		Keys:    r,
		Devices: input.NoDevices{},
		Display: render.NewWriterDisplay(os.Stdout, cfg.Canvas.CellColumns),
		Log:     log,
	}
	return deps, func() error { return r.Restore(os.Stdout) }, nil
}

// openScreen takes over the terminal with tcell. Mouse buttons and
// connection changes arrive as device events.
func openScreen(cfg *config.Config, log *zap.Logger) (game.Deps, func() error, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return game.Deps{}, nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return game.Deps{}, nil, fmt.Errorf("init screen: %w", err)
	}
	return game.ScreenDeps(screen, cfg, log), func() error {
		screen.Fini()
		return nil
	}, nil
}
