package game

import (
	"blobterm/internal/config"
	"blobterm/internal/input"
	"blobterm/internal/render"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// ScreenDeps wires keys, device events and the display to an initialised
// tcell screen. Finalising the screen ends the key source.
func ScreenDeps(screen tcell.Screen, cfg *config.Config, log *zap.Logger) Deps {
	screen.HideCursor()
	if cfg.Terminal.Mouse {
		screen.EnableMouse()
	}
	devices := input.NewDeviceQueue()
	keys := input.NewScreenKeys(screen, devices)
	keys.KeysAsButtons = cfg.Terminal.Keys == config.KeysButtons
	return Deps{
		Keys:    keys,
		Devices: devices,
		Display: render.NewScreenDisplay(screen, cfg.Canvas.CellColumns),
		Log:     log,
	}
}
