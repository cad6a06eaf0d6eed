package game

import (
	"blobterm/internal/input"
	"blobterm/internal/schedule"

	"go.uber.org/zap"
)

// buttonMoves maps just-pressed buttons to player steps.
var buttonMoves = [...]struct {
	button input.Button
	dx, dy int
}{
	{"a", -1, 0},
	{"d", 1, 0},
	{"w", 0, -1},
	{"s", 0, 1},
	{"h", -1, 0},
	{"l", 1, 0},
	{"k", 0, -1},
	{"j", 0, 1},
	{"Left", -1, 0},
	{"Right", 1, 0},
	{"Up", 0, -1},
	{"Down", 0, 1},
}

// deviceEvents drains the device queue into the button state.
func (g *Game) deviceEvents(schedule.Tick) error {
	g.buttons.Begin()
	for _, ev := range g.deps.Devices.Poll() {
		g.runLog.DeviceEvents++
		switch ev.Kind {
		case input.DeviceConnected, input.DeviceDisconnected:
			g.log.Info("device "+ev.Kind.String(), zap.String("device", ev.Device))
		}
		g.buttons.Apply(ev)
	}
	return nil
}

// consoleInput takes at most one key from the bridge per tick.
func (g *Game) consoleInput(schedule.Tick) error {
	if g.bridge == nil {
		return nil
	}
	key, ok := g.bridge.TryTake()
	if !ok {
		return nil
	}
	g.runLog.KeysRead++
	if key.Code == input.KeyInterrupt {
		g.log.Info("interrupt key received; stopping")
		g.requestQuit()
		return nil
	}
	if dx, dy, ok := input.Movement(key); ok {
		g.movePlayer(dx, dy)
	}
	return nil
}

// keyboardInput moves the player for every movement button pressed this tick.
func (g *Game) keyboardInput(schedule.Tick) error {
	for _, m := range buttonMoves {
		if g.buttons.JustPressed(m.button) {
			g.movePlayer(m.dx, m.dy)
		}
	}
	return nil
}
