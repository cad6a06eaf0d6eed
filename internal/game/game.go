// Package game wires the world, the input sources, the renderer and the
// scheduler into one running simulation.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"blobterm/internal/canvas"
	"blobterm/internal/component"
	"blobterm/internal/config"
	"blobterm/internal/data"
	"blobterm/internal/ecs"
	"blobterm/internal/factory"
	"blobterm/internal/input"
	"blobterm/internal/render"
	"blobterm/internal/schedule"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Deps are the collaborators a Game does not own the lifetime of.
// Keys and Devices may be nil; Log and Rand get defaults when nil.
type Deps struct {
	Keys    input.KeyReader
	Devices input.DeviceSource
	Display render.Display
	Log     *zap.Logger
	Rand    *rand.Rand
}

// Game is the top-level orchestrator.
type Game struct {
	cfg      *config.Config
	deps     Deps
	log      *zap.Logger
	world    *ecs.World
	canvas   *canvas.Canvas
	renderer *render.Renderer
	sched    *schedule.Scheduler
	layout   *data.Layout
	bridge   *input.Bridge
	buttons  *input.ButtonState

	cancel context.CancelFunc
	quit   bool
	runLog RunLog
}

// New builds a game from cfg. Nothing is spawned and no input is read until
// the first Step or Run.
func New(cfg *config.Config, deps Deps) (*Game, error) {
	if deps.Display == nil {
		return nil, errors.New("game: no display")
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Devices == nil {
		deps.Devices = input.NoDevices{}
	}
	if deps.Rand == nil {
		seed := cfg.World.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		deps.Rand = rand.New(rand.NewSource(seed))
	}

	layout := data.DefaultLayout(cfg.World.Decoys)
	if cfg.World.Layout != "" {
		l, err := data.LoadLayout(cfg.World.Layout)
		if err != nil {
			return nil, err
		}
		layout = l
	}

	g := &Game{
		cfg:     cfg,
		deps:    deps,
		log:     deps.Log,
		world:   ecs.NewWorld(),
		canvas:  canvas.New(cfg.Canvas.Width, cfg.Canvas.Height),
		layout:  layout,
		buttons: input.NewButtonState(),
	}
	g.renderer = render.NewRenderer(g.world, g.canvas, deps.Display)
	g.sched = schedule.NewScheduler(cfg.Loop.TickRateHz, g.log)

	g.sched.AddStartup("spawn", g.spawn)
	g.sched.AddStartup("input-bridge", g.startBridge)

	g.sched.Add(schedule.Func("device-events", schedule.PhaseInput, g.deviceEvents))
	g.sched.Add(schedule.Func("console-input", schedule.PhaseInput, g.consoleInput))
	g.sched.Add(schedule.Func("keyboard-input", schedule.PhaseInput, g.keyboardInput))
	for _, sys := range g.renderer.Systems() {
		g.sched.Add(sys)
	}
	return g, nil
}

// Run ticks until ctx is cancelled, an Interrupt key arrives or a system
// fails. Only a system failure is returned as an error.
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.cancel = cancel
	g.runLog.Started = time.Now()
	return g.sched.Run(ctx)
}

// Step runs a single tick without waiting for the period.
func (g *Game) Step() error {
	if g.runLog.Started.IsZero() {
		g.runLog.Started = time.Now()
	}
	return g.sched.Step()
}

// Player returns the position of the first player-tagged blob.
func (g *Game) Player() (component.Position, bool) {
	_, blob, ok := ecs.First[component.Blob](g.world, component.CTagPlayer)
	if !ok {
		return component.Position{}, false
	}
	return blob.Pos, true
}

// QuitRequested reports whether an Interrupt key has been consumed.
func (g *Game) QuitRequested() bool { return g.quit }

func (g *Game) Canvas() *canvas.Canvas { return g.canvas }
func (g *Game) World() *ecs.World      { return g.world }

// Close stops the key bridge and closes the display if it can be closed.
// The key reader itself belongs to the caller.
func (g *Game) Close() error {
	var err error
	if g.bridge != nil {
		g.bridge.Close()
	}
	if c, ok := g.deps.Display.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}
	g.runLog.Ticks = g.sched.Ticks()
	g.log.Info("run finished", g.runLog.Fields()...)
	return err
}

func (g *Game) spawn() error {
	player, err := factory.SpawnLayout(g.world, g.layout, g.canvas.Width(), g.canvas.Height(), g.deps.Rand)
	if err != nil {
		return fmt.Errorf("spawn layout: %w", err)
	}
	g.log.Info("world spawned",
		zap.Uint64("player", uint64(player)),
		zap.Int("blobs", ecs.Count[component.Blob](g.world)),
		zap.Int("width", g.canvas.Width()),
		zap.Int("height", g.canvas.Height()),
	)
	return nil
}

func (g *Game) startBridge() error {
	if g.deps.Keys == nil {
		g.log.Debug("no key reader; keyboard input disabled")
		return nil
	}
	g.bridge = input.NewBridge(g.deps.Keys, input.BridgeOptions{
		QueueSize: g.cfg.Input.QueueSize,
		RetryBase: g.cfg.Input.RetryBase,
		RetryCap:  g.cfg.Input.RetryCap,
	}, g.log.Named("keys"))
	return nil
}

// requestQuit stops Run at its next tick boundary.
func (g *Game) requestQuit() {
	g.quit = true
	if g.cancel != nil {
		g.cancel()
	}
}

// movePlayer shifts the first player-tagged blob. With no player it does
// nothing.
func (g *Game) movePlayer(dx, dy int) {
	_, blob, ok := ecs.First[component.Blob](g.world, component.CTagPlayer)
	if !ok {
		return
	}
	blob.Pos = blob.Pos.Add(dx, dy)
	g.runLog.Moves++
	g.log.Debug("player moved", zap.Int("x", blob.Pos.X), zap.Int("y", blob.Pos.Y))
}
