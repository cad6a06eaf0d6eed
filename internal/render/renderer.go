// Package render turns the world's blobs into a frame every tick:
// clear, then composite, then display.
package render

import (
	"fmt"

	"blobterm/internal/canvas"
	"blobterm/internal/component"
	"blobterm/internal/ecs"
	"blobterm/internal/schedule"
)

// Renderer owns the canvas and presents it through a Display.
type Renderer struct {
	canvas  *canvas.Canvas
	world   *ecs.World
	display Display
}

// NewRenderer creates a Renderer drawing world's blobs onto c.
func NewRenderer(world *ecs.World, c *canvas.Canvas, display Display) *Renderer {
	return &Renderer{canvas: c, world: world, display: display}
}

// Canvas returns the frame buffer.
func (r *Renderer) Canvas() *canvas.Canvas { return r.canvas }

// Clear resets the frame to background.
func (r *Renderer) Clear() { r.canvas.Clear() }

// Composite draws every blob, the player's included, at its wrapped
// position. Blobs sharing a cell resolve by query order: the later one wins.
func (r *Renderer) Composite() {
	for _, b := range ecs.Query[component.Blob](r.world) {
		r.canvas.Write(b.Pos.X, b.Pos.Y, b.Cell)
	}
}

// Display presents the frame, changed or not.
func (r *Renderer) Display() error {
	if err := r.display.Present(r.canvas); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Systems returns the three render systems for the scheduler.
func (r *Renderer) Systems() []schedule.System {
	return []schedule.System{
		schedule.Func("clear-screen", schedule.PhaseClear, func(schedule.Tick) error {
			r.Clear()
			return nil
		}),
		schedule.Func("render-blobs", schedule.PhaseComposite, func(schedule.Tick) error {
			r.Composite()
			return nil
		}),
		schedule.Func("display-screen", schedule.PhaseDisplay, func(schedule.Tick) error {
			return r.Display()
		}),
	}
}
