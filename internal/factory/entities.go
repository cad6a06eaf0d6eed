package factory

import (
	"fmt"
	"math/rand"

	"blobterm/internal/canvas"
	"blobterm/internal/component"
	"blobterm/internal/data"
	"blobterm/internal/ecs"
)

// NewPlayer creates the input-controlled blob at (x, y).
func NewPlayer(w *ecs.World, x, y int, cell canvas.Cell) ecs.EntityID {
	return w.Spawn(
		component.Blob{Pos: component.Position{X: x, Y: y}, Cell: cell},
		component.TagPlayer{},
	)
}

// NewBlob creates a static blob at (x, y).
func NewBlob(w *ecs.World, x, y int, cell canvas.Cell) ecs.EntityID {
	return w.Spawn(component.Blob{Pos: component.Position{X: x, Y: y}, Cell: cell})
}

// SpawnLayout populates w from layout and returns the player entity.
// Random blobs land in [0, width-1) x [0, height-1), so the last column and
// row only ever hold fixed blobs or the player.
func SpawnLayout(w *ecs.World, layout *data.Layout, width, height int, rng *rand.Rand) (ecs.EntityID, error) {
	cell, err := layout.Player.Cell()
	if err != nil {
		return ecs.NilEntity, fmt.Errorf("player: %w", err)
	}
	player := NewPlayer(w, layout.Player.X, layout.Player.Y, cell)

	for i, b := range layout.Blobs {
		cell, err := b.Cell()
		if err != nil {
			return player, fmt.Errorf("blobs[%d]: %w", i, err)
		}
		NewBlob(w, b.X, b.Y, cell)
	}

	if layout.Random.Count == 0 {
		return player, nil
	}
	cell, err = layout.Random.Cell()
	if err != nil {
		return player, fmt.Errorf("random: %w", err)
	}
	xs, ys := max(width-1, 1), max(height-1, 1)
	for range layout.Random.Count {
		NewBlob(w, rng.Intn(xs), rng.Intn(ys), cell)
	}
	return player, nil
}
