package component

import (
	"blobterm/internal/canvas"
	"blobterm/internal/ecs"
)

const CBlob ecs.ComponentType = 1

// Blob is a renderable point: where it is and what it looks like.
type Blob struct {
	Pos  Position
	Cell canvas.Cell
}

func (Blob) Type() ecs.ComponentType { return CBlob }
