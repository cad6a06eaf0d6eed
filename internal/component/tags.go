package component

import "blobterm/internal/ecs"

const (
	CTagPlayer ecs.ComponentType = 8
)

// TagPlayer marks the input-controlled blob. Input systems act on the first
// match only, so zero or several tagged entities are tolerated.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }
