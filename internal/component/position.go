package component

// Position is a grid coordinate. It is never clamped: the canvas resolves
// out-of-range values with wrap-around when drawing.
type Position struct {
	X, Y int
}

// Add returns the position moved by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
