package engine

// Direction names accepted by Step
const (
	Up    = "up"
	Down  = "down"
	Left  = "left"
	Right = "right"
)

// Step moves c one square in direction. Unknown directions leave c unchanged
// and report false.
func Step(c Coordinate, direction string) (Coordinate, bool) {
	switch direction {
	case Up:
		c.Y--
	case Down:
		c.Y++
	case Left:
		c.X--
	case Right:
		c.X++
	default:
		return c, false
	}
	return c, true
}

// MoveWithin steps c in direction but stays on b: a step that would leave
// the board is ignored.
func (b *Board) MoveWithin(c Coordinate, direction string) Coordinate {
	next, ok := Step(c, direction)
	if !ok || !b.Contains(next) {
		return c
	}
	return next
}
