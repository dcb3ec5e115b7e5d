package engine

import "fmt"

const (
	// Validation constants for puzzle data
	MinBoardSide = 1
	MaxBoardSide = 64
	MaxWordSize  = 64
)

// Coordinate addresses a single board square by column (X) and row (Y)
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is shorthand for Coordinate{X: x, Y: y}
func C(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// IsNeighbourOf reports whether o is directly above, below, left or right of c.
// Diagonals and identical coordinates are not neighbours.
func (c Coordinate) IsNeighbourOf(o Coordinate) bool {
	dx := abs(c.X - o.X)
	dy := abs(c.Y - o.Y)

	return (c.Y == o.Y && dx == 1) || (c.X == o.X && dy == 1)
}

// Less orders coordinates top-to-bottom, then left-to-right
func (c Coordinate) Less(o Coordinate) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Compare is the three-way form of Less, usable with slices.SortFunc
func (c Coordinate) Compare(o Coordinate) int {
	switch {
	case c.Less(o):
		return -1
	case o.Less(c):
		return 1
	}
	return 0
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
