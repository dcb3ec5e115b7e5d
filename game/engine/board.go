package engine

import "fmt"

// Board is an immutable rectangular grid of letters
type Board struct {
	width  int
	height int
	cells  []rune
}

// NewBoard lays contents out row by row, width letters per row.
// It panics if width is not positive or contents does not fill a whole
// number of rows; callers are expected to validate puzzle data first.
func NewBoard(width int, contents string) *Board {
	if width <= 0 {
		panic(fmt.Sprintf("engine: board width must be positive, got %d", width))
	}

	cells := []rune(contents)
	if len(cells)%width != 0 {
		panic(fmt.Sprintf("engine: board of %d letters is not a multiple of width %d", len(cells), width))
	}

	return &Board{
		width:  width,
		height: len(cells) / width,
		cells:  cells,
	}
}

// Width returns the number of columns
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows
func (b *Board) Height() int {
	return b.height
}

// Size returns the number of squares on the board
func (b *Board) Size() int {
	return len(b.cells)
}

// Contains reports whether c lies on the board
func (b *Board) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// Get returns the letter at c. It panics if c is off the board.
func (b *Board) Get(c Coordinate) rune {
	if !b.Contains(c) {
		panic(fmt.Sprintf("engine: square %s outside %dx%d board", c, b.width, b.height))
	}
	return b.cells[c.Y*b.width+c.X]
}

// Rows returns the board as one string per row
func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = string(b.cells[y*b.width : (y+1)*b.width])
	}
	return rows
}

// All returns every coordinate on the board in reading order
func (b *Board) All() []Coordinate {
	all := make([]Coordinate, 0, len(b.cells))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			all = append(all, Coordinate{X: x, Y: y})
		}
	}
	return all
}
