package engine

import (
	"encoding/json"
	"slices"
	"testing"
)

func testBoard() *Board {
	return NewBoard(3, "ABC"+
		"DEF"+
		"GHI")
}

func TestIsNeighbourOf(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Coordinate
		expected bool
	}{
		{"right", C(1, 1), C(2, 1), true},
		{"left", C(1, 1), C(0, 1), true},
		{"above", C(1, 1), C(1, 0), true},
		{"below", C(1, 1), C(1, 2), true},
		{"identical", C(1, 1), C(1, 1), false},
		{"diagonal", C(0, 0), C(1, 1), false},
		{"two apart", C(0, 0), C(2, 0), false},
		{"far", C(0, 0), C(5, 7), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.a.IsNeighbourOf(test.b); got != test.expected {
				t.Errorf("%s.IsNeighbourOf(%s): expected %v, got %v", test.a, test.b, test.expected, got)
			}
			if got := test.b.IsNeighbourOf(test.a); got != test.expected {
				t.Errorf("%s.IsNeighbourOf(%s): expected %v, got %v", test.b, test.a, test.expected, got)
			}
		})
	}
}

func TestCoordinateOrdering(t *testing.T) {
	squares := []Coordinate{C(2, 1), C(0, 2), C(1, 0), C(0, 1), C(0, 0)}
	slices.SortFunc(squares, Coordinate.Compare)

	expected := []Coordinate{C(0, 0), C(1, 0), C(0, 1), C(2, 1), C(0, 2)}
	if !slices.Equal(squares, expected) {
		t.Errorf("Expected %v, got %v", expected, squares)
	}
}

func TestCoordinateJSONMarshaling(t *testing.T) {
	data, err := json.Marshal(C(10, 25))
	if err != nil {
		t.Fatalf("Failed to marshal coordinate: %v", err)
	}
	if string(data) != `{"x":10,"y":25}` {
		t.Errorf("Unexpected JSON: %s", data)
	}
}

func TestNewBoard(t *testing.T) {
	board := testBoard()

	if board.Width() != 3 || board.Height() != 3 {
		t.Fatalf("Expected 3x3 board, got %dx%d", board.Width(), board.Height())
	}

	tests := []struct {
		square   Coordinate
		expected rune
	}{
		{C(0, 0), 'A'},
		{C(2, 0), 'C'},
		{C(0, 1), 'D'},
		{C(1, 1), 'E'},
		{C(2, 2), 'I'},
	}
	for _, test := range tests {
		if got := board.Get(test.square); got != test.expected {
			t.Errorf("Get(%s): expected %c, got %c", test.square, test.expected, got)
		}
	}

	rows := board.Rows()
	if !slices.Equal(rows, []string{"ABC", "DEF", "GHI"}) {
		t.Errorf("Unexpected rows: %v", rows)
	}
}

func TestNewBoard_NonRectangular(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		contents string
	}{
		{"ragged", 3, "ABCDEFGH"},
		{"zero width", 0, "ABC"},
		{"negative width", -1, "ABC"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Expected NewBoard to panic")
				}
			}()
			NewBoard(test.width, test.contents)
		})
	}
}

func TestBoardGet_OutOfRange(t *testing.T) {
	board := testBoard()

	for _, square := range []Coordinate{C(3, 0), C(0, 3), C(-1, 0)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected Get(%s) to panic", square)
				}
			}()
			board.Get(square)
		}()
	}
}

func TestBoardMoveWithin(t *testing.T) {
	board := testBoard()

	tests := []struct {
		from      Coordinate
		direction string
		expected  Coordinate
	}{
		{C(1, 1), Up, C(1, 0)},
		{C(1, 1), Down, C(1, 2)},
		{C(1, 1), Left, C(0, 1)},
		{C(1, 1), Right, C(2, 1)},
		{C(0, 0), Up, C(0, 0)},
		{C(0, 0), Left, C(0, 0)},
		{C(2, 2), Down, C(2, 2)},
		{C(2, 2), Right, C(2, 2)},
		{C(1, 1), "diagonal", C(1, 1)},
	}

	for _, test := range tests {
		if got := board.MoveWithin(test.from, test.direction); got != test.expected {
			t.Errorf("MoveWithin(%s, %s): expected %s, got %s", test.from, test.direction, test.expected, got)
		}
	}
}

func TestNewRuleset(t *testing.T) {
	rules := NewRuleset(2, 4, []string{"AD", "BE", "AD"})

	if rules.Size() != 2 {
		t.Errorf("Expected 2 distinct words, got %d", rules.Size())
	}
	if !rules.Allows("AD") {
		t.Error("Expected AD to be allowed")
	}
	if rules.Allows("ad") {
		t.Error("Dictionary lookups should be exact")
	}
}
