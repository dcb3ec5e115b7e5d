package engine

import (
	"errors"
	"slices"
	"testing"
)

func createTestGame() *Game[string] {
	return NewGame[string](testBoard(), NewRuleset(2, 4, []string{"AD", "BE", "CFI", "GH", "ABC"}))
}

func TestCheckRegion(t *testing.T) {
	tests := []struct {
		name     string
		squares  []Coordinate
		expected error
	}{
		{"valid vertical", []Coordinate{C(0, 0), C(0, 1)}, nil},
		{"valid three", []Coordinate{C(2, 0), C(2, 1), C(2, 2)}, nil},
		{"empty", nil, ErrTooShort},
		{"too short", []Coordinate{C(0, 0)}, ErrTooShort},
		{"too long", []Coordinate{C(0, 0), C(1, 0), C(2, 0), C(0, 1), C(1, 1)}, ErrTooLong},
		{"out of bounds", []Coordinate{C(2, 2), C(3, 2)}, ErrOutOfBounds},
		{"not contiguous", []Coordinate{C(0, 0), C(1, 1)}, ErrNotContiguous},
		{"not in dictionary", []Coordinate{C(1, 1), C(2, 1)}, ErrNotInDictionary},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game := createTestGame()
			candidate := NewRegion(test.squares...)

			v, err := game.CheckRegion(candidate)
			if test.expected == nil {
				if err != nil {
					t.Fatalf("Expected region to pass, got %v", err)
				}
				if v.Region() != candidate {
					t.Error("Expected validated region to refer to the candidate itself")
				}
				return
			}

			if !errors.Is(err, test.expected) {
				t.Errorf("Expected %v, got %v", test.expected, err)
			}
		})
	}
}

func TestCheckRegion_Order(t *testing.T) {
	game := createTestGame()

	// Too short and also not a word: size is checked first.
	_, err := game.CheckRegion(NewRegion(C(1, 1)))
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("Expected TooShort, got %v", err)
	}

	// Too long and also disconnected and off the board.
	_, err = game.CheckRegion(NewRegion(C(0, 0), C(2, 2), C(5, 5), C(7, 7), C(9, 9)))
	if !errors.Is(err, ErrTooLong) {
		t.Errorf("Expected TooLong, got %v", err)
	}

	// Off the board and disconnected.
	_, err = game.CheckRegion(NewRegion(C(0, 0), C(4, 4)))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected OutOfBounds, got %v", err)
	}

	// Overlapping and disconnected.
	if err := game.Commit(NewRegion(C(0, 0), C(0, 1)), "red"); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
	_, err = game.CheckRegion(NewRegion(C(0, 0), C(2, 2)))
	if !errors.Is(err, ErrOverlapping) {
		t.Errorf("Expected Overlapping, got %v", err)
	}

	// Disconnected and not a word.
	_, err = game.CheckRegion(NewRegion(C(1, 0), C(2, 1)))
	if !errors.Is(err, ErrNotContiguous) {
		t.Errorf("Expected NotContiguous, got %v", err)
	}
}

func TestCheckRegion_NotInDictionaryCarriesWord(t *testing.T) {
	game := createTestGame()

	_, err := game.CheckRegion(NewRegion(C(1, 1), C(2, 1)))

	var cerr *CheckRegionError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected *CheckRegionError, got %T", err)
	}
	if cerr.Word != "EF" {
		t.Errorf("Expected word EF, got %q", cerr.Word)
	}
	if cerr.Message() != `unknown word "EF"` {
		t.Errorf("Unexpected message: %s", cerr.Message())
	}

	reason, ok := ReasonOf(err)
	if !ok || reason != NotInDictionary {
		t.Errorf("Expected reason %s, got %s", NotInDictionary, reason)
	}
}

func TestCheckRegion_NilCandidate(t *testing.T) {
	game := createTestGame()

	if _, err := game.CheckRegion(nil); !errors.Is(err, ErrTooShort) {
		t.Errorf("Expected ErrTooShort for nil candidate, got %v", err)
	}
	if err := game.Commit(nil, "X"); !errors.Is(err, ErrTooShort) {
		t.Errorf("Expected ErrTooShort committing nil candidate, got %v", err)
	}
	if game.Len() != 0 {
		t.Errorf("Expected nothing committed, got %d regions", game.Len())
	}
}

func TestAddRegion(t *testing.T) {
	game := createTestGame()
	candidate := NewRegion(C(0, 0), C(0, 1))

	v, err := game.CheckRegion(candidate)
	if err != nil {
		t.Fatalf("Expected region to pass, got %v", err)
	}
	if err := game.AddRegion(v, "X"); err != nil {
		t.Fatalf("Failed to add region: %v", err)
	}

	if game.Len() != 1 {
		t.Fatalf("Expected 1 committed region, got %d", game.Len())
	}

	// The committed region is a copy.
	candidate.AddSquare(C(1, 1))
	var region *Region
	var label string
	for r, l := range game.Regions() {
		region, label = r, l
	}
	if region == nil {
		t.Fatal("Expected a committed region")
	}
	if region.Size() != 2 {
		t.Errorf("Committed region should be unaffected by candidate edits, size %d", region.Size())
	}
	if label != "X" {
		t.Errorf("Expected label X, got %q", label)
	}
}

func TestAddRegion_StaleValidation(t *testing.T) {
	game := createTestGame()
	candidate := NewRegion(C(0, 0), C(0, 1))

	v, err := game.CheckRegion(candidate)
	if err != nil {
		t.Fatalf("Expected region to pass, got %v", err)
	}

	candidate.AddSquare(C(2, 2))

	err = game.AddRegion(v, "X")
	if !errors.Is(err, ErrStaleValidation) {
		t.Errorf("Expected stale validation error, got %v", err)
	}
	if !errors.Is(err, ErrNotContiguous) {
		t.Errorf("Expected underlying reason NotContiguous, got %v", err)
	}
	if game.Len() != 0 {
		t.Errorf("Expected nothing committed, got %d regions", game.Len())
	}
}

func TestAddRegion_ForeignToken(t *testing.T) {
	game := createTestGame()
	other := createTestGame()

	v, err := other.CheckRegion(NewRegion(C(0, 0), C(0, 1)))
	if err != nil {
		t.Fatalf("Expected region to pass, got %v", err)
	}

	if err := game.AddRegion(v, "X"); !errors.Is(err, ErrStaleValidation) {
		t.Errorf("Expected stale validation error, got %v", err)
	}
	if err := game.AddRegion(ValidatedRegion[string]{}, "X"); !errors.Is(err, ErrStaleValidation) {
		t.Errorf("Expected zero token to be rejected, got %v", err)
	}
}

func TestOverlapAfterCommit(t *testing.T) {
	game := createTestGame()

	if err := game.Commit(NewRegion(C(0, 0), C(0, 1)), "red"); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	if game.IsSquareFree(C(0, 0)) {
		t.Error("Expected (0,0) to be occupied")
	}
	if !game.IsSquareFree(C(1, 0)) {
		t.Error("Expected (1,0) to be free")
	}

	_, err := game.CheckRegion(NewRegion(C(0, 1), C(1, 1)))
	if !errors.Is(err, ErrOverlapping) {
		t.Errorf("Expected Overlapping, got %v", err)
	}
}

func TestRemoveRegion(t *testing.T) {
	game := createTestGame()
	mustCommit(t, game, "red", C(0, 0), C(0, 1))
	mustCommit(t, game, "green", C(1, 0), C(1, 1))
	mustCommit(t, game, "blue", C(2, 0), C(2, 1), C(2, 2))

	region, label, ok := game.RemoveRegion(C(1, 1))
	if !ok {
		t.Fatal("Expected a region to be removed")
	}
	if label != "green" {
		t.Errorf("Expected green, got %s", label)
	}
	if !slices.Equal(region.Sorted(), []Coordinate{C(1, 0), C(1, 1)}) {
		t.Errorf("Unexpected removed region %v", region.Sorted())
	}
	if game.Len() != 2 {
		t.Errorf("Expected 2 regions left, got %d", game.Len())
	}
	if !game.IsSquareFree(C(1, 0)) {
		t.Error("Expected (1,0) to be free after removal")
	}

	labels := map[string]bool{}
	for _, label := range game.Regions() {
		labels[label] = true
	}
	if !labels["red"] || !labels["blue"] {
		t.Errorf("Expected red and blue to remain, got %v", labels)
	}
}

func TestRemoveRegion_FreeSquare(t *testing.T) {
	game := createTestGame()
	mustCommit(t, game, "red", C(0, 0), C(0, 1))

	region, label, ok := game.RemoveRegion(C(2, 2))
	if ok || region != nil || label != "" {
		t.Errorf("Expected nothing removed, got %v %q %v", region, label, ok)
	}
	if game.Len() != 1 {
		t.Errorf("Expected committed list unchanged, got %d regions", game.Len())
	}
}

func TestRegionsYieldsCopies(t *testing.T) {
	game := createTestGame()
	mustCommit(t, game, "red", C(0, 0), C(0, 1))

	for region := range game.Regions() {
		region.AddSquare(C(2, 2))
	}

	if !game.IsSquareFree(C(2, 2)) {
		t.Error("Mutating a yielded region must not change the game")
	}
}

func TestIsComplete(t *testing.T) {
	game := createTestGame()

	if game.IsComplete() {
		t.Fatal("Empty game should not be complete")
	}

	mustCommit(t, game, "red", C(0, 0), C(0, 1))
	mustCommit(t, game, "green", C(1, 0), C(1, 1))
	mustCommit(t, game, "blue", C(2, 0), C(2, 1), C(2, 2))
	if game.IsComplete() {
		t.Fatal("Game with uncovered bottom row should not be complete")
	}

	mustCommit(t, game, "cyan", C(0, 2), C(1, 2))
	if !game.IsComplete() {
		t.Fatal("Expected game to be complete")
	}

	// Partition: every square is claimed by exactly one region.
	for _, c := range game.Board().All() {
		owners := 0
		for region := range game.Regions() {
			if region.Contains(c) {
				owners++
			}
		}
		if owners != 1 {
			t.Errorf("Square %s claimed by %d regions", c, owners)
		}
	}

	if game.Covered() != game.Board().Size() {
		t.Errorf("Expected %d covered, got %d", game.Board().Size(), game.Covered())
	}
}

func TestEndToEnd(t *testing.T) {
	board := NewBoard(3, "ABCDEFGHI")
	rules := NewRuleset(2, 4, []string{"AD"})
	game := NewGame[string](board, rules)

	candidate := NewRegion(C(0, 0), C(0, 1))
	v, err := game.CheckRegion(candidate)
	if err != nil {
		t.Fatalf("Expected region to pass, got %v", err)
	}
	if word := v.Region().Word(board); word != "AD" {
		t.Errorf("Expected AD, got %s", word)
	}

	if err := game.AddRegion(v, "X"); err != nil {
		t.Fatalf("Failed to add region: %v", err)
	}

	if game.IsSquareFree(C(0, 0)) {
		t.Error("Expected (0,0) to be occupied")
	}
	if game.IsComplete() {
		t.Error("Expected game to be incomplete")
	}
	if free := FreeSquares(game); len(free) != 7 {
		t.Errorf("Expected 7 uncovered squares, got %d", len(free))
	}
}

func TestOwnerGrid(t *testing.T) {
	game := createTestGame()
	mustCommit(t, game, "red", C(0, 0), C(0, 1))

	grid := OwnerGrid(game)
	if grid[0][0] != 0 || grid[1][0] != 0 {
		t.Errorf("Expected column 0 rows 0-1 owned by region 0, got %v", grid)
	}
	if grid[2][2] != -1 {
		t.Errorf("Expected (2,2) free, got %d", grid[2][2])
	}
}

func mustCommit(t *testing.T, game *Game[string], label string, squares ...Coordinate) {
	t.Helper()
	if err := game.Commit(NewRegion(squares...), label); err != nil {
		t.Fatalf("Failed to commit %v: %v", squares, err)
	}
}
