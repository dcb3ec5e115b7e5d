package engine

import (
	"strings"
	"testing"
)

func createTestPuzzle() *PuzzleData {
	return &PuzzleData{
		Width:   3,
		Height:  3,
		MinSize: 2,
		MaxSize: 4,
		Regions: [][][2]int{
			{{0, 0}, {0, 1}},
			{{1, 0}, {1, 1}},
			{{2, 0}, {2, 1}, {2, 2}},
			{{0, 2}, {1, 2}},
		},
		Words: []string{"ad", "be", "cfi", "gh"},
	}
}

func TestValidatePuzzle(t *testing.T) {
	if err := ValidatePuzzle(createTestPuzzle()); err != nil {
		t.Fatalf("Expected valid puzzle, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(p *PuzzleData)
		wantErr string
	}{
		{"zero width", func(p *PuzzleData) { p.Width = 0 }, "width"},
		{"zero height", func(p *PuzzleData) { p.Height = 0 }, "height"},
		{"min size zero", func(p *PuzzleData) { p.MinSize = 0 }, "minSize"},
		{"max below min", func(p *PuzzleData) { p.MaxSize = 1 }, "maxSize"},
		{"word count mismatch", func(p *PuzzleData) { p.Words = p.Words[:3] }, "regions but"},
		{"word length mismatch", func(p *PuzzleData) { p.Words[0] = "add" }, "letters"},
		{"square off board", func(p *PuzzleData) { p.Regions[3][1] = [2]int{3, 2} }, "outside"},
		{"square reused", func(p *PuzzleData) { p.Regions[3][1] = [2]int{0, 0} }, "is used by"},
		{"board not covered", func(p *PuzzleData) {
			p.Regions = p.Regions[:3]
			p.Words = p.Words[:3]
		}, "cover"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := createTestPuzzle()
			test.mutate(p)

			err := ValidatePuzzle(p)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got %v", test.wantErr, err)
			}
		})
	}
}

func TestBuildBoard(t *testing.T) {
	board, err := BuildBoard(createTestPuzzle())
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	rows := board.Rows()
	expected := []string{"ABC", "DEF", "GHI"}
	for i := range expected {
		if rows[i] != expected[i] {
			t.Errorf("Row %d: expected %s, got %s", i, expected[i], rows[i])
		}
	}
}

func TestBuildRuleset(t *testing.T) {
	rules := BuildRuleset(createTestPuzzle(), []string{"zoo", "  ", "Hi"})

	for _, word := range []string{"ZOO", "HI", "AD", "BE", "CFI", "GH"} {
		if !rules.Allows(word) {
			t.Errorf("Expected %s to be allowed", word)
		}
	}
	if rules.Allows("") {
		t.Error("Blank dictionary entries should be skipped")
	}
	if rules.MinLength != 2 || rules.MaxLength != 4 {
		t.Errorf("Expected limits 2..4, got %d..%d", rules.MinLength, rules.MaxLength)
	}
}

func TestLoadPuzzle_SolutionCompletesBoard(t *testing.T) {
	data := `{"width":3,"height":3,"minSize":2,"maxSize":4,
		"regions":[[[0,0],[0,1]],[[1,0],[1,1]],[[2,0],[2,1],[2,2]],[[0,2],[1,2]]],
		"words":["ad","be","cfi","gh"]}`

	puzzle, err := LoadPuzzle("1", []byte(data), nil)
	if err != nil {
		t.Fatalf("Failed to load puzzle: %v", err)
	}

	game := NewGame[int](puzzle.Board, puzzle.Ruleset)
	for i, region := range puzzle.Data.Solution() {
		if err := game.Commit(region, i); err != nil {
			t.Fatalf("Solution region %d rejected: %v", i, err)
		}
	}

	if !game.IsComplete() {
		t.Error("Expected the solution to complete the board")
	}
}

func TestLoadPuzzle_InvalidJSON(t *testing.T) {
	if _, err := LoadPuzzle("bad", []byte("{"), nil); err == nil {
		t.Error("Expected parse error")
	}
}

func TestParseDictionary(t *testing.T) {
	words, err := ParseDictionary([]byte(`["one","two"]`))
	if err != nil {
		t.Fatalf("Failed to parse dictionary: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("Expected 2 words, got %d", len(words))
	}

	if _, err := ParseDictionary([]byte(`{"one":1}`)); err == nil {
		t.Error("Expected error for non-array dictionary")
	}
}

func TestCountWords(t *testing.T) {
	rules := NewRuleset(2, 3, []string{"A", "AB", "ABC", "ABCD"})
	if n := CountWords(rules); n != 2 {
		t.Errorf("Expected 2 playable words, got %d", n)
	}
}
