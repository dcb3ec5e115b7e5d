package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/celltower/game/engine"
)

func testPuzzle() *engine.PuzzleData {
	// CAT
	// DOG
	return &engine.PuzzleData{
		Width:   3,
		Height:  2,
		MinSize: 2,
		MaxSize: 3,
		Regions: [][][2]int{
			{{0, 0}, {1, 0}, {2, 0}},
			{{0, 1}, {1, 1}, {2, 1}},
		},
		Words: []string{"cat", "dog"},
	}
}

func TestComputeStats(t *testing.T) {
	stats, err := computeStats(testPuzzle(), []string{"cat", "dog", "ox", "horse"})
	if err != nil {
		t.Fatalf("computeStats failed: %v", err)
	}

	if stats.Width != 3 || stats.Height != 2 {
		t.Errorf("Expected 3x2, got %dx%d", stats.Width, stats.Height)
	}

	if stats.Words != 2 {
		t.Errorf("Expected 2 words, got %d", stats.Words)
	}

	if stats.WordSizes[3] != 2 {
		t.Errorf("Expected two 3-letter words, got %v", stats.WordSizes)
	}

	expectedGrid := []string{"aaa", "bbb"}
	if strings.Join(stats.Grid, "/") != strings.Join(expectedGrid, "/") {
		t.Errorf("Expected grid %v, got %v", expectedGrid, stats.Grid)
	}

	// horse is too long for maxSize 3
	if stats.DictionaryWords != 3 {
		t.Errorf("Expected 3 dictionary words of allowed size, got %d", stats.DictionaryWords)
	}

	if len(stats.Letters) != 6 {
		t.Errorf("Expected 6 distinct letters, got %d", len(stats.Letters))
	}
}

func TestComputeStats_LetterOrder(t *testing.T) {
	puzzle := &engine.PuzzleData{
		Width:   2,
		Height:  2,
		MinSize: 2,
		MaxSize: 2,
		Regions: [][][2]int{
			{{0, 0}, {1, 0}},
			{{0, 1}, {1, 1}},
		},
		Words: []string{"aa", "ab"},
	}

	stats, err := computeStats(puzzle, nil)
	if err != nil {
		t.Fatalf("computeStats failed: %v", err)
	}

	if len(stats.Letters) != 2 {
		t.Fatalf("Expected 2 letters, got %v", stats.Letters)
	}
	if stats.Letters[0] != (LetterCount{Letter: 'A', Count: 3}) {
		t.Errorf("Expected A=3 first, got %+v", stats.Letters[0])
	}
	if stats.DictionaryWords != 0 {
		t.Errorf("Expected no dictionary words, got %d", stats.DictionaryWords)
	}
}

func TestComputeStats_RejectedSolution(t *testing.T) {
	puzzle := testPuzzle()
	puzzle.MaxSize = 2

	if _, err := computeStats(puzzle, nil); err == nil {
		t.Error("Expected error when a solution word is too long")
	}

	puzzle = testPuzzle()
	puzzle.Words = puzzle.Words[:1]
	if _, err := computeStats(puzzle, nil); err == nil {
		t.Error("Expected error for malformed puzzle")
	}
}

func TestOwnerMarker(t *testing.T) {
	tests := []struct {
		index    int
		expected rune
	}{
		{-1, '.'},
		{0, 'a'},
		{25, 'z'},
		{26, 'A'},
		{52, 'a'},
	}

	for _, tt := range tests {
		if got := ownerMarker(tt.index); got != tt.expected {
			t.Errorf("ownerMarker(%d): expected %q, got %q", tt.index, tt.expected, got)
		}
	}
}

func TestAnalyzePuzzle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.json")
	content := `{"width":3,"height":2,"minSize":2,"maxSize":3,
		"regions":[[[0,0],[1,0],[2,0]],[[0,1],[1,1],[2,1]]],"words":["cat","dog"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write puzzle: %v", err)
	}

	var out bytes.Buffer
	analyzePuzzle(path, nil, &out)

	report := out.String()
	for _, expected := range []string{
		"Grid Size: 3 x 2",
		"Total Words: 2",
		"3 letters: 2",
		"   aaa\n   bbb\n",
		"No dictionary loaded",
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("Expected %q in report:\n%s", expected, report)
		}
	}
}

func TestAnalyzePuzzle_Errors(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	analyzePuzzle(filepath.Join(dir, "missing.json"), nil, &out)
	if !strings.Contains(out.String(), "Error reading file") {
		t.Errorf("Expected read error, got %q", out.String())
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	out.Reset()
	analyzePuzzle(bad, nil, &out)
	if !strings.Contains(out.String(), "Error parsing JSON") {
		t.Errorf("Expected parse error, got %q", out.String())
	}
}
