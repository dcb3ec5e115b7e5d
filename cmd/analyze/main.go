// Command analyze prints quick, human-readable statistics about puzzle files
// in the project's puzzles directory. It summarizes dimensions, word sizes and
// letter frequencies, draws the intended solution, and reports how many
// dictionary words fit the puzzle's size limits.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wricardo/mcp-training/celltower/game/engine"
)

// PuzzleStats is the summary printed for one puzzle
type PuzzleStats struct {
	Width, Height    int
	MinSize, MaxSize int
	Words            int
	// WordSizes counts solution words by letter count
	WordSizes map[int]int
	// Letters counts board letters, most common first
	Letters []LetterCount
	// Grid is the owner grid of the solution, one rune per square
	Grid []string
	// DictionaryWords is the number of dictionary words of allowed sizes
	DictionaryWords int
}

// LetterCount is how often one letter appears on the board
type LetterCount struct {
	Letter rune
	Count  int
}

func main() {
	dir := "puzzles"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	var dictionary []string
	if data, err := os.ReadFile(filepath.Join(dir, "words.json")); err == nil {
		if dictionary, err = engine.ParseDictionary(data); err != nil {
			fmt.Printf("Error parsing dictionary: %v\n", err)
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding puzzles: %v\n", err)
		os.Exit(1)
	}

	for _, file := range files {
		if filepath.Base(file) == "words.json" {
			continue
		}
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzePuzzle(file, dictionary, os.Stdout)
	}
}

func analyzePuzzle(path string, dictionary []string, w io.Writer) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error reading file: %v\n", err)
		return
	}

	var puzzle engine.PuzzleData
	if err := json.Unmarshal(data, &puzzle); err != nil {
		fmt.Fprintf(w, "Error parsing JSON: %v\n", err)
		return
	}

	stats, err := computeStats(&puzzle, dictionary)
	if err != nil {
		fmt.Fprintf(w, "⚠️  %v\n", err)
		return
	}

	printStats(w, stats)
}

// computeStats commits the intended solution to a game and gathers its
// statistics
func computeStats(puzzle *engine.PuzzleData, dictionary []string) (*PuzzleStats, error) {
	board, err := engine.BuildBoard(puzzle)
	if err != nil {
		return nil, err
	}

	game := engine.NewGame[int](board, engine.BuildRuleset(puzzle, nil))
	for i, region := range puzzle.Solution() {
		if err := game.Commit(region, i); err != nil {
			return nil, fmt.Errorf("solution word %d (%q) rejected: %w", i+1, puzzle.Words[i], err)
		}
	}

	stats := &PuzzleStats{
		Width:     puzzle.Width,
		Height:    puzzle.Height,
		MinSize:   puzzle.MinSize,
		MaxSize:   puzzle.MaxSize,
		Words:     game.Len(),
		WordSizes: make(map[int]int),
	}

	for region := range game.Regions() {
		stats.WordSizes[region.Size()]++
	}

	counts := make(map[rune]int)
	for _, c := range board.All() {
		counts[board.Get(c)]++
	}
	for letter, n := range counts {
		stats.Letters = append(stats.Letters, LetterCount{Letter: letter, Count: n})
	}
	slices.SortFunc(stats.Letters, func(a, b LetterCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return int(a.Letter) - int(b.Letter)
	})

	for _, row := range engine.OwnerGrid(game) {
		var sb strings.Builder
		for _, owner := range row {
			sb.WriteRune(ownerMarker(owner))
		}
		stats.Grid = append(stats.Grid, sb.String())
	}

	if len(dictionary) > 0 {
		known := engine.BuildRuleset(&engine.PuzzleData{MinSize: puzzle.MinSize, MaxSize: puzzle.MaxSize}, dictionary)
		stats.DictionaryWords = engine.CountWords(known)
	}

	return stats, nil
}

// ownerMarker labels word i as a, b, ... z, A, ... Z and wraps after that
func ownerMarker(i int) rune {
	const markers = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < 0 {
		return '.'
	}
	return rune(markers[i%len(markers)])
}

func printStats(w io.Writer, stats *PuzzleStats) {
	fmt.Fprintf(w, "Grid Size: %d x %d\n", stats.Width, stats.Height)
	fmt.Fprintf(w, "Word Sizes Allowed: %d-%d\n", stats.MinSize, stats.MaxSize)
	fmt.Fprintf(w, "Total Words: %d\n", stats.Words)

	sizes := make([]int, 0, len(stats.WordSizes))
	for size := range stats.WordSizes {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)
	for _, size := range sizes {
		fmt.Fprintf(w, "   %d letters: %d\n", size, stats.WordSizes[size])
	}

	fmt.Fprint(w, "Common Letters:")
	for i, lc := range stats.Letters {
		if i == 5 { // Show first 5 letters
			break
		}
		fmt.Fprintf(w, " %c=%d", lc.Letter, lc.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Solution:")
	for _, row := range stats.Grid {
		fmt.Fprintf(w, "   %s\n", row)
	}

	if stats.DictionaryWords > 0 {
		fmt.Fprintf(w, "✅ %d dictionary words fit the size limits\n", stats.DictionaryWords)
	} else {
		fmt.Fprintf(w, "⚠️  No dictionary loaded; only the solution words are playable\n")
	}
}
