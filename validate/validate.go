// Command validate checks Cell Tower puzzle JSON files. For each file it checks:
//   - JSON structure and board/word size limits
//   - That the solution words tile the board exactly once
//   - That every solution word is contiguous and within the size limits
//     when committed in order, leaving the puzzle complete
//   - Optionally, which solution words are missing from a dictionary
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/celltower/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePuzzle loads and validates a single puzzle JSON file
func validatePuzzle(filePath string, dictionary []string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var puzzle engine.PuzzleData
	if err := json.Unmarshal(data, &puzzle); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidatePuzzle(&puzzle); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, strings.TrimPrefix(err.Error(), "puzzle validation: "))
		return result
	}

	solution := validateSolution(&puzzle, dictionary)
	result.Errors = append(result.Errors, solution.Errors...)
	if !solution.Valid {
		result.Valid = false
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", puzzle.Width, puzzle.Height))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Words: %d", len(puzzle.Words)))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Word sizes: %d-%d", puzzle.MinSize, puzzle.MaxSize))

	return result
}

// validateSolution commits every solution word, in order, to a fresh game.
// Each word must pass the same checks a player's region does, and the
// finished board must be complete.
func validateSolution(puzzle *engine.PuzzleData, dictionary []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	board, err := engine.BuildBoard(puzzle)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	ruleset := engine.BuildRuleset(puzzle, dictionary)
	game := engine.NewGame[int](board, ruleset)

	for i, region := range puzzle.Solution() {
		if err := game.Commit(region, i); err != nil {
			result.Valid = false
			message := err.Error()
			var checkErr *engine.CheckRegionError
			if errors.As(err, &checkErr) {
				message = checkErr.Message()
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Word %d (%q): %s", i+1, puzzle.Words[i], message))
		}
	}

	if !result.Valid {
		return result
	}

	if !game.IsComplete() {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Solution leaves %d squares free", len(engine.FreeSquares(game))))
		return result
	}
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Solution: all %d squares covered", board.Size()))

	if len(dictionary) > 0 {
		known := engine.BuildRuleset(&engine.PuzzleData{MinSize: puzzle.MinSize, MaxSize: puzzle.MaxSize}, dictionary)
		missing := 0
		for region := range game.Regions() {
			word := region.Word(board)
			if !known.Allows(word) {
				missing++
				result.Errors = append(result.Errors, fmt.Sprintf("⚠ Not in dictionary: %s", word))
			}
		}
		if missing == 0 {
			result.Errors = append(result.Errors, "✓ Dictionary: all solution words known")
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Dictionary words of allowed sizes: %d", engine.CountWords(known)))
	}

	return result
}

// loadDictionary reads a JSON word list. An empty path means no dictionary.
func loadDictionary(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return engine.ParseDictionary(data)
}

// validateDir validates every puzzle file in dir and writes a concise report
// to w. It reports whether all puzzles are valid.
func validateDir(dir string, dictionary []string, w io.Writer) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding puzzle files: %w", err)
	}

	allValid := true
	for _, file := range files {
		if filepath.Base(file) == "words.json" {
			continue
		}

		result := validatePuzzle(file, dictionary)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All puzzles are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some puzzles have errors")
	}
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "Validate Cell Tower puzzle files",
		ArgsUsage: "[puzzle-dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dictionary",
				Usage:   "JSON word list to check solution words against (defaults to words.json in the puzzle directory when present)",
				Sources: cli.EnvVars("CELLTOWER_DICTIONARY"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "../puzzles"
			}

			dictPath := cmd.String("dictionary")
			if dictPath == "" {
				if candidate := filepath.Join(dir, "words.json"); fileExists(candidate) {
					dictPath = candidate
				}
			}

			dictionary, err := loadDictionary(dictPath)
			if err != nil {
				return err
			}

			ok, err := validateDir(dir, dictionary, os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("some puzzles have errors")
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
