package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PuzzleData is a published puzzle definition. Regions[i] lists, in order,
// the squares that spell Words[i] in the intended solution.
type PuzzleData struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	MinSize int        `json:"minSize"`
	MaxSize int        `json:"maxSize"`
	Regions [][][2]int `json:"regions"`
	Words   []string   `json:"words"`
}

// Puzzle is a loaded puzzle ready to play
type Puzzle struct {
	ID      string
	Data    *PuzzleData
	Board   *Board
	Ruleset *Ruleset
}

// Solution returns the intended placement as regions, one per word
func (p *PuzzleData) Solution() []*Region {
	regions := make([]*Region, len(p.Regions))
	for i, squares := range p.Regions {
		r := NewRegion()
		for _, sq := range squares {
			r.AddSquare(Coordinate{X: sq[0], Y: sq[1]})
		}
		regions[i] = r
	}
	return regions
}

// ValidatePuzzle checks a puzzle definition for correctness and solvability
func ValidatePuzzle(p *PuzzleData) error {
	if p == nil {
		return fmt.Errorf("puzzle validation: puzzle is nil")
	}

	if p.Width < MinBoardSide || p.Width > MaxBoardSide {
		return fmt.Errorf("puzzle validation: width must be between %d and %d, got %d", MinBoardSide, MaxBoardSide, p.Width)
	}
	if p.Height < MinBoardSide || p.Height > MaxBoardSide {
		return fmt.Errorf("puzzle validation: height must be between %d and %d, got %d", MinBoardSide, MaxBoardSide, p.Height)
	}

	if p.MinSize < 1 || p.MinSize > MaxWordSize {
		return fmt.Errorf("puzzle validation: minSize must be between 1 and %d, got %d", MaxWordSize, p.MinSize)
	}
	if p.MaxSize < p.MinSize || p.MaxSize > MaxWordSize {
		return fmt.Errorf("puzzle validation: maxSize must be between minSize (%d) and %d, got %d", p.MinSize, MaxWordSize, p.MaxSize)
	}

	if len(p.Regions) != len(p.Words) {
		return fmt.Errorf("puzzle validation: %d regions but %d words", len(p.Regions), len(p.Words))
	}

	seen := make(map[Coordinate]int, p.Width*p.Height)
	for i, squares := range p.Regions {
		word := p.Words[i]
		if n := len([]rune(word)); n != len(squares) {
			return fmt.Errorf("puzzle validation: word %d (%q) has %d letters but region has %d squares", i+1, word, n, len(squares))
		}

		for _, sq := range squares {
			c := Coordinate{X: sq[0], Y: sq[1]}
			if c.X < 0 || c.X >= p.Width || c.Y < 0 || c.Y >= p.Height {
				return fmt.Errorf("puzzle validation: word %d (%q) uses square %s outside the %dx%d board", i+1, word, c, p.Width, p.Height)
			}
			if prev, ok := seen[c]; ok {
				return fmt.Errorf("puzzle validation: square %s is used by word %d and word %d", c, prev, i+1)
			}
			seen[c] = i + 1
		}
	}

	if len(seen) != p.Width*p.Height {
		return fmt.Errorf("puzzle validation: words cover %d of %d squares", len(seen), p.Width*p.Height)
	}

	return nil
}

// BuildBoard lays each solution word onto its squares
func BuildBoard(p *PuzzleData) (*Board, error) {
	if err := ValidatePuzzle(p); err != nil {
		return nil, err
	}

	upper := cases.Upper(language.Und)
	cells := make([]rune, p.Width*p.Height)

	for i, squares := range p.Regions {
		letters := []rune(upper.String(p.Words[i]))
		if len(letters) != len(squares) {
			return nil, fmt.Errorf("puzzle validation: word %q changes length when upper-cased", p.Words[i])
		}
		for j, sq := range squares {
			cells[sq[1]*p.Width+sq[0]] = letters[j]
		}
	}

	return NewBoard(p.Width, string(cells)), nil
}

// BuildRuleset combines the puzzle's size limits with a dictionary. Words are
// upper-cased to match the board, and the puzzle's own answers are always
// accepted.
func BuildRuleset(p *PuzzleData, dictionary []string) *Ruleset {
	upper := cases.Upper(language.Und)

	words := make([]string, 0, len(dictionary)+len(p.Words))
	for _, w := range dictionary {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		words = append(words, upper.String(w))
	}
	for _, w := range p.Words {
		words = append(words, upper.String(w))
	}

	return NewRuleset(p.MinSize, p.MaxSize, words)
}

// LoadPuzzle parses and validates puzzle JSON and builds its board and ruleset
func LoadPuzzle(id string, data []byte, dictionary []string) (*Puzzle, error) {
	var pd PuzzleData
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle: %w", err)
	}

	board, err := BuildBoard(&pd)
	if err != nil {
		return nil, err
	}

	return &Puzzle{
		ID:      id,
		Data:    &pd,
		Board:   board,
		Ruleset: BuildRuleset(&pd, dictionary),
	}, nil
}

// ParseDictionary decodes a JSON array of words
func ParseDictionary(data []byte) ([]string, error) {
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}
	return words, nil
}
