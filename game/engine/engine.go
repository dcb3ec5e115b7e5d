package engine

import (
	"fmt"
	"iter"
)

// Committed pairs a region accepted into a game with the caller's label
type Committed[L any] struct {
	Region *Region
	Label  L
}

// Game validates candidate regions against a board and ruleset and keeps the
// regions committed so far. L is caller metadata attached to each committed
// region (a display colour, say); the game never inspects it.
//
// A Game is not safe for concurrent use.
type Game[L any] struct {
	board   *Board
	ruleset *Ruleset
	regions []Committed[L]
}

// ValidatedRegion proves that CheckRegion accepted a candidate. It refers to
// the candidate itself, not a copy, so it should be passed straight to
// AddRegion without touching the candidate in between.
type ValidatedRegion[L any] struct {
	game   *Game[L]
	region *Region
}

// Region returns the candidate the token refers to
func (v ValidatedRegion[L]) Region() *Region {
	return v.region
}

// NewGame creates an empty game over board and ruleset. Both are borrowed
// and must not change for the lifetime of the game.
func NewGame[L any](board *Board, ruleset *Ruleset) *Game[L] {
	return &Game[L]{
		board:   board,
		ruleset: ruleset,
	}
}

// Board returns the game's board
func (g *Game[L]) Board() *Board {
	return g.board
}

// Ruleset returns the game's ruleset
func (g *Game[L]) Ruleset() *Ruleset {
	return g.ruleset
}

// CheckRegion runs every placement rule against candidate in a fixed order
// and reports the first one that fails. A nil candidate is checked as an
// empty region.
func (g *Game[L]) CheckRegion(candidate *Region) (ValidatedRegion[L], error) {
	if candidate == nil {
		candidate = NewRegion()
	}

	if candidate.Size() < g.ruleset.MinLength {
		return ValidatedRegion[L]{}, ErrTooShort
	}

	if candidate.Size() > g.ruleset.MaxLength {
		return ValidatedRegion[L]{}, ErrTooLong
	}

	if !candidate.IsInBounds(g.board) {
		return ValidatedRegion[L]{}, ErrOutOfBounds
	}

	for _, committed := range g.regions {
		if committed.Region.Overlaps(candidate) {
			return ValidatedRegion[L]{}, ErrOverlapping
		}
	}

	if !candidate.IsContiguous() {
		return ValidatedRegion[L]{}, ErrNotContiguous
	}

	word := candidate.Word(g.board)
	if !g.ruleset.Allows(word) {
		return ValidatedRegion[L]{}, &CheckRegionError{Reason: NotInDictionary, Word: word}
	}

	return ValidatedRegion[L]{game: g, region: candidate}, nil
}

// AddRegion commits the region behind v with label. The game keeps its own
// copy, so later changes to the candidate do not affect the committed region.
//
// The candidate is re-checked first: a token from another game, or one whose
// candidate was changed into an invalid placement since CheckRegion, is
// rejected and nothing is committed.
func (g *Game[L]) AddRegion(v ValidatedRegion[L], label L) error {
	if v.game != g || v.region == nil {
		return ErrStaleValidation
	}

	if _, err := g.CheckRegion(v.region); err != nil {
		return fmt.Errorf("%w: %w", ErrStaleValidation, err)
	}

	g.regions = append(g.regions, Committed[L]{Region: v.region.Clone(), Label: label})
	return nil
}

// Commit checks candidate and, if it passes, adds it with label
func (g *Game[L]) Commit(candidate *Region, label L) error {
	v, err := g.CheckRegion(candidate)
	if err != nil {
		return err
	}

	g.regions = append(g.regions, Committed[L]{Region: v.region.Clone(), Label: label})
	return nil
}

// RemoveRegion takes the committed region containing c out of the game and
// returns it with its label. The order of the remaining regions may change.
func (g *Game[L]) RemoveRegion(c Coordinate) (*Region, L, bool) {
	i := g.indexOf(c)
	if i < 0 {
		var zero L
		return nil, zero, false
	}

	removed := g.regions[i]
	last := len(g.regions) - 1
	g.regions[i] = g.regions[last]
	g.regions[last] = Committed[L]{}
	g.regions = g.regions[:last]

	return removed.Region, removed.Label, true
}

// IsSquareFree reports whether no committed region contains c
func (g *Game[L]) IsSquareFree(c Coordinate) bool {
	return g.indexOf(c) < 0
}

// IsComplete reports whether every board square belongs to a committed region
func (g *Game[L]) IsComplete() bool {
	for _, c := range g.board.All() {
		if g.IsSquareFree(c) {
			return false
		}
	}
	return true
}

// Covered returns the number of board squares claimed by committed regions
func (g *Game[L]) Covered() int {
	covered := 0
	for _, committed := range g.regions {
		covered += committed.Region.Size()
	}
	return covered
}

// Len returns the number of committed regions
func (g *Game[L]) Len() int {
	return len(g.regions)
}

// Regions yields a copy of every committed region with its label
func (g *Game[L]) Regions() iter.Seq2[*Region, L] {
	return func(yield func(*Region, L) bool) {
		for _, committed := range g.regions {
			if !yield(committed.Region.Clone(), committed.Label) {
				return
			}
		}
	}
}

func (g *Game[L]) indexOf(c Coordinate) int {
	for i, committed := range g.regions {
		if committed.Region.Contains(c) {
			return i
		}
	}
	return -1
}
