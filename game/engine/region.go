package engine

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Region is a set of unique board squares. A region may be off the board or
// disconnected at any time; IsInBounds and IsContiguous check on demand.
type Region struct {
	squares map[Coordinate]struct{}
}

// NewRegion creates a region holding the given squares
func NewRegion(squares ...Coordinate) *Region {
	r := &Region{squares: make(map[Coordinate]struct{}, len(squares))}
	for _, c := range squares {
		r.squares[c] = struct{}{}
	}
	return r
}

// AddSquare inserts c and reports whether it was not already present
func (r *Region) AddSquare(c Coordinate) bool {
	if r.squares == nil {
		r.squares = make(map[Coordinate]struct{})
	}
	if _, ok := r.squares[c]; ok {
		return false
	}
	r.squares[c] = struct{}{}
	return true
}

// RemoveSquare deletes c and reports whether it was present
func (r *Region) RemoveSquare(c Coordinate) bool {
	if _, ok := r.squares[c]; !ok {
		return false
	}
	delete(r.squares, c)
	return true
}

// Contains reports whether c is part of the region
func (r *Region) Contains(c Coordinate) bool {
	_, ok := r.squares[c]
	return ok
}

// Size returns the number of squares in the region
func (r *Region) Size() int {
	return len(r.squares)
}

// Squares yields every square once, in no particular order
func (r *Region) Squares() iter.Seq[Coordinate] {
	return maps.Keys(r.squares)
}

// Sorted returns the squares in reading order
func (r *Region) Sorted() []Coordinate {
	return slices.SortedFunc(maps.Keys(r.squares), Coordinate.Compare)
}

// Word spells the region by reading its letters top-to-bottom, then
// left-to-right, regardless of the order squares were added.
func (r *Region) Word(b *Board) string {
	var sb strings.Builder
	for _, c := range r.Sorted() {
		sb.WriteRune(b.Get(c))
	}
	return sb.String()
}

// IsInBounds reports whether every square lies on b
func (r *Region) IsInBounds(b *Board) bool {
	for c := range r.squares {
		if !b.Contains(c) {
			return false
		}
	}
	return true
}

// IsContiguous reports whether the squares form one 4-connected group.
//
// The sweep starts from the first square in reading order and grows a
// frontier by repeatedly absorbing the first remaining square that touches it.
func (r *Region) IsContiguous() bool {
	if len(r.squares) == 0 {
		return true
	}

	remaining := r.Sorted()
	frontier := []Coordinate{remaining[0]}
	remaining = remaining[1:]

	for len(remaining) > 0 {
		next := slices.IndexFunc(remaining, func(c Coordinate) bool {
			return slices.ContainsFunc(frontier, c.IsNeighbourOf)
		})
		if next < 0 {
			return false
		}

		frontier = append(frontier, remaining[next])
		remaining = slices.Delete(remaining, next, next+1)
	}

	return true
}

// Overlaps reports whether r and o share at least one square
func (r *Region) Overlaps(o *Region) bool {
	small, large := r, o
	if small.Size() > large.Size() {
		small, large = large, small
	}
	for c := range small.squares {
		if large.Contains(c) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the region
func (r *Region) Clone() *Region {
	return &Region{squares: maps.Clone(r.nonNil())}
}

// Clear removes every square
func (r *Region) Clear() {
	clear(r.squares)
}

// MarshalJSON encodes the region as an array of squares in reading order
func (r *Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Sorted())
}

// UnmarshalJSON decodes an array of squares
func (r *Region) UnmarshalJSON(data []byte) error {
	var squares []Coordinate
	if err := json.Unmarshal(data, &squares); err != nil {
		return err
	}
	*r = *NewRegion(squares...)
	return nil
}

func (r *Region) nonNil() map[Coordinate]struct{} {
	if r.squares == nil {
		return map[Coordinate]struct{}{}
	}
	return r.squares
}
