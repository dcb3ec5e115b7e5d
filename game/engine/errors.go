package engine

import (
	"errors"
	"fmt"
)

// Reason identifies why a candidate region was rejected
type Reason string

const (
	TooShort        Reason = "too_short"
	TooLong         Reason = "too_long"
	OutOfBounds     Reason = "out_of_bounds"
	Overlapping     Reason = "overlapping"
	NotContiguous   Reason = "not_contiguous"
	NotInDictionary Reason = "not_in_dictionary"
)

// Sentinels matched with errors.Is against a *CheckRegionError
var (
	ErrTooShort        = &CheckRegionError{Reason: TooShort}
	ErrTooLong         = &CheckRegionError{Reason: TooLong}
	ErrOutOfBounds     = &CheckRegionError{Reason: OutOfBounds}
	ErrOverlapping     = &CheckRegionError{Reason: Overlapping}
	ErrNotContiguous   = &CheckRegionError{Reason: NotContiguous}
	ErrNotInDictionary = &CheckRegionError{Reason: NotInDictionary}
)

var (
	ErrStaleValidation = errors.New("validated region no longer belongs to this game")
)

// CheckRegionError is the single failure reported by Game.CheckRegion
type CheckRegionError struct {
	Reason Reason
	Word   string // set for NotInDictionary
}

func (e *CheckRegionError) Error() string {
	return "check region: " + e.Message()
}

// Is matches any CheckRegionError with the same reason
func (e *CheckRegionError) Is(target error) bool {
	var t *CheckRegionError
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

// Message renders the player-facing status line for the rejection
func (e *CheckRegionError) Message() string {
	switch e.Reason {
	case TooShort:
		return "word too short"
	case TooLong:
		return "word too long"
	case OutOfBounds:
		return "region out of bounds"
	case Overlapping:
		return "region overlaps another word"
	case NotContiguous:
		return "region must be contiguous"
	case NotInDictionary:
		return fmt.Sprintf("unknown word %q", e.Word)
	}
	return string(e.Reason)
}

// ReasonOf extracts the rejection reason from err, if any
func ReasonOf(err error) (Reason, bool) {
	var cerr *CheckRegionError
	if errors.As(err, &cerr) {
		return cerr.Reason, true
	}
	return "", false
}
