package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/celltower/game/engine"
)

// Play actions on a single session. Callers serialise access to a Session;
// gameServiceImpl does so with its mutex and the terminal front-end owns its
// session outright.

// Toggle removes square from the candidate, or adds it when it is on the
// board and not already claimed by a committed region.
func (s *Session) Toggle(square engine.Coordinate) *ActionResult {
	result := &ActionResult{Action: ActionToggle, Success: true}

	switch {
	case s.Candidate.RemoveSquare(square):
		result.Message = fmt.Sprintf("removed %s from candidate", square)
	case !s.Game.Board().Contains(square):
		result.Success = false
		result.Reason = engine.OutOfBounds
		result.Message = fmt.Sprintf("square %s is off the board", square)
	case !s.Game.IsSquareFree(square):
		result.Success = false
		result.Reason = engine.Overlapping
		result.Message = fmt.Sprintf("square %s already belongs to a word", square)
	default:
		s.Candidate.AddSquare(square)
		result.Message = fmt.Sprintf("added %s to candidate", square)
	}

	s.record(ActionEntry{Action: ActionToggle, Square: &square, Success: result.Success, Reason: result.Reason})
	return s.finish(result)
}

// SetCandidate replaces the candidate. Squares that are off the board or
// already committed are refused and the candidate is left unchanged.
func (s *Session) SetCandidate(squares []engine.Coordinate) *ActionResult {
	result := &ActionResult{Action: ActionSet, Success: true}

	for _, sq := range squares {
		if !s.Game.Board().Contains(sq) {
			result.Success = false
			result.Reason = engine.OutOfBounds
			result.Message = fmt.Sprintf("square %s is off the board", sq)
			break
		}
		if !s.Game.IsSquareFree(sq) {
			result.Success = false
			result.Reason = engine.Overlapping
			result.Message = fmt.Sprintf("square %s already belongs to a word", sq)
			break
		}
	}

	if result.Success {
		s.Candidate = engine.NewRegion(squares...)
		result.Message = fmt.Sprintf("candidate has %d squares", s.Candidate.Size())
	}

	s.record(ActionEntry{Action: ActionSet, Squares: append([]engine.Coordinate(nil), squares...), Success: result.Success, Reason: result.Reason})
	return s.finish(result)
}

// ClearCandidate empties the candidate region
func (s *Session) ClearCandidate() *ActionResult {
	s.Candidate.Clear()
	s.record(ActionEntry{Action: ActionClear, Success: true})
	return s.finish(&ActionResult{Action: ActionClear, Success: true, Message: "candidate cleared"})
}

// Check validates the candidate without committing it
func (s *Session) Check() *ActionResult {
	result := &ActionResult{Action: ActionCheck}

	v, err := s.Game.CheckRegion(s.Candidate)
	word := s.Candidate.Word(s.Game.Board())
	if err != nil {
		result.Reason, _ = engine.ReasonOf(err)
		result.Message = statusMessage(err)
	} else {
		result.Success = true
		result.Message = fmt.Sprintf("%q is a valid word", v.Region().Word(s.Game.Board()))
	}

	s.record(ActionEntry{Action: ActionCheck, Squares: s.Candidate.Sorted(), Word: word, Success: result.Success, Reason: result.Reason})
	return s.finish(result)
}

// Commit adds the candidate as a committed region with the next colour and
// clears it. A rejected candidate is kept so the player can fix it.
func (s *Session) Commit() *ActionResult {
	result := &ActionResult{Action: ActionCommit}
	squares := s.Candidate.Sorted()
	word := s.Candidate.Word(s.Game.Board())

	v, err := s.Game.CheckRegion(s.Candidate)
	if err == nil {
		color := s.peekColor()
		if err = s.Game.AddRegion(v, color); err == nil {
			s.popColor()
			result.Success = true
			result.Region = &RegionView{Squares: squares, Word: word, Color: color}
			result.Message = fmt.Sprintf("committed %q", word)
			s.Candidate = engine.NewRegion()
			if s.Game.IsComplete() {
				result.Message += ", puzzle complete!"
			}
		}
	}
	if err != nil {
		result.Reason, _ = engine.ReasonOf(err)
		result.Message = statusMessage(err)
	}

	s.record(ActionEntry{Action: ActionCommit, Squares: squares, Word: word, Success: result.Success, Reason: result.Reason})
	return s.finish(result)
}

// Remove takes back the committed region covering square. With no region
// there, the candidate is cleared instead.
func (s *Session) Remove(square engine.Coordinate) *ActionResult {
	result := &ActionResult{Action: ActionRemove, Success: true}

	region, color, ok := s.Game.RemoveRegion(square)
	var word string
	if ok {
		word = region.Word(s.Game.Board())
		result.Region = &RegionView{Squares: region.Sorted(), Word: word, Color: color}
		result.Message = fmt.Sprintf("removed %q", word)
	} else {
		s.Candidate.Clear()
		result.Message = "candidate cleared"
	}

	s.record(ActionEntry{Action: ActionRemove, Square: &square, Word: word, Success: true})
	return s.finish(result)
}

// Reclaim removes the committed region covering square and merges its
// squares into the candidate.
func (s *Session) Reclaim(square engine.Coordinate) *ActionResult {
	result := &ActionResult{Action: ActionReclaim}

	region, color, ok := s.Game.RemoveRegion(square)
	var word string
	if ok {
		word = region.Word(s.Game.Board())
		for sq := range region.Squares() {
			s.Candidate.AddSquare(sq)
		}
		result.Success = true
		result.Region = &RegionView{Squares: region.Sorted(), Word: word, Color: color}
		result.Message = fmt.Sprintf("reclaimed %q", word)
	} else {
		result.Message = fmt.Sprintf("no word at %s", square)
	}

	s.record(ActionEntry{Action: ActionReclaim, Square: &square, Word: word, Success: result.Success})
	return s.finish(result)
}

// State builds a snapshot of the board, committed regions and candidate
func (s *Session) State() *PuzzleState {
	board := s.Game.Board()
	rules := s.Game.Ruleset()

	state := &PuzzleState{
		PuzzleID: s.Puzzle.ID,
		Width:    board.Width(),
		Height:   board.Height(),
		Rows:     board.Rows(),
		MinSize:  rules.MinLength,
		MaxSize:  rules.MaxLength,
		Regions:  make([]RegionView, 0, s.Game.Len()),
		Covered:  s.Game.Covered(),
		Total:    board.Size(),
		Complete: s.Game.IsComplete(),
		Message:  s.Message,
	}

	for region, color := range s.Game.Regions() {
		state.Regions = append(state.Regions, RegionView{
			Squares: region.Sorted(),
			Word:    region.Word(board),
			Color:   color,
		})
	}

	state.Candidate = CandidateView{Squares: s.Candidate.Sorted()}
	if s.Candidate.Size() > 0 {
		_, err := s.Game.CheckRegion(s.Candidate)
		state.Candidate.Word = s.Candidate.Word(board)
		state.Candidate.Valid = err == nil
		state.Candidate.Status = CandidateStatus(state.Candidate.Word, err)
		state.Candidate.Reason, _ = engine.ReasonOf(err)
	}

	return state
}

// CandidateStatus renders the status line shown under the board: the quoted
// word when it would be accepted, otherwise the rejection message.
func CandidateStatus(word string, err error) string {
	if err == nil {
		return fmt.Sprintf("%q", word)
	}
	return statusMessage(err)
}

func statusMessage(err error) string {
	var cerr *engine.CheckRegionError
	if errors.As(err, &cerr) {
		return cerr.Message()
	}
	return err.Error()
}

// peekColor returns the colour the next committed region will get
func (s *Session) peekColor() Color {
	if len(s.Colors) == 0 {
		s.Colors = append(s.Colors, Palette...)
	}
	return s.Colors[len(s.Colors)-1]
}

func (s *Session) popColor() {
	s.Colors = s.Colors[:len(s.Colors)-1]
	if len(s.Colors) == 0 {
		s.Colors = append(s.Colors, Palette...)
	}
}

func (s *Session) record(entry ActionEntry) {
	entry.Number = len(s.History) + 1
	entry.Timestamp = time.Now().Unix()
	s.History = append(s.History, entry)
}

func (s *Session) finish(result *ActionResult) *ActionResult {
	s.Message = result.Message
	result.State = s.State()
	return result
}
