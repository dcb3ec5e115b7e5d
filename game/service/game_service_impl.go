package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/celltower/game/engine"
)

// TodayPuzzleID selects the daily puzzle when passed to CreateSession
const TodayPuzzleID = "today"

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession starts a session on a puzzle. An empty ID uses the default
// puzzle and "today" the daily one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	puzzle, err := s.resolvePuzzle(puzzleID)
	if err != nil {
		return nil, err
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", puzzle)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(sess), nil
}

func (s *gameServiceImpl) resolvePuzzle(puzzleID string) (*engine.Puzzle, error) {
	switch strings.ToLower(strings.TrimSpace(puzzleID)) {
	case "":
		puzzle := s.configs.GetDefault()
		if puzzle == nil {
			return nil, fmt.Errorf("no default puzzle configured: %w", ErrPuzzleNotFound)
		}
		return puzzle, nil
	case TodayPuzzleID:
		puzzle, err := s.configs.Today()
		if err != nil {
			return nil, fmt.Errorf("failed to load today's puzzle: %w", err)
		}
		return puzzle, nil
	}

	puzzle, err := s.configs.LoadPuzzle(puzzleID)
	if err != nil {
		// Provide helpful error message with available options
		if errors.Is(err, ErrPuzzleNotFound) {
			if available, listErr := s.configs.ListPuzzles(); listErr == nil && len(available) > 0 {
				ids := make([]string, 0, len(available))
				for _, p := range available {
					ids = append(ids, p.PuzzleID)
				}
				return nil, fmt.Errorf("puzzle '%s' not found, available puzzles: %v: %w", puzzleID, ids, err)
			}
		}
		return nil, fmt.Errorf("failed to load puzzle %s: %w", puzzleID, err)
	}
	return puzzle, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// ToggleSquare adds or removes one square of the candidate
func (s *gameServiceImpl) ToggleSquare(ctx context.Context, sessionID string, square engine.Coordinate) (*ActionResult, error) {
	return s.play(sessionID, func(sess *Session) *ActionResult {
		return sess.Toggle(square)
	})
}

// SetCandidate replaces the candidate with squares
func (s *gameServiceImpl) SetCandidate(ctx context.Context, sessionID string, squares []engine.Coordinate) (*ActionResult, error) {
	return s.play(sessionID, func(sess *Session) *ActionResult {
		return sess.SetCandidate(squares)
	})
}

// ClearCandidate empties the candidate
func (s *gameServiceImpl) ClearCandidate(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.play(sessionID, (*Session).ClearCandidate)
}

// CheckCandidate validates the candidate without committing it
func (s *gameServiceImpl) CheckCandidate(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.play(sessionID, (*Session).Check)
}

// CommitCandidate commits the candidate if it passes every rule
func (s *gameServiceImpl) CommitCandidate(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.play(sessionID, (*Session).Commit)
}

// RemoveRegion removes the committed region under square
func (s *gameServiceImpl) RemoveRegion(ctx context.Context, sessionID string, square engine.Coordinate) (*ActionResult, error) {
	return s.play(sessionID, func(sess *Session) *ActionResult {
		return sess.Remove(square)
	})
}

// ReclaimRegion moves the committed region under square back into the candidate
func (s *gameServiceImpl) ReclaimRegion(ctx context.Context, sessionID string, square engine.Coordinate) (*ActionResult, error) {
	return s.play(sessionID, func(sess *Session) *ActionResult {
		return sess.Reclaim(square)
	})
}

// play runs one action against a session under the write lock
func (s *gameServiceImpl) play(sessionID string, action func(*Session) *ActionResult) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return action(sess), nil
}

// GetState retrieves the current puzzle state
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*PuzzleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.State(), nil
}

// GetHistory returns the paginated action log
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.History
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	actions := []ActionEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else if start < total {
		actions = append(actions, history[start:end]...)
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListPuzzles returns the puzzles available locally
func (s *gameServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.configs.ListPuzzles()
}

// GetPuzzle loads a puzzle and summarises it
func (s *gameServiceImpl) GetPuzzle(ctx context.Context, puzzleID string) (*PuzzleInfo, error) {
	puzzle, err := s.resolvePuzzle(puzzleID)
	if err != nil {
		return nil, err
	}
	return PuzzleSummary(puzzle), nil
}

// SavePuzzle validates and stores a puzzle definition
func (s *gameServiceImpl) SavePuzzle(ctx context.Context, puzzleID string, data *engine.PuzzleData) error {
	if err := engine.ValidatePuzzle(data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPuzzle, err)
	}
	return s.configs.SavePuzzle(puzzleID, data)
}

// RefreshPuzzles drops cached puzzles and reloads the dictionary. Sessions
// already in progress keep the puzzle they started with.
func (s *gameServiceImpl) RefreshPuzzles(ctx context.Context) (*CatalogInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.configs.RefreshCache(); err != nil {
		return nil, fmt.Errorf("failed to refresh puzzles: %w", err)
	}

	info := &CatalogInfo{DictionaryWords: s.configs.DictionarySize()}
	if puzzle := s.configs.GetDefault(); puzzle != nil {
		info.DefaultPuzzle = puzzle.ID
	}
	return info, nil
}

// getSession looks a session up and touches it. Caller must hold the write
// lock, since touching updates LastAccessedAt.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.Touch(sessionID)
	return sess, nil
}

// PuzzleSummary describes a loaded puzzle without its answers
func PuzzleSummary(p *engine.Puzzle) *PuzzleInfo {
	return &PuzzleInfo{
		PuzzleID:  p.ID,
		Width:     p.Data.Width,
		Height:    p.Data.Height,
		MinSize:   p.Data.MinSize,
		MaxSize:   p.Data.MaxSize,
		WordCount: len(p.Data.Words),
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		PuzzleID:       sess.Puzzle.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          sess.State(),
	}
}
