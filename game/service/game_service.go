package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/celltower/game/engine"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrPuzzleNotFound       = errors.New("puzzle not found")
	ErrInvalidPuzzle        = errors.New("invalid puzzle")
)

// GameService defines all puzzle operations exposed to transports
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Candidate editing
	ToggleSquare(ctx context.Context, sessionID string, square engine.Coordinate) (*ActionResult, error)
	SetCandidate(ctx context.Context, sessionID string, squares []engine.Coordinate) (*ActionResult, error)
	ClearCandidate(ctx context.Context, sessionID string) (*ActionResult, error)

	// Region operations
	CheckCandidate(ctx context.Context, sessionID string) (*ActionResult, error)
	CommitCandidate(ctx context.Context, sessionID string) (*ActionResult, error)
	RemoveRegion(ctx context.Context, sessionID string, square engine.Coordinate) (*ActionResult, error)
	ReclaimRegion(ctx context.Context, sessionID string, square engine.Coordinate) (*ActionResult, error)

	// State
	GetState(ctx context.Context, sessionID string) (*PuzzleState, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	GetPuzzle(ctx context.Context, puzzleID string) (*PuzzleInfo, error)
	SavePuzzle(ctx context.Context, puzzleID string, data *engine.PuzzleData) error
	RefreshPuzzles(ctx context.Context) (*CatalogInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, puzzle *engine.Puzzle) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	Touch(id string) error
}

// ConfigManager handles puzzle loading
type ConfigManager interface {
	LoadPuzzle(id string) (*engine.Puzzle, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	GetDefault() *engine.Puzzle
	Today() (*engine.Puzzle, error)
	SavePuzzle(id string, data *engine.PuzzleData) error
	RefreshCache() error
	DictionarySize() int
}

// Session represents an active puzzle being solved
type Session struct {
	ID             string
	Puzzle         *engine.Puzzle
	Game           *engine.Game[Color]
	Candidate      *engine.Region
	Colors         []Color
	History        []ActionEntry
	Message        string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewSession starts a fresh game for puzzle
func NewSession(id string, puzzle *engine.Puzzle) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		Puzzle:         puzzle,
		Game:           engine.NewGame[Color](puzzle.Board, puzzle.Ruleset),
		Candidate:      engine.NewRegion(),
		Colors:         append([]Color(nil), Palette...),
		History:        []ActionEntry{},
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}
