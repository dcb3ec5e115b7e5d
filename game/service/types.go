package service

import (
	"time"

	"github.com/wricardo/mcp-training/celltower/game/engine"
)

// Color labels a committed region for display
type Color string

const (
	Red     Color = "red"
	Green   Color = "green"
	Yellow  Color = "yellow"
	Blue    Color = "blue"
	Magenta Color = "magenta"
	Cyan    Color = "cyan"
)

// Palette is the order colours are handed out to committed regions
var Palette = []Color{Red, Green, Yellow, Blue, Magenta, Cyan}

// Action names recorded in session history
const (
	ActionToggle    = "toggle"
	ActionSet       = "set_candidate"
	ActionClear     = "clear_candidate"
	ActionCheck     = "check"
	ActionCommit    = "commit"
	ActionRemove    = "remove"
	ActionReclaim   = "reclaim"
	DefaultPageSize = 20
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string       `json:"id"`
	PuzzleID       string       `json:"puzzle_id"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	State          *PuzzleState `json:"state"`
}

// PuzzleState is a read-only snapshot of a session's board
type PuzzleState struct {
	PuzzleID  string        `json:"puzzle_id"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Rows      []string      `json:"rows"`
	MinSize   int           `json:"min_size"`
	MaxSize   int           `json:"max_size"`
	Regions   []RegionView  `json:"regions"`
	Candidate CandidateView `json:"candidate"`
	Covered   int           `json:"covered"`
	Total     int           `json:"total"`
	Complete  bool          `json:"complete"`
	Message   string        `json:"message"`
}

// RegionView describes one committed region
type RegionView struct {
	Squares []engine.Coordinate `json:"squares"`
	Word    string              `json:"word"`
	Color   Color               `json:"color"`
}

// CandidateView describes the region the player is building
type CandidateView struct {
	Squares []engine.Coordinate `json:"squares"`
	Word    string              `json:"word,omitempty"`
	Valid   bool                `json:"valid"`
	Status  string              `json:"status,omitempty"`
	Reason  engine.Reason       `json:"reason,omitempty"`
}

// ActionResult contains the outcome of a play action
type ActionResult struct {
	Action  string        `json:"action"`
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Reason  engine.Reason `json:"reason,omitempty"`
	Region  *RegionView   `json:"region,omitempty"`
	State   *PuzzleState  `json:"state"`
}

// ActionEntry is one line of a session's action log
type ActionEntry struct {
	Number    int                 `json:"number"`
	Action    string              `json:"action"`
	Square    *engine.Coordinate  `json:"square,omitempty"`
	Squares   []engine.Coordinate `json:"squares,omitempty"`
	Word      string              `json:"word,omitempty"`
	Success   bool                `json:"success"`
	Reason    engine.Reason       `json:"reason,omitempty"`
	Timestamp int64               `json:"timestamp"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []ActionEntry `json:"actions"`
	TotalActions int           `json:"total_actions"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	TotalPages   int           `json:"total_pages"`
	HasNext      bool          `json:"has_next"`
	HasPrevious  bool          `json:"has_previous"`
}

// PuzzleInfo summarises a puzzle without revealing its answers
type PuzzleInfo struct {
	Filename  string `json:"filename,omitempty"`
	PuzzleID  string `json:"puzzle_id"` // The identifier to use for session creation
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MinSize   int    `json:"min_size"`
	MaxSize   int    `json:"max_size"`
	WordCount int    `json:"word_count"` // Words in the intended solution
}

// CatalogInfo reports what the puzzle store holds after a refresh
type CatalogInfo struct {
	DictionaryWords int    `json:"dictionary_words"`
	DefaultPuzzle   string `json:"default_puzzle,omitempty"`
}
