package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/celltower/game/engine"
	"github.com/wricardo/mcp-training/celltower/game/service"
)

var (
	ErrPuzzleNotFound = service.ErrPuzzleNotFound
	ErrInvalidPuzzle  = service.ErrInvalidPuzzle
)

// dailyEpoch is the day before puzzle 1 was published
var dailyEpoch = time.Date(2022, time.May, 6, 0, 0, 0, 0, time.UTC)

// TodayID returns the number of the daily puzzle published on now's UTC date
func TodayID(now time.Time) string {
	days := int(now.UTC().Sub(dailyEpoch) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return strconv.Itoa(days + 1)
}

// Manager handles puzzle loading and caching
type Manager struct {
	settings      Settings
	remote        *RemoteSource
	dictionary    []string
	defaultPuzzle *engine.Puzzle
	puzzles       map[string]*engine.Puzzle
	now           func() time.Time
	mu            sync.RWMutex
}

// NewManager creates a new puzzle manager
func NewManager(settings Settings) (*Manager, error) {
	// A remote source can fill an empty directory; offline it must exist
	if _, err := os.Stat(settings.PuzzleDir); os.IsNotExist(err) {
		if settings.RemoteURL == "" {
			return nil, fmt.Errorf("puzzle directory does not exist: %s", settings.PuzzleDir)
		}
		if err := os.MkdirAll(settings.PuzzleDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create puzzle directory: %w", err)
		}
	}

	m := &Manager{
		settings: settings,
		puzzles:  make(map[string]*engine.Puzzle),
		now:      time.Now,
	}
	if settings.RemoteURL != "" {
		m.remote = NewRemoteSource(settings.RemoteURL, settings.RemoteTimeout)
	}

	if err := m.loadDictionary(); err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	if err := m.loadDefaultPuzzle(); err != nil {
		return nil, fmt.Errorf("failed to load default puzzle: %w", err)
	}

	return m, nil
}

// LoadPuzzle loads a puzzle by ID from the cache, the puzzle directory, or
// the remote source, in that order
func (m *Manager) LoadPuzzle(id string) (*engine.Puzzle, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("invalid puzzle id %q: %w", id, ErrPuzzleNotFound)
	}

	m.mu.RLock()
	// Check cache first
	if puzzle, exists := m.puzzles[id]; exists {
		m.mu.RUnlock()
		return puzzle, nil
	}
	dictionary := m.dictionary
	m.mu.RUnlock()

	data, remote, err := m.readPuzzle(id)
	if err != nil {
		return nil, err
	}

	puzzle, err := engine.LoadPuzzle(id, data, dictionary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	if remote && m.settings.CacheRemote {
		if err := os.WriteFile(m.puzzlePath(id), data, 0644); err != nil {
			log.Printf("Warning: failed to cache puzzle %s: %v", id, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have loaded it meanwhile
	if existing, exists := m.puzzles[id]; exists {
		return existing, nil
	}
	m.puzzles[id] = puzzle
	return puzzle, nil
}

// readPuzzle returns the raw puzzle JSON and whether it came from the remote source
func (m *Manager) readPuzzle(id string) ([]byte, bool, error) {
	data, err := os.ReadFile(m.puzzlePath(id))
	if err == nil {
		return data, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, fmt.Errorf("failed to read puzzle file: %w", err)
	}

	if m.remote == nil {
		return nil, false, ErrPuzzleNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout())
	defer cancel()

	data, err = m.remote.FetchPuzzle(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Today loads the daily puzzle for the current date
func (m *Manager) Today() (*engine.Puzzle, error) {
	return m.LoadPuzzle(TodayID(m.now()))
}

// ListPuzzles returns information about all puzzles in the puzzle directory
func (m *Manager) ListPuzzles() ([]*service.PuzzleInfo, error) {
	entries, err := os.ReadDir(m.settings.PuzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	puzzles := []*service.PuzzleInfo{}
	dictionary := filepath.Base(m.settings.DictionaryPath())

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") || entry.Name() == dictionary {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")

		puzzle, err := m.LoadPuzzle(id)
		if err != nil {
			// Skip invalid puzzles
			continue
		}

		info := service.PuzzleSummary(puzzle)
		info.Filename = entry.Name()
		puzzles = append(puzzles, info)
	}

	return puzzles, nil
}

// GetDefault returns the default puzzle, or nil when none is available
func (m *Manager) GetDefault() *engine.Puzzle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPuzzle
}

// SetDefault sets the default puzzle by ID
func (m *Manager) SetDefault(id string) error {
	puzzle, err := m.LoadPuzzle(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPuzzle = puzzle
	return nil
}

// RefreshCache drops cached puzzles and reloads the dictionary and default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.puzzles = make(map[string]*engine.Puzzle)
	m.mu.Unlock()

	if err := m.loadDictionary(); err != nil {
		return err
	}
	return m.loadDefaultPuzzle()
}

// SavePuzzle validates a puzzle and writes it to the puzzle directory
func (m *Manager) SavePuzzle(id string, data *engine.PuzzleData) error {
	id = strings.TrimSuffix(id, ".json")
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w: invalid puzzle id %q", ErrInvalidPuzzle, id)
	}

	// Validate puzzle before saving
	if err := engine.ValidatePuzzle(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	m.mu.RLock()
	dictionary := m.dictionary
	m.mu.RUnlock()

	puzzle, err := engine.LoadPuzzle(id, raw, dictionary)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	if err := os.WriteFile(m.puzzlePath(id), raw, 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.puzzles[id] = puzzle
	m.mu.Unlock()

	return nil
}

// DictionarySize returns the number of dictionary entries loaded
func (m *Manager) DictionarySize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.dictionary)
}

// loadDictionary reads the dictionary file, falling back to the remote
// source. A missing dictionary leaves only each puzzle's own words playable.
func (m *Manager) loadDictionary() error {
	path := m.settings.DictionaryPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && m.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout())
		defer cancel()

		data, err = m.remote.FetchDictionary(ctx)
		if err == nil && m.settings.CacheRemote {
			if werr := os.WriteFile(path, data, 0644); werr != nil {
				log.Printf("Warning: failed to cache dictionary: %v", werr)
			}
		}
	}

	var words []string
	switch {
	case err == nil:
		if words, err = engine.ParseDictionary(data); err != nil {
			return err
		}
	case os.IsNotExist(err), errors.Is(err, ErrPuzzleNotFound):
		log.Printf("Warning: no dictionary at %s, only solution words will be accepted", path)
	default:
		log.Printf("Warning: failed to fetch dictionary: %v", err)
	}

	m.mu.Lock()
	m.dictionary = words
	m.mu.Unlock()
	return nil
}

// loadDefaultPuzzle picks the configured default, or the first puzzle on disk
func (m *Manager) loadDefaultPuzzle() error {
	if m.settings.DefaultPuzzle != "" {
		return m.SetDefault(m.settings.DefaultPuzzle)
	}

	puzzles, err := m.ListPuzzles()
	if err != nil || len(puzzles) == 0 {
		// No default; sessions must name a puzzle
		return nil
	}

	return m.SetDefault(puzzles[0].PuzzleID)
}

func (m *Manager) puzzlePath(id string) string {
	return filepath.Join(m.settings.PuzzleDir, id+".json")
}

func (m *Manager) timeout() time.Duration {
	if m.settings.RemoteTimeout > 0 {
		return m.settings.RemoteTimeout
	}
	return 10 * time.Second
}
