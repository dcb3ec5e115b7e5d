package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultRemoteURL is where the published puzzles and dictionary live
const DefaultRemoteURL = "https://www.andrewt.net/puzzles/cell-tower"

// DictionaryFilename is the dictionary's name inside the puzzle directory
const DictionaryFilename = "words.json"

// Settings controls where puzzles and the dictionary come from
type Settings struct {
	PuzzleDir     string        `env:"CELLTOWER_PUZZLE_DIR"      envDefault:"puzzles"`
	Dictionary    string        `env:"CELLTOWER_DICTIONARY"`
	RemoteURL     string        `env:"CELLTOWER_REMOTE_URL"      envDefault:"https://www.andrewt.net/puzzles/cell-tower"`
	RemoteTimeout time.Duration `env:"CELLTOWER_REMOTE_TIMEOUT"  envDefault:"10s"`
	DefaultPuzzle string        `env:"CELLTOWER_DEFAULT_PUZZLE"`
	CacheRemote   bool          `env:"CELLTOWER_CACHE_REMOTE"    envDefault:"true"`
}

// LoadSettings reads Settings from the environment
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// DictionaryPath is the dictionary file, defaulting to words.json in the
// puzzle directory
func (s Settings) DictionaryPath() string {
	if s.Dictionary != "" {
		return s.Dictionary
	}
	return filepath.Join(s.PuzzleDir, DictionaryFilename)
}
