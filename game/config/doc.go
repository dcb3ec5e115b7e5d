// Package config provides puzzle loading for the Cell Tower puzzle server.
//
// The config package handles:
//   - Loading puzzles from JSON files in the puzzle directory
//   - Fetching published puzzles and the dictionary from the web
//   - Default and daily puzzle selection
//   - Puzzle discovery and listing
//
// Puzzle Format:
//
// Each puzzle is a JSON file named <id>.json:
//
//	{
//	  "width": 5, "height": 5, "minSize": 4, "maxSize": 8,
//	  "regions": [[[0,0],[1,0],[2,0],[2,1]], ...],
//	  "words": ["cell", ...]
//	}
//
// regions[i] lists, in order, the squares spelling words[i]. Together the
// regions must tile the board exactly. The dictionary (words.json) is a JSON
// array of strings; every word is upper-cased before use.
//
// Sources:
//
// LoadPuzzle looks in the in-memory cache, then the puzzle directory, then
// the remote source configured by Settings.RemoteURL. Remote puzzles are
// written back to the directory when Settings.CacheRemote is set.
//
// Daily Puzzle:
//
// The daily puzzle number counts days since 2022-05-06 UTC, starting at 1.
// TodayID computes it and Manager.Today loads it.
//
// Usage:
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager, err := config.NewManager(settings)
//
//	puzzle, err := manager.LoadPuzzle("120")
//	puzzles, err := manager.ListPuzzles()
package config
