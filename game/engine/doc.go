// Package engine provides the core puzzle logic for the Cell Tower word game.
//
// The engine package implements:
//   - Board squares and 4-directional adjacency
//   - Regions: sets of squares that spell a word in reading order
//   - Placement validation (size, bounds, overlap, contiguity, dictionary)
//   - The committed-region state of a game and its completion test
//   - Loading published puzzle definitions into a board and ruleset
//
// Core Types:
//
// Board is an immutable grid of letters addressed by Coordinate. Region is a
// mutable set of coordinates. Ruleset carries the size limits and the word
// list. Game[L] checks candidate regions and owns the committed ones, each
// tagged with a caller-defined label L.
//
// Usage:
//
//	board := engine.NewBoard(3, "ABCDEFGHI")
//	rules := engine.NewRuleset(2, 4, []string{"AD"})
//	game := engine.NewGame[string](board, rules)
//
//	candidate := engine.NewRegion(engine.C(0, 0), engine.C(0, 1))
//	if err := game.Commit(candidate, "red"); err != nil {
//		var cerr *engine.CheckRegionError
//		if errors.As(err, &cerr) {
//			fmt.Println(cerr.Message())
//		}
//	}
//
// Rules:
//
// A candidate is checked in a fixed order and the first failing rule is
// reported: too short, too long, out of bounds, overlapping a committed
// region, not contiguous, not in the dictionary. The word a region spells is
// its letters read top-to-bottom, then left-to-right. The puzzle is solved
// when committed regions cover every square.
package engine
