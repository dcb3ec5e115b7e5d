// Package terminal plays a Cell Tower session in a terminal using tcell.
//
// The board is framed and drawn one letter per cell. Committed words show in
// their colour on dark grey, the candidate is reversed and the cursor is
// underlined. The frame turns green when the puzzle is complete. Below the
// board the candidate status reads empty, the word itself when it would be
// accepted, or the reason it would be rejected.
//
// Keys:
//   - arrows or w/a/s/d move the cursor
//   - space adds the square to the candidate or removes it
//   - enter commits the candidate
//   - delete removes the word under the cursor, or clears the candidate
//   - insert moves the word under the cursor back into the candidate
//   - q or escape quits
//
// Usage:
//
//	screen, _ := tcell.NewScreen()
//	screen.Init()
//	defer screen.Fini()
//	err := terminal.New(screen, gameService, sessionID).Run(ctx)
package terminal
