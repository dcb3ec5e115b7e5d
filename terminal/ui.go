package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/mcp-training/celltower/game/engine"
	"github.com/wricardo/mcp-training/celltower/game/service"
)

const helpLine = "arrows/wasd move  space select  enter commit  del remove  ins reclaim  q quit"

var regionColors = map[service.Color]tcell.Color{
	service.Red:     tcell.ColorRed,
	service.Green:   tcell.ColorGreen,
	service.Yellow:  tcell.ColorYellow,
	service.Blue:    tcell.ColorBlue,
	service.Magenta: tcell.ColorFuchsia,
	service.Cyan:    tcell.ColorAqua,
}

// UI plays one session on a terminal screen
type UI struct {
	screen    tcell.Screen
	service   service.GameService
	sessionID string

	board  *engine.Board
	state  *service.PuzzleState
	cursor engine.Coordinate
}

// New creates a UI for sessionID. The caller owns the screen's Init and Fini.
func New(screen tcell.Screen, gameService service.GameService, sessionID string) *UI {
	return &UI{
		screen:    screen,
		service:   gameService,
		sessionID: sessionID,
	}
}

// Cursor returns the square under the cursor
func (u *UI) Cursor() engine.Coordinate {
	return u.cursor
}

// State returns the last state fetched from the service
func (u *UI) State() *service.PuzzleState {
	return u.state
}

// Run draws the board and handles key presses until the player quits or ctx
// is done.
func (u *UI) Run(ctx context.Context) error {
	if err := u.refresh(ctx); err != nil {
		return err
	}
	u.Draw()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			quit, err := u.HandleEvent(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			u.Draw()
		}
	}
}

// HandleEvent applies one terminal event and reports whether the player quit
func (u *UI) HandleEvent(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ctx, ev)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return false, nil
}

func (u *UI) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		u.move(engine.Up)
	case tcell.KeyDown:
		u.move(engine.Down)
	case tcell.KeyLeft:
		u.move(engine.Left)
	case tcell.KeyRight:
		u.move(engine.Right)
	case tcell.KeyEnter:
		return false, u.act(ctx, u.service.CommitCandidate)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return false, u.act(ctx, func(ctx context.Context, id string) (*service.ActionResult, error) {
			return u.service.RemoveRegion(ctx, id, u.cursor)
		})
	case tcell.KeyInsert:
		return false, u.act(ctx, func(ctx context.Context, id string) (*service.ActionResult, error) {
			return u.service.ReclaimRegion(ctx, id, u.cursor)
		})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true, nil
		case 'w', 'W':
			u.move(engine.Up)
		case 's', 'S':
			u.move(engine.Down)
		case 'a', 'A':
			u.move(engine.Left)
		case 'd', 'D':
			u.move(engine.Right)
		case ' ':
			return false, u.act(ctx, func(ctx context.Context, id string) (*service.ActionResult, error) {
				return u.service.ToggleSquare(ctx, id, u.cursor)
			})
		}
	}
	return false, nil
}

func (u *UI) move(direction string) {
	if u.board != nil {
		u.cursor = u.board.MoveWithin(u.cursor, direction)
	}
}

func (u *UI) act(ctx context.Context, action func(context.Context, string) (*service.ActionResult, error)) error {
	result, err := action(ctx, u.sessionID)
	if err != nil {
		return err
	}
	u.setState(result.State)
	return nil
}

func (u *UI) refresh(ctx context.Context) error {
	state, err := u.service.GetState(ctx, u.sessionID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", u.sessionID, err)
	}
	u.setState(state)
	return nil
}

func (u *UI) setState(state *service.PuzzleState) {
	if state == nil {
		return
	}
	if u.board == nil || u.state == nil || u.state.PuzzleID != state.PuzzleID {
		u.board = engine.NewBoard(state.Width, strings.Join(state.Rows, ""))
		u.cursor = engine.C(0, 0)
	}
	u.state = state
}

// Draw renders the board, frame and status lines
func (u *UI) Draw() {
	u.screen.Clear()
	if u.state == nil {
		u.screen.Show()
		return
	}

	width, height := u.state.Width, u.state.Height

	frame := tcell.StyleDefault
	if u.state.Complete {
		frame = frame.Foreground(tcell.ColorGreen)
	}
	u.drawFrame(width+2, height+2, frame)

	owners := make(map[engine.Coordinate]service.Color)
	for _, region := range u.state.Regions {
		for _, c := range region.Squares {
			owners[c] = region.Color
		}
	}
	candidate := make(map[engine.Coordinate]bool)
	for _, c := range u.state.Candidate.Squares {
		candidate[c] = true
	}

	for y, row := range u.state.Rows {
		for x, letter := range []rune(row) {
			c := engine.C(x, y)
			u.screen.SetContent(x+1, y+1, letter, nil, u.squareStyle(c, owners, candidate))
		}
	}

	u.drawText(0, height+2, tcell.StyleDefault, u.state.Candidate.Status)
	u.drawText(0, height+3, tcell.StyleDefault.Dim(true), u.state.Message)
	u.drawText(0, height+4, tcell.StyleDefault.Dim(true), helpLine)

	u.screen.Show()
}

// squareStyle layers region colour, candidate and cursor styles
func (u *UI) squareStyle(c engine.Coordinate, owners map[engine.Coordinate]service.Color, candidate map[engine.Coordinate]bool) tcell.Style {
	return SquareStyle(owners[c], candidate[c], c == u.cursor)
}

// SquareStyle is the style of one board square. color is empty for a free square.
func SquareStyle(color service.Color, inCandidate, underCursor bool) tcell.Style {
	style := tcell.StyleDefault
	if color != "" {
		style = style.Foreground(regionColors[color]).Background(tcell.ColorDarkGray)
	}
	if inCandidate {
		style = style.Reverse(true)
	}
	if underCursor {
		style = style.Underline(true)
	}
	return style
}

func (u *UI) drawFrame(w, h int, style tcell.Style) {
	for x := 1; x < w-1; x++ {
		u.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		u.screen.SetContent(x, h-1, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < h-1; y++ {
		u.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		u.screen.SetContent(w-1, y, tcell.RuneVLine, nil, style)
	}
	u.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	u.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, style)
	u.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, style)
	u.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, style)
}

func (u *UI) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		u.screen.SetContent(x+i, y, r, nil, style)
	}
}
