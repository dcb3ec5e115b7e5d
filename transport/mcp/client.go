package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/celltower/game/engine"
	"github.com/wricardo/mcp-training/celltower/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Cell Tower",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Cell Tower - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PUZZLE OBJECTIVE:
Split the letter grid into words. Every square belongs to exactly one word,
every word is a connected group of squares read in reading order.

AVAILABLE TOOLS:
- create_session: Start a puzzle (puzzle_id optional, "today" for the daily puzzle)
- puzzle_state: Show the grid, committed words and the candidate
- toggle_square: Add or remove one square from the candidate
- set_candidate: Replace the candidate with a list of squares
- clear_candidate: Empty the candidate
- check_candidate: Validate the candidate without committing
- commit_candidate: Commit the candidate as a word
- remove_region: Remove the word covering a square
- reclaim_region: Move the word covering a square back into the candidate
- describe_square: Letter and owner of one square
- action_history: View past actions
- list_sessions / get_session: Session management
- list_puzzles: Available puzzles
- game_instructions: Full rules

NOTE: Squares are {"x": column, "y": row}, zero-based from the top-left.`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func squareProperties() map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionProperty(),
		"x": map[string]interface{}{
			"type":        "integer",
			"description": "Column of the square (0-based)",
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"description": "Row of the square (0-based)",
		},
	}
}

func sessionOnly() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": sessionProperty(),
		},
		Required: []string{"session_id"},
	}
}

func squareSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: squareProperties(),
		Required:   []string{"session_id", "x", "y"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session with optional puzzle selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle to play (optional, \"today\" for the daily puzzle)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionOnly(),
	}, c.handleGetSession)

	// Play
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "puzzle_state",
		Description: "Get the current grid, committed words and candidate",
		InputSchema: sessionOnly(),
	}, c.handlePuzzleState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_square",
		Description: "Add a free square to the candidate, or remove it if it is already selected",
		InputSchema: squareSchema(),
	}, c.handleToggleSquare)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_candidate",
		Description: "Replace the candidate with the given squares",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"squares": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x": map[string]interface{}{"type": "integer"},
							"y": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x", "y"},
					},
					"description": "Squares of the new candidate",
				},
			},
			Required: []string{"session_id", "squares"},
		},
	}, c.handleSetCandidate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_candidate",
		Description: "Empty the candidate",
		InputSchema: sessionOnly(),
	}, c.handleClearCandidate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "check_candidate",
		Description: "Validate the candidate without committing it",
		InputSchema: sessionOnly(),
	}, c.handleCheckCandidate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "commit_candidate",
		Description: "Commit the candidate as a word if it is valid",
		InputSchema: sessionOnly(),
	}, c.handleCommitCandidate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_region",
		Description: "Remove the committed word covering a square",
		InputSchema: squareSchema(),
	}, c.handleRemoveRegion)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reclaim_region",
		Description: "Remove the committed word covering a square and add its squares to the candidate",
		InputSchema: squareSchema(),
	}, c.handleReclaimRegion)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_square",
		Description: "Get the letter at a square and the word covering it, if any",
		InputSchema: squareSchema(),
	}, c.handleDescribeSquare)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	// Puzzles
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of Cell Tower and tips for solving",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool arguments, tolerating a missing map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

func squareArg(args map[string]interface{}) (engine.Coordinate, error) {
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return engine.Coordinate{}, fmt.Errorf("x and y are required integers")
	}
	return engine.C(x, y), nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	puzzleID, _ := args["puzzle_id"].(string)

	body := map[string]string{}
	if puzzleID != "" {
		body["puzzle_id"] = puzzleID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPuzzle: %s\n\n%s",
		session.ID, session.PuzzleID, formatPuzzleState(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		progress := ""
		if s.State != nil {
			progress = fmt.Sprintf(", Covered: %d/%d", s.State.Covered, s.State.Total)
		}
		fmt.Fprintf(&b, "- %s (Puzzle: %s%s, Created: %s)\n",
			s.ID, s.PuzzleID, progress, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handlePuzzleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state service.PuzzleState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPuzzleState(&state)), nil
}

// playAction sends a play request and formats the ActionResult
func (c *Client) playAction(ctx context.Context, method, sessionID, action string, body interface{}) (*mcp.CallToolResult, error) {
	var result service.ActionResult
	path := fmt.Sprintf("/api/sessions/%s/%s", sessionID, action)
	if err := c.apiCall(ctx, method, path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) squareAction(ctx context.Context, request mcp.CallToolRequest, action string) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	square, err := squareArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return c.playAction(ctx, "POST", sessionID, action, square)
}

func (c *Client) handleToggleSquare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.squareAction(ctx, request, "toggle")
}

func (c *Client) handleRemoveRegion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.squareAction(ctx, request, "remove")
}

func (c *Client) handleReclaimRegion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.squareAction(ctx, request, "reclaim")
}

func (c *Client) handleSetCandidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	raw, _ := args["squares"].([]interface{})
	squares := make([]engine.Coordinate, 0, len(raw))
	for i, item := range raw {
		obj, _ := item.(map[string]interface{})
		square, err := squareArg(obj)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("square %d: %v", i, err)), nil
		}
		squares = append(squares, square)
	}

	body := map[string]interface{}{"squares": squares}
	return c.playAction(ctx, "PUT", sessionID, "candidate", body)
}

func (c *Client) handleClearCandidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.playAction(ctx, "DELETE", sessionID, "candidate", nil)
}

func (c *Client) handleCheckCandidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.playAction(ctx, "POST", sessionID, "check", nil)
}

func (c *Client) handleCommitCandidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.playAction(ctx, "POST", sessionID, "commit", nil)
}

func (c *Client) handleDescribeSquare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	square, err := squareArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state service.PuzzleState
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeSquare(&state, square)), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	path := fmt.Sprintf("/api/sessions/%s/history", sessionID)
	params := []string{}
	if page, ok := intArg(args, "page"); ok && page > 0 {
		params = append(params, fmt.Sprintf("page=%d", page))
	}
	if limit, ok := intArg(args, "limit"); ok && limit > 0 {
		params = append(params, fmt.Sprintf("limit=%d", limit))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var puzzles []service.PuzzleInfo
	if err := c.apiCall(ctx, "GET", "/api/puzzles", nil, &puzzles); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Puzzles (%d):\n\n", len(puzzles))
	for _, p := range puzzles {
		fmt.Fprintf(&b, "- %s: %dx%d, %d words of %d-%d letters\n",
			p.PuzzleID, p.Width, p.Height, p.WordCount, p.MinSize, p.MaxSize)
	}
	b.WriteString("\nUse puzzle_id \"today\" for the daily puzzle.")

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Cell Tower - Complete Instructions

PUZZLE OBJECTIVE:
Cover the whole letter grid with words. Each square belongs to exactly one word.

RULES:
- A word is a group of squares joined edge to edge (no diagonals)
- Its letters are read in reading order: top row first, left to right
- Its length must be between the puzzle's minimum and maximum
- It must be a dictionary word or one of the puzzle's own words
- Words may not overlap

READING ORDER EXAMPLE:
  Grid      Squares (0,0) (1,0) (0,1) (1,1) spell "GOIT"
  G O       Squares (1,0) (1,1) spell "OT"
  I T       The shape decides which squares, the order is always fixed

PLAYING:
1. Build a candidate with toggle_square or set_candidate
2. check_candidate tells you whether it would be accepted and why not
3. commit_candidate turns it into a word and gives it a colour
4. remove_region frees a word's squares; reclaim_region puts them back in the candidate
5. The puzzle is complete when every square is covered

REJECTION REASONS:
- too_short / too_long: wrong number of squares
- out_of_bounds: a square is off the grid
- overlapping: a square already belongs to a word
- not_contiguous: the squares are not connected
- not_in_dictionary: the letters do not spell a known word

STRATEGY:
- Corners and edges have few neighbours, start there
- Squares with a single free neighbour must share its word
- A committed word can always be reclaimed if it blocks the rest of the grid

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously
- Each session has a unique 4-character ID
- Viewers can watch a session live at /ws?session={id}`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPuzzle: %s\nCreated: %s\n\n%s",
		session.ID, session.PuzzleID,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatPuzzleState(session.State))
}

// ownerGrid marks each square with the index letter of its word, '*' for
// the candidate and '.' when free
func ownerGrid(state *service.PuzzleState) [][]byte {
	grid := make([][]byte, state.Height)
	for y := range grid {
		grid[y] = bytes.Repeat([]byte{'.'}, state.Width)
	}

	mark := func(c engine.Coordinate, b byte) {
		if c.Y >= 0 && c.Y < state.Height && c.X >= 0 && c.X < state.Width {
			grid[c.Y][c.X] = b
		}
	}

	for i, region := range state.Regions {
		for _, c := range region.Squares {
			mark(c, regionMarker(i))
		}
	}
	for _, c := range state.Candidate.Squares {
		mark(c, '*')
	}

	return grid
}

func regionMarker(i int) byte {
	const markers = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return markers[i%len(markers)]
}

func columnHeader(width int) string {
	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < width; x++ {
		b.WriteByte(byte('0' + x%10))
	}
	return b.String()
}

func formatPuzzleState(state *service.PuzzleState) string {
	if state == nil {
		return "No puzzle state available"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Puzzle: %s | Grid: %dx%d | Words: %d-%d letters | Covered: %d/%d\n\n",
		state.PuzzleID, state.Width, state.Height, state.MinSize, state.MaxSize, state.Covered, state.Total)

	owners := ownerGrid(state)
	header := columnHeader(state.Width)
	fmt.Fprintf(&b, "%-*s   %s\n", state.Width+3, header, header)
	for y, row := range state.Rows {
		fmt.Fprintf(&b, "%2d %s   %2d %s\n", y, row, y, owners[y])
	}

	if len(state.Regions) > 0 {
		b.WriteString("\nWords:\n")
		for i, region := range state.Regions {
			fmt.Fprintf(&b, "%c. %s (%s) %s\n", regionMarker(i), region.Word, region.Color, formatSquares(region.Squares))
		}
	}

	if len(state.Candidate.Squares) > 0 {
		fmt.Fprintf(&b, "\nCandidate: %s %s\n", state.Candidate.Word, formatSquares(state.Candidate.Squares))
		if state.Candidate.Valid {
			b.WriteString("Candidate is a valid word\n")
		} else {
			fmt.Fprintf(&b, "Candidate status: %s\n", state.Candidate.Status)
		}
	}

	if state.Complete {
		b.WriteString("\n🎉 PUZZLE COMPLETE!")
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatSquares(squares []engine.Coordinate) string {
	parts := make([]string, len(squares))
	for i, c := range squares {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder

	if result.Success {
		fmt.Fprintf(&b, "✓ %s: %s\n", result.Action, result.Message)
	} else {
		fmt.Fprintf(&b, "✗ %s failed: %s\n", result.Action, result.Message)
		if result.Reason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", result.Reason)
		}
	}

	if result.Region != nil {
		fmt.Fprintf(&b, "Word: %s (%s)\n", result.Region.Word, result.Region.Color)
	}

	b.WriteString("\n")
	b.WriteString(formatPuzzleState(result.State))
	return b.String()
}

func describeSquare(state *service.PuzzleState, square engine.Coordinate) string {
	if square.X < 0 || square.Y < 0 || square.X >= state.Width || square.Y >= state.Height {
		return fmt.Sprintf("Square %s is outside the %dx%d grid", square, state.Width, state.Height)
	}

	letter := state.Rows[square.Y][square.X]
	desc := fmt.Sprintf("Square %s: letter %c\n", square, letter)

	for i, region := range state.Regions {
		for _, c := range region.Squares {
			if c == square {
				return desc + fmt.Sprintf("Covered by word %c. %s (%s)", regionMarker(i), region.Word, region.Color)
			}
		}
	}

	for _, c := range state.Candidate.Squares {
		if c == square {
			return desc + "Part of the candidate"
		}
	}

	return desc + "Free"
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action History (Page %d/%d) | Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, entry := range history.Actions {
		status := "✓"
		if !entry.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s", entry.Number, entry.Action, status)
		if entry.Square != nil {
			fmt.Fprintf(&b, " at %s", entry.Square)
		}
		if entry.Word != "" {
			fmt.Fprintf(&b, " %q", entry.Word)
		}
		if entry.Reason != "" {
			fmt.Fprintf(&b, " [%s]", entry.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}
