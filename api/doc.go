// Package api provides HTTP REST API handlers for the Cell Tower puzzle server.
//
// The api package implements:
//   - Session management endpoints
//   - Candidate editing and region commit endpoints
//   - Puzzle listing and upload
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"puzzle_id": "today"})
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Get specific session and its viewer count
//   - DELETE /api/sessions/{id} - Delete session
//
// Play:
//   - GET /api/sessions/{id}/state - Current board and candidate
//   - POST /api/sessions/{id}/toggle - Add or remove a square ({"x":1,"y":0})
//   - PUT /api/sessions/{id}/candidate - Replace the candidate ({"squares":[...]})
//   - DELETE /api/sessions/{id}/candidate - Clear the candidate
//   - POST /api/sessions/{id}/check - Validate the candidate
//   - POST /api/sessions/{id}/commit - Commit the candidate as a word
//   - POST /api/sessions/{id}/remove - Remove the word at a square
//   - POST /api/sessions/{id}/reclaim - Move the word at a square back into the candidate
//   - GET /api/sessions/{id}/history - Action history with pagination
//
// Puzzles:
//   - GET /api/puzzles - List available puzzles
//   - GET /api/puzzles/{id} - Puzzle summary
//   - POST /api/puzzles - Save a puzzle ({"id": "...", "puzzle": {...}})
//   - POST /api/puzzles/refresh - Drop cached puzzles and reload the dictionary
//
// Play actions always answer 200 with an ActionResult; a rejected word sets
// success to false and names the reason (too_short, not_contiguous, ...).
// After every play action the new state is pushed to /ws?session={id}; the
// session ID matches regardless of case.
// Deleting a session sends its viewers a final session_ended event.
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status derived from the service
// error: unknown sessions and puzzles are 404, invalid puzzles 400.
//
//	{
//	  "error": "session a1b2: session not found"
//	}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
