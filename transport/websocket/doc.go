// Package websocket provides WebSocket transport for the Cell Tower puzzle server.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - State broadcasting after every play action
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. The hub's Run loop owns the client registry; each
// client has a read pump and a write pump goroutine.
//
// Message Protocol:
//
// Viewers only watch. Every outgoing frame is one JSON Message:
//
//	{"session_id": "a1b2", "event": "state_update", "state": {...PuzzleState}}
//
// When a session is deleted or expires its viewers receive one last frame
// and are then disconnected:
//
//	{"session_id": "a1b2", "event": "session_ended", "data": "expired"}
//
// Session Integration:
//
// Clients name the session they want to watch with the session query
// parameter (/ws?session=a1b2). Updates go only to clients of that session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package websocket
