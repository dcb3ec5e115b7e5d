package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/mcp-training/celltower/game/engine"
	"github.com/wricardo/mcp-training/celltower/game/service"
	"github.com/wricardo/mcp-training/celltower/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Play
	api.HandleFunc("/sessions/{id}/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/sessions/{id}/toggle", s.handleToggle).Methods("POST")
	api.HandleFunc("/sessions/{id}/candidate", s.handleSetCandidate).Methods("PUT")
	api.HandleFunc("/sessions/{id}/candidate", s.handleClearCandidate).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/check", s.handleCheck).Methods("POST")
	api.HandleFunc("/sessions/{id}/commit", s.handleCommit).Methods("POST")
	api.HandleFunc("/sessions/{id}/remove", s.handleRemove).Methods("POST")
	api.HandleFunc("/sessions/{id}/reclaim", s.handleReclaim).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Puzzles
	api.HandleFunc("/puzzles", s.handleListPuzzles).Methods("GET")
	api.HandleFunc("/puzzles", s.handleSavePuzzle).Methods("POST")
	api.HandleFunc("/puzzles/refresh", s.handleRefreshPuzzles).Methods("POST")
	api.HandleFunc("/puzzles/{id}", s.handleGetPuzzle).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps service errors onto HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrPuzzleNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPuzzle):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, errorStatus(err), err.Error())
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PuzzleID string `json:"puzzle_id,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := s.service.CreateSession(r.Context(), req.PuzzleID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[SESSION] created %s puzzle=%s", session.ID, session.PuzzleID)
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	limit := total
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < total {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := struct {
		*service.SessionInfo
		Viewers int `json:"viewers"`
	}{SessionInfo: session}
	if s.hub != nil {
		resp.Viewers = s.hub.ClientCount(session.ID)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.EndSession(sessionID, "deleted")
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Play Handlers

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetState(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

type squareRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// decodeSquare reads a {"x":..,"y":..} body
func decodeSquare(r *http.Request) (engine.Coordinate, error) {
	var req squareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return engine.Coordinate{}, errors.New("invalid request body")
	}
	if req.X == nil || req.Y == nil {
		return engine.Coordinate{}, errors.New("x and y are required")
	}
	return engine.C(*req.X, *req.Y), nil
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	square, err := decodeSquare(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.play(w, r, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.ToggleSquare(ctx, id, square)
	})
}

func (s *Server) handleSetCandidate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Squares []engine.Coordinate `json:"squares"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.play(w, r, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.SetCandidate(ctx, id, req.Squares)
	})
}

func (s *Server) handleClearCandidate(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, s.service.ClearCandidate)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, s.service.CheckCandidate)
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, s.service.CommitCandidate)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	square, err := decodeSquare(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.play(w, r, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.RemoveRegion(ctx, id, square)
	})
}

func (s *Server) handleReclaim(w http.ResponseWriter, r *http.Request) {
	square, err := decodeSquare(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.play(w, r, func(ctx context.Context, id string) (*service.ActionResult, error) {
		return s.service.ReclaimRegion(ctx, id, square)
	})
}

// play runs a session action, broadcasts the new state and writes the result.
// Rejected actions are still 200; Success and Reason carry the outcome.
func (s *Server) play(w http.ResponseWriter, r *http.Request, action func(context.Context, string) (*service.ActionResult, error)) {
	sessionID := mux.Vars(r)["id"]

	result, err := action(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil && result.State != nil {
		s.hub.BroadcastToSession(sessionID, result.State)
	}

	// Compact server log for observability
	status := "FAIL"
	if result.Success {
		status = "OK"
	}
	covered, total := 0, 0
	if result.State != nil {
		covered, total = result.State.Covered, result.State.Total
	}
	log.Printf("[%s] session=%s status=%s covered=%d/%d reason=%s",
		strings.ToUpper(result.Action), sessionID, status, covered, total, result.Reason)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: service.DefaultPageSize,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Puzzle Handlers

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.service.ListPuzzles(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, puzzles)
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzleID := strings.TrimSuffix(mux.Vars(r)["id"], ".json")

	puzzle, err := s.service.GetPuzzle(r.Context(), puzzleID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, puzzle)
}

func (s *Server) handleSavePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string             `json:"id"`
		Puzzle *engine.PuzzleData `json:"puzzle"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "Puzzle id is required")
		return
	}
	if req.Puzzle == nil {
		respondError(w, http.StatusBadRequest, "Puzzle data is required")
		return
	}

	if err := s.service.SavePuzzle(r.Context(), req.ID, req.Puzzle); err != nil {
		respondError(w, errorStatus(err), fmt.Sprintf("Failed to save puzzle: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Puzzle saved successfully",
		"puzzle_id": req.ID,
	})
}

func (s *Server) handleRefreshPuzzles(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.service.RefreshPuzzles(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[PUZZLES] refreshed dictionary=%d default=%s", catalog.DictionaryWords, catalog.DefaultPuzzle)
	respondJSON(w, http.StatusOK, catalog)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket not available", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	state, err := s.service.GetState(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)

	// New viewers start from the current board
	s.hub.BroadcastToSession(sessionID, state)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
