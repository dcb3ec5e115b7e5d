// Package service provides the business logic layer for the Cell Tower puzzle.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Puzzle loading through a ConfigManager
//   - Candidate editing, checking and committing
//   - Action history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level puzzle operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads puzzles from disk, the network, or the daily schedule.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP/terminal)
// and the engine. Each Session owns one engine.Game labelled with a Color, plus
// the candidate region the player is building. The engine never sees the
// candidate until it is checked or committed.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager(settings)
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "today")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameService.SetCandidate(ctx, info.ID, []engine.Coordinate{{X: 0, Y: 0}, {X: 0, Y: 1}})
//	result, err := gameService.CommitCandidate(ctx, info.ID)
//
// Colours:
//
// Committed regions take their colour from the end of Palette; when the
// palette runs out it is refilled.
package service
