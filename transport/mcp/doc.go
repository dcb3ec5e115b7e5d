// Package mcp provides a Model Context Protocol server for the Cell Tower puzzle server.
//
// The mcp package implements:
//   - MCP tool definitions for puzzle operations
//   - A thin proxy that forwards every tool call to the REST API
//   - Text renderings of the grid suited to language models
//
// MCP Tools:
//   - create_session, get_session, list_sessions: session management
//   - puzzle_state: letter grid, owner grid, committed words and candidate
//   - toggle_square, set_candidate, clear_candidate: candidate editing
//   - check_candidate, commit_candidate: validation and commit
//   - remove_region, reclaim_region: undoing words
//   - describe_square, action_history, list_puzzles, game_instructions
//
// Transport Modes:
//
// The same MCPServer is served over stdio (celltower mcp) or mounted at
// /mcp on the HTTP server (celltower serve).
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
