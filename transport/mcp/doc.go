// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes one or more REST
// requests against the api package, and the JSON replies are rendered as
// plain text an agent can read. It holds no game state of its own.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - game_state: board grid with the piece overlaid, score and legality
//   - shift: move the piece, optionally several steps
//   - place: place the piece and report cleared regions
//   - reset_game, finish_session
//   - list_configs, leaderboard, game_instructions
//
// Transport modes:
//
//	// stdio, for local agents
//	server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer())
//
//	// single-message HTTP endpoint
//	mux.Handle("/mcp", mcp.NewClient(baseURL).HTTPHandler())
package mcp
