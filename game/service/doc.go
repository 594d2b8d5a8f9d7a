// Package service provides the business logic layer for Blockdoku.
//
// The service package implements:
//   - Multi-session game management
//   - Ruleset listing, loading and saving
//   - Shift and placement processing
//   - Final score recording on a scoreboard
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages ruleset loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Every call on one service is serialised by a mutex, so each
// engine only ever sees one caller at a time. Each session owns its own engine
// and random source.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr,
//		service.WithScoreboard(store),
//		service.WithLogger(logger),
//	)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameService.Shift(ctx, info.ID, "right")
//	result, err := gameService.Place(ctx, info.ID)
//
// Errors:
//
// Unknown sessions wrap ErrSessionNotFound and unknown direction names wrap
// ErrInvalidDirection; callers test them with errors.Is.
package service
