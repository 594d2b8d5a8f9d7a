// Package session provides session management for Blockdoku.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Per-session random sources
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine instance and metadata like
// creation time and last access time.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters drawn from crypto/rand. Lookups are
// case-insensitive.
//
// Randomness:
//
// Every engine gets its own engine.RandomSource from the manager's SourceFunc.
// The default is time-seeded; FixedSeed makes games reproducible.
//
// Usage:
//
//	manager := session.NewManager(session.WithSourceFunc(session.FixedSeed(42)))
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
// Sessions live in memory only and are dropped by CleanupExpiredSessions
// once idle for longer than the configured TTL.
package session
