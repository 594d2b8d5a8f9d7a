// Package api exposes the game service over HTTP using gorilla/mux.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session ({"config_id": "classic"}, optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game operations:
//   - GET /api/sessions/{id}/state - Current board, piece, score and legality
//   - POST /api/sessions/{id}/shift - Move the piece ({"direction": "up|down|left|right"})
//   - POST /api/sessions/{id}/place - Place the piece where it is
//   - POST /api/sessions/{id}/reset - Start the session over
//   - POST /api/sessions/{id}/finish - Record the score and close ({"player": "ana"})
//
// Rulesets and scores:
//   - GET /api/configs - List rulesets
//   - POST /api/configs - Save a ruleset
//   - GET /api/configs/{name} - Get a ruleset
//   - GET /api/scores - Leaderboard (?limit=N)
//
// Observers:
//   - GET /ws?session={id} - WebSocket stream of state updates and events
//
// Errors are JSON objects with a single error field:
//
//	{"error": "session ab12: session not found"}
//
// Unknown sessions and rulesets map to 404, bad directions, rulesets and
// player names to 400, anything else to 500.
package api
