// Package websocket pushes live game updates to observers of a session.
//
// A single Hub goroutine owns the registry of connected clients, keyed by
// session ID. Connections, disconnections and broadcasts all reach it through
// channels, so callers on HTTP handler goroutines never touch the registry.
//
// Frames are JSON Message values:
//
//	{"session_id":"ab12","event":"state_update","game_state":{...}}
//	{"session_id":"ab12","event":"cleared","data":{"rows":[4],"awarded":9}}
//
// state_update carries the full snapshot after every shift, placement or
// reset. The placed, cleared and reset events mirror the game service events.
// Observers are read-only; anything they send is discarded.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// A client whose send buffer fills up is dropped rather than slowing the hub.
package websocket
