package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/blockdoku/game/engine"
	"github.com/wricardo/blockdoku/game/scoreboard"
	"github.com/wricardo/blockdoku/game/service"
)

const (
	ServerName    = "Blockdoku"
	ServerVersion = "1.0.0"

	// maxSteps bounds the repeat count of a single shift call
	maxSteps = engine.MaxOffset
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API at baseURL
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Blockdoku - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Place 3x3 pieces on a 9x9 board. Every row, column or 3x3 block you fill
completely is cleared and scores 9 points.

AVAILABLE TOOLS:
- create_session: Start a new game
- game_state: Show the board, the active piece and the score
- shift: Move the active piece up/down/left/right
- place: Place the active piece where it is
- reset_game: Start the session over
- finish_session: Record the final score and close the session
- list_sessions, get_session: Inspect sessions
- list_configs: List rulesets
- leaderboard: Best recorded scores
- game_instructions: Full rules and strategy notes`),
	)

	c.registerTools()
}

func sessionParam() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID"))
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new game session with optional ruleset selection"),
		mcp.WithString("config_id", mcp.Description("Ruleset to use (optional, see list_configs)")),
	), c.handleCreateSession)

	c.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active game sessions"),
	), c.handleListSessions)

	c.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get details of a specific session"),
		sessionParam(),
	), c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the board, the active piece and the score"),
		sessionParam(),
	), c.handleGameState)

	c.mcpServer.AddTool(mcp.NewTool("shift",
		mcp.WithDescription("Move the active piece. The piece stops at the board edge and may pass over placed cells."),
		sessionParam(),
		mcp.WithString("direction", mcp.Required(), mcp.Enum("up", "down", "left", "right")),
		mcp.WithNumber("steps", mcp.Description(fmt.Sprintf("Repeat the shift 1-%d times (default 1)", maxSteps))),
	), c.handleShift)

	c.mcpServer.AddTool(mcp.NewTool("place",
		mcp.WithDescription("Place the active piece at its current position"),
		sessionParam(),
	), c.handlePlace)

	c.mcpServer.AddTool(mcp.NewTool("reset_game",
		mcp.WithDescription("Reset the session to a fresh board"),
		sessionParam(),
	), c.handleReset)

	c.mcpServer.AddTool(mcp.NewTool("finish_session",
		mcp.WithDescription("Record the final score on the leaderboard and close the session"),
		sessionParam(),
		mcp.WithString("player", mcp.Description("Name shown on the leaderboard")),
	), c.handleFinish)

	// Rulesets and scores
	c.mcpServer.AddTool(mcp.NewTool("list_configs",
		mcp.WithDescription("List available rulesets"),
	), c.handleListConfigs)

	c.mcpServer.AddTool(mcp.NewTool("leaderboard",
		mcp.WithDescription("Show the best recorded scores"),
		mcp.WithNumber("limit", mcp.Description("Number of entries (default 10)")),
	), c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the full rules of the game"),
	), c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// HTTPHandler serves single JSON-RPC messages posted to it
func (c *Client) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := c.mcpServer.HandleMessage(r.Context(), body)
		if response == nil {
			// notifications have no response
			w.WriteHeader(http.StatusAccepted)
			return
		}

		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func sessionPath(id string, parts ...string) string {
	return "/api/sessions/" + url.PathEscape(id) + strings.Join(parts, "")
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]string{}
	if configID := request.GetString("config_id", ""); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions (%d):\n", len(response.Sessions))
	for _, s := range response.Sessions {
		score := uint64(0)
		if s.GameState != nil {
			score = s.GameState.Score
		}
		fmt.Fprintf(&b, "- %s (ruleset: %s, score: %d)\n", s.ID, s.ConfigName, score)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleShift(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, err := request.RequireString("direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	steps := request.GetInt("steps", 1)
	if steps < 1 || steps > maxSteps {
		return mcp.NewToolResultError(fmt.Sprintf("steps must be between 1 and %d", maxSteps)), nil
	}

	var result service.ShiftResult
	for i := 0; i < steps; i++ {
		body := map[string]string{"direction": direction}
		if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/shift"), body, &result); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !result.Moved {
			break
		}
	}

	return mcp.NewToolResultText(formatShiftResult(&result)), nil
}

func (c *Client) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.PlaceResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/place"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlaceResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		State *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Game reset\n\n" + formatGameState(response.State)), nil
}

func (c *Client) handleFinish(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]string{"player": request.GetString("player", "")}
	var entry scoreboard.Entry
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/finish"), body, &entry); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Session %s finished. %s scored %d points on %s.",
		sessionID, entry.Player, entry.Score, entry.ConfigName)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []*service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available rulesets (%d):\n", len(configs))
	for _, cfg := range configs {
		start := "empty board"
		switch {
		case cfg.RandomFill:
			start = "random board"
		case cfg.Prefilled > 0:
			start = fmt.Sprintf("%d cells prefilled", cfg.Prefilled)
		}
		fmt.Fprintf(&b, "- %s: %s (%s) - %s\n", cfg.ConfigID, cfg.Name, start, cfg.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/scores"
	if limit := request.GetInt("limit", 0); limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var response struct {
		Scores []scoreboard.Entry `json:"scores"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Scores) == 0 {
		return mcp.NewToolResultText("No scores recorded yet"), nil
	}

	var b strings.Builder
	b.WriteString("Leaderboard:\n")
	for i, e := range response.Scores {
		fmt.Fprintf(&b, "%2d. %-16s %6d  %s\n", i+1, e.Player, e.Score, e.ConfigName)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Blockdoku - Complete Instructions

BOARD:
A 9x9 grid divided into nine 3x3 blocks. Rows and columns are numbered 0-8
from the top-left corner.

PIECES:
The active piece is a 3x3 mask; each of its cells is occupied with
probability 1/3, so pieces are irregular and may even be empty. A new piece
always starts at offset (0,0), the top-left corner of the board.

MOVING:
shift moves the piece one cell per step. Its offset stays within 0-6 on
both axes, so the whole mask always fits on the board. Moving is allowed
over placed cells.

PLACING:
place succeeds only when no occupied piece cell overlaps an occupied board
cell. The piece cells become part of the board and a new piece appears.

CLEARING:
After each placement complete columns are cleared first, then complete
rows, then complete 3x3 blocks, each check seeing the board the previous
one left. Each cleared region scores 9 points; complete rows, columns and
blocks all count. A cell shared by a full column and a full row is cleared
with the column, so the row no longer counts.

GRID LEGEND (game_state):
  #  placed cell
  .  empty cell
  @  piece cell over an empty cell
  X  piece cell over a placed cell (placement blocked)

STRATEGY:
- Prefer positions that complete a row, column or block.
- Keep placed cells next to each other and to the edges.
- When no position fits the piece, the game cannot continue: finish the
  session to record the score.`

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nRuleset: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(session.GameState))
	}
	return b.String()
}

// formatBoard draws the board with the active piece overlaid
func formatBoard(state *engine.GameState) string {
	var b strings.Builder
	b.WriteString("   012 345 678\n")
	for y := 0; y < engine.BoardSize; y++ {
		if y > 0 && y%engine.BlockSize == 0 {
			b.WriteString("   --- --- ---\n")
		}
		fmt.Fprintf(&b, "%d  ", y)
		for x := 0; x < engine.BoardSize; x++ {
			if x > 0 && x%engine.BlockSize == 0 {
				b.WriteByte('|')
			}
			covered := state.Piece.Covers(x, y)
			switch {
			case covered && state.Board[y][x]:
				b.WriteByte('X')
			case covered:
				b.WriteByte('@')
			case state.Board[y][x]:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d\n", state.Score)
	fmt.Fprintf(&b, "Piece offset: (%d,%d)\n", state.Piece.X, state.Piece.Y)
	b.WriteString("Piece mask:\n")
	for _, row := range state.Piece.Mask.Rows() {
		b.WriteString("  " + row + "\n")
	}
	if state.Legal {
		b.WriteString("Placement: legal\n")
	} else {
		b.WriteString("Placement: blocked\n")
	}
	b.WriteString("\n")
	b.WriteString(formatBoard(state))
	return b.String()
}

func formatShiftResult(result *service.ShiftResult) string {
	var b strings.Builder
	b.WriteString(result.Message + "\n\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatPlaceResult(result *service.PlaceResult) string {
	var b strings.Builder
	if result.Placed {
		b.WriteString("✅ " + result.Message + "\n")
	} else {
		b.WriteString("❌ " + result.Message + "\n")
	}
	for _, event := range result.Events {
		if event.Type == service.EventCleared {
			fmt.Fprintf(&b, "🎉 %s\n", event.Message)
		}
	}
	if result.ScoreDelta > 0 {
		fmt.Fprintf(&b, "Score +%d\n", result.ScoreDelta)
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}
