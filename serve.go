package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/blockdoku/api"
	"github.com/wricardo/blockdoku/game/service"
	"github.com/wricardo/blockdoku/game/session"
	"github.com/wricardo/blockdoku/settings"
	"github.com/wricardo/blockdoku/transport/mcp"
	"github.com/wricardo/blockdoku/transport/websocket"
)

// cleanupInterval is how often expired sessions are swept
const cleanupInterval = time.Hour

func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "host", Usage: "HTTP server host"},
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "HTTP server port"},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket and MCP endpoint",
		Flags: append(serverFlags(),
			&cli.BoolFlag{Name: "ngrok", Usage: "expose the server through an ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or NGROK_AUTHTOKEN)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain"},
		),
		Action: runServe,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp"},
		Usage:   "run an MCP stdio server backed by the REST API",
		Flags: append(serverFlags(),
			&cli.StringFlag{Name: "api-url", Usage: "existing API to proxy (default http://<host>:<port>)"},
		),
		Action: runMCP,
	}
}

// newRouter mounts the REST API, WebSocket hub and MCP endpoint.
// The MCP client proxies to baseURL.
func newRouter(gameService service.GameService, hub *websocket.Hub, baseURL string, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", api.NewServer(gameService, hub, logger))
	mux.Handle("/mcp", mcp.NewClient(baseURL).HTTPHandler())
	return mux
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	s, logger, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, closeStore, err := openScoreboard(ctx, s, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	gameService, sessions, err := initializeServices(s, store, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)
	go sessionCleanupRoutine(ctx, sessions, s.SessionTTL, logger)

	addr := s.Addr()
	router := newRouter(gameService, hub, "http://"+addr, logger)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	errc := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("http_listening",
			zap.String("addr", addr),
			zap.String("api", "http://"+addr+"/api"),
			zap.String("ws", "ws://"+addr+"/ws?session=<session_id>"),
			zap.String("mcp", "http://"+addr+"/mcp"))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if s.Ngrok.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveNgrok(ctx, s.Ngrok, router, logger)
		}()
	}

	<-ctx.Done()
	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http_shutdown", zap.Error(err))
	}

	wg.Wait()
	logger.Info("server_stopped")

	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}

// serveNgrok serves handler through an ngrok tunnel until ctx is done
func serveNgrok(ctx context.Context, cfg settings.Ngrok, handler http.Handler, logger *zap.Logger) {
	if cfg.AuthToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	var tunnel ngrokConfig.Tunnel
	if cfg.Domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.Domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(cfg.AuthToken))
	if err != nil {
		logger.Error("ngrok_listen", zap.Error(err))
		return
	}

	url := tun.URL()
	logger.Info("ngrok_tunnel",
		zap.String("url", url),
		zap.String("api", url+"/api"),
		zap.String("mcp", url+"/mcp"))

	srv := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("ngrok_serve", zap.Error(err))
	}
	logger.Info("ngrok_closed")
}

// sessionCleanupRoutine removes sessions idle for longer than ttl until ctx is done
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl time.Duration, logger *zap.Logger) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(min(cleanupInterval, ttl))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				logger.Info("sessions_expired", zap.Int("removed", removed), zap.Int("remaining", manager.Count()))
			}
		}
	}
}

// apiReachable reports whether an API server answers at baseURL
func apiReachable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// runMCP runs an MCP stdio server. It reuses an API already answering at the
// configured address; otherwise it starts an internal one on a loopback port.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol, so logs only go to stderr or a file
	s, logger, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	baseURL := cmd.String("api-url")
	if baseURL == "" {
		baseURL = "http://" + s.Addr()
	}

	if apiReachable(ctx, baseURL) {
		logger.Info("mcp_using_external_api", zap.String("url", baseURL))
	} else {
		store, closeStore, err := openScoreboard(ctx, s, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		gameService, sessions, err := initializeServices(s, store, logger)
		if err != nil {
			return err
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		baseURL = "http://" + listener.Addr().String()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		hub := websocket.NewHub(logger)
		go hub.Run(ctx)
		go sessionCleanupRoutine(ctx, sessions, s.SessionTTL, logger)

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub, logger)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal_http_server", zap.Error(err))
			}
		}()
		defer httpServer.Close()

		logger.Info("mcp_using_internal_api", zap.String("url", baseURL))
	}

	return server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer())
}
