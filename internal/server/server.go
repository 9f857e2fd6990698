package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/pipecheck/internal/analysis"
	"github.com/vk/pipecheck/internal/config"
	"github.com/vk/pipecheck/internal/ctxlog"
)

// Server serves the pipeline API.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	analyzer *analysis.Analyzer

	sio        *socket.Server
	handler    http.Handler
	httpServer *http.Server
}

// New wires the routes for cfg. Nothing listens until Serve or
// ListenAndServe is called.
func New(cfg *config.Config, logger *slog.Logger, analyzer *analysis.Analyzer) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer,
	}

	api := http.NewServeMux()
	api.HandleFunc("GET /{$}", s.handleRoot)
	api.HandleFunc("GET /health", s.handleHealth)
	api.HandleFunc("POST /pipelines/parse", s.handleParse)
	api.HandleFunc("GET /pipelines/parse", s.handleParseLegacy)

	root := http.NewServeMux()
	if cfg.SocketIO.Enabled {
		opts := s.socketOptions()
		s.sio = s.newSocketIO(opts)
		root.Handle(strings.TrimSuffix(cfg.SocketIO.Path, "/")+"/", s.sio.ServeHandler(opts))
		logger.Debug("socket.io endpoint enabled.", "path", cfg.SocketIO.Path)
	}
	root.Handle("/", s.withRequestLogging(withCORS(cfg.CORS, api)))

	s.handler = root
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := ctxlog.FromContext(ctx)

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚦 Pipeline API listening", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("pipeline API server failed: %w", err)
	case <-ctx.Done():
	}

	return s.shutdown(logger)
}

func (s *Server) shutdown(logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace())
	defer cancel()

	logger.Info("🚦 Shutting down pipeline API...")
	if s.sio != nil {
		s.sio.Close(nil)
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Pipeline API shutdown failed", "error", err)
		return err
	}

	logger.Debug("Pipeline API shut down gracefully.")
	return nil
}
