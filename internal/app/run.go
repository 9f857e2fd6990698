package app

import (
	"context"
	"fmt"
	"net"

	"github.com/vk/pipecheck/internal/ctxlog"
)

// Run serves the pipeline API on the configured address until ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.run(ctx, a.server.ListenAndServe)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	return a.run(ctx, func(ctx context.Context) error {
		return a.server.Serve(ctx, ln)
	})
}

func (a *App) run(ctx context.Context, serve func(context.Context) error) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer func() {
		if err := a.recorder.Close(); err != nil {
			a.logger.Warn("Failed to flush metrics.", "error", err)
		}
		a.logger.Debug("App.Run method finished.")
	}()

	a.logger.Info("🚀 Starting pipeline API...", "socketio", a.config.SocketIO.Enabled)
	if err := serve(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	a.logger.Info("🏁 Pipeline API stopped.")
	return nil
}
