package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/pipecheck/internal/analysis"
	"github.com/vk/pipecheck/internal/config"
	"github.com/vk/pipecheck/internal/ctxlog"
	"github.com/vk/pipecheck/internal/metrics"
	"github.com/vk/pipecheck/internal/server"
)

// App encapsulates the service's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	config   *config.Config
	recorder metrics.Recorder
	server   *server.Server
}

// NewApp loads the service configuration, applies the overrides in
// appConfig and builds every component. Each App has its own logger.
// Problems with the configuration or the options wrap ErrConfig.
func NewApp(outW io.Writer, appConfig *Config) (*App, error) {
	bootLogger, err := NewLogger(outW, appConfig.LogLevel, appConfig.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	ctx := ctxlog.WithLogger(context.Background(), bootLogger)

	cfg, err := config.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	applyOverrides(cfg, appConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger, err := NewLogger(outW, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var recorder metrics.Recorder = metrics.Noop{}
	if cfg.Metrics.StatsdAddr != "" {
		statsd, err := metrics.NewStatsd(cfg.Metrics.StatsdAddr, cfg.Metrics.Namespace, cfg.Metrics.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to set up metrics: %w", err)
		}
		recorder = statsd
		logger.Debug("DogStatsD metrics enabled.", "addr", cfg.Metrics.StatsdAddr)
	}

	return &App{
		logger:   logger,
		config:   cfg,
		recorder: recorder,
		server:   server.New(cfg, logger, analysis.New(recorder)),
	}, nil
}

// applyOverrides copies the non-empty startup options over cfg.
func applyOverrides(cfg *config.Config, o *Config) {
	if o.ListenAddr != "" {
		cfg.ListenAddr = o.ListenAddr
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
}

// Config returns the effective service configuration. This is primarily
// for testing.
func (a *App) Config() *config.Config {
	return a.config
}
