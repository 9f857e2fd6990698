package app

import (
	"errors"
	"fmt"
	"slices"
)

// ErrConfig marks startup failures caused by the configuration file or the
// startup options, as opposed to runtime failures.
var ErrConfig = errors.New("invalid configuration")

// Config holds the startup options for an App instance. Empty fields fall
// back to the service configuration file, then to built-in defaults.
type Config struct {
	ConfigPath string // HCL service config, optional

	ListenAddr string
	LogFormat  string
	LogLevel   string
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel != "" && !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q (use one of %v)", cfg.LogLevel, logLevels)
	}
	if cfg.LogFormat != "" && !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format %q (use one of %v)", cfg.LogFormat, logFormats)
	}
	return &cfg, nil
}
