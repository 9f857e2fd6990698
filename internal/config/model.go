package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Config is the complete service configuration.
type Config struct {
	ListenAddr      string `hcl:"listen_addr,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	LogFormat       string `hcl:"log_format,optional"`
	ShutdownTimeout string `hcl:"shutdown_timeout,optional"`
	MaxBodyBytes    int64  `hcl:"max_body_bytes,optional"`

	CORS     CORS
	SocketIO SocketIO
	Metrics  Metrics
}

// CORS configures cross-origin access for the editor front end.
type CORS struct {
	AllowOrigins     []string `hcl:"allow_origins,optional"`
	AllowCredentials bool     `hcl:"allow_credentials,optional"`
}

// SocketIO configures the live-validation socket.io endpoint.
type SocketIO struct {
	Enabled bool   `hcl:"enabled,optional"`
	Path    string `hcl:"path,optional"`
}

// Metrics configures DogStatsD reporting. An empty address disables it.
type Metrics struct {
	StatsdAddr string   `hcl:"statsd_addr,optional"`
	Namespace  string   `hcl:"namespace,optional"`
	Tags       []string `hcl:"tags,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ListenAddr:      ":8000",
		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: "5s",
		MaxBodyBytes:    1 << 20,
		CORS: CORS{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowCredentials: true,
		},
		SocketIO: SocketIO{
			Enabled: true,
			Path:    "/socket.io",
		},
		Metrics: Metrics{
			Namespace: "pipecheck.",
		},
	}
}

// ShutdownGrace returns the parsed shutdown timeout. Call Validate first;
// an unparsable value falls back to five seconds.
func (c *Config) ShutdownGrace() time.Duration {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.ListenAddr == "" {
		result = multierror.Append(result, fmt.Errorf("listen_addr must not be empty"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		result = multierror.Append(result, fmt.Errorf("invalid log_format %q: must be 'text' or 'json'", c.LogFormat))
	}
	if d, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid shutdown_timeout %q: %w", c.ShutdownTimeout, err))
	} else if d < 0 {
		result = multierror.Append(result, fmt.Errorf("shutdown_timeout must not be negative"))
	}
	if c.MaxBodyBytes <= 0 {
		result = multierror.Append(result, fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes))
	}
	for _, origin := range c.CORS.AllowOrigins {
		if origin == "" {
			result = multierror.Append(result, fmt.Errorf("cors.allow_origins must not contain empty strings"))
			break
		}
	}
	if c.SocketIO.Enabled && !strings.HasPrefix(c.SocketIO.Path, "/") {
		result = multierror.Append(result, fmt.Errorf("socketio.path %q must start with '/'", c.SocketIO.Path))
	}

	return result.ErrorOrNil()
}
