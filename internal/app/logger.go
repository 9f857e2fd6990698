package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds an isolated slog.Logger writing to outW; the global
// logger is left alone. An empty level means info and an empty format means
// text. Unknown values are rejected.
func NewLogger(outW io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil || !isLogLevel(level) {
			return nil, fmt.Errorf("invalid log level %q (use one of %v)", level, logLevels)
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(outW, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(outW, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (use one of %v)", format, logFormats)
	}
}

func isLogLevel(level string) bool {
	for _, l := range logLevels {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}
