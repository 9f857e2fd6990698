package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/vk/pipecheck/internal/ctxlog"
)

// Logger returns a debug-level logger writing to a buffer. The buffer is
// dumped into the test log when PIPECHECK_TEST_LOGS=true.
func Logger(t *testing.T) (*slog.Logger, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv("PIPECHECK_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return logger, buf
}

// Context returns a background context carrying a test logger.
func Context(t *testing.T) context.Context {
	t.Helper()
	logger, _ := Logger(t)
	return ctxlog.WithLogger(context.Background(), logger)
}
