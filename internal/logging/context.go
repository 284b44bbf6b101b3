package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// runLoggerKey carries the per-run logger through a fix cycle's context.
type runLoggerKey struct{}

// WithRunLogger attaches logger to ctx. The orchestrator and its
// workers pick it up with RunLogger, so a whole run reports through
// the logger the CLI configured.
func WithRunLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runLoggerKey{}, logger)
}

// RunLogger returns the logger attached by WithRunLogger, falling back
// to the package default when none is set.
func RunLogger(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(runLoggerKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
