package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey keys the logger stored by WithLogger.
type ctxKey struct{}

// FromContext returns the logger attached to ctx, falling back to the
// process default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(ctxKey{}).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger attaches logger to ctx. Commands store their logger here so
// that runner and watch code log with the same level and format.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}
