package backend

import (
	"context"
	"errors"
	"log/slog"
)

// Or returns v when err is nil. Otherwise it logs the failure at WARN and
// returns fallback, so callers never branch on error versus empty.
// Cancelled calls are logged at DEBUG.
func Or[T any](ctx context.Context, logger *slog.Logger, service, op string, v T, err error, fallback T) T {
	if err == nil {
		return v
	}
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelWarn
	if errors.Is(err, context.Canceled) {
		level = slog.LevelDebug
	}
	logger.LogAttrs(ctx, level, "backend_fallback",
		slog.String("service", service),
		slog.String("operation", op),
		slog.String("request_id", RequestID(ctx)),
		slog.String("err", err.Error()),
	)
	return fallback
}
