package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// StartPurge schedules removal of expired sessions on spec (cron syntax or
// descriptors such as "@every 10m"). Stop the returned cron on shutdown.
func StartPurge(spec string, store Store, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() { PurgeOnce(context.Background(), store, logger) })
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func PurgeOnce(ctx context.Context, store Store, logger *slog.Logger) {
	n, err := store.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.ErrorContext(ctx, "session_purge_failed", slog.String("err", err.Error()))
		return
	}
	if n > 0 {
		logger.InfoContext(ctx, "session_purge", slog.Int64("deleted", n))
	}
}
