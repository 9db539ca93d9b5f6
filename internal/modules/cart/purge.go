package cart

import (
	"context"
	"log/slog"
	"time"
)

// PurgeOnce drops in-process carts that outlived their session. Redis carts
// expire on their own.
func PurgeOnce(ctx context.Context, store *MemoryStore, logger *slog.Logger) {
	n, err := store.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.ErrorContext(ctx, "cart_purge_failed", slog.String("err", err.Error()))
		return
	}
	if n > 0 {
		logger.InfoContext(ctx, "cart_purge", slog.Int64("deleted", n))
	}
}
