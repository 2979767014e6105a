package conversation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gateway/pkg/logger"
)

// RunJanitor prunes expired conversations every interval until ctx is done.
// It is used with the in-memory storage, which has no background job runner.
func RunJanitor(ctx context.Context, s Store, interval time.Duration) {
	if interval <= 0 || s.TTL() <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.DeleteExpired(ctx, now.Add(-s.TTL()))
			if err != nil {
				logger.Warn(ctx, "could not prune expired conversations", zap.Error(err))

				continue
			}
			if n > 0 {
				logger.Info(ctx, "pruned expired conversations", zap.Int64("count", n))
			}
		}
	}
}
