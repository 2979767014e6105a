package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"gateway/internal/conversation"
	"gateway/pkg/logger"
)

// PruneConversationsWorker deletes conversations idle for longer than the
// store TTL.
type PruneConversationsWorker struct {
	river.WorkerDefaults[conversation.PruneJobArgs]

	store conversation.Store
	now   func() time.Time
}

// NewPruneConversationsWorker constructs a PruneConversationsWorker pruning store.
func NewPruneConversationsWorker(store conversation.Store) *PruneConversationsWorker {
	return &PruneConversationsWorker{
		store: store,
		now:   time.Now,
	}
}

// Work runs a single prune.
func (w *PruneConversationsWorker) Work(ctx context.Context, job *river.Job[conversation.PruneJobArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID))

	ttl := w.store.TTL()
	if ttl <= 0 {
		logger.Debug(ctx, "conversation TTL disabled, nothing to prune")

		return nil
	}

	deleted, err := w.store.DeleteExpired(ctx, w.now().Add(-ttl))
	if err != nil {
		logger.Error(ctx, "error in pruning conversations", zap.Error(err))

		return fmt.Errorf("could not prune conversations: %w", err)
	}

	logger.Info(ctx, "expired conversations pruned", zap.Int64("deleted", deleted))

	return nil
}

// Timeout bounds a single prune.
func (w *PruneConversationsWorker) Timeout(*river.Job[conversation.PruneJobArgs]) time.Duration {
	return time.Minute
}
