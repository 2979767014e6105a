// Package worker runs background jobs on River when conversations are kept in
// PostgreSQL.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"

	"gateway/internal/config"
	"gateway/internal/conversation"
	"gateway/pkg/logger"
)

// Options configure the River client.
type Options struct {
	// SweepInterval is how often expired conversations are pruned. Zero
	// disables the periodic job.
	SweepInterval time.Duration
	// MaxWorkers bounds concurrent jobs on the default queue.
	MaxWorkers int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SweepInterval: cfg.Conversation.SweepInterval,
		MaxWorkers:    10,
	}
}

// Start registers the workers and periodic jobs and starts a River client.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	store conversation.Store,
	options Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewPruneConversationsWorker(store))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: max(options.MaxWorkers, 1)},
		},
		Workers:      workers,
		PeriodicJobs: PeriodicJobs(options.SweepInterval),
		Logger:       slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}

// PeriodicJobs schedules conversation pruning every interval, starting right
// away. A non-positive interval schedules nothing.
func PeriodicJobs(interval time.Duration) []*river.PeriodicJob {
	if interval <= 0 {
		return nil
	}

	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(interval),
			func() (river.JobArgs, *river.InsertOpts) {
				return conversation.NewPruneJobArgs(0), nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}
