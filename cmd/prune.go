package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gateway/internal/config"
	"gateway/internal/conversation"
	"gateway/pkg/logger"
)

// pruneCommand enqueues a one-off PruneConversations job. Jobs enqueued within
// the same --period are deduplicated by River.
func pruneCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Enqueues pruning of expired conversations (postgres store)",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			period, _ := cmd.Flags().GetDuration("period")

			if cfg.Conversation.Store != config.StorePostgres {
				logger.Fatal(ctx, "prune jobs need the postgres conversation store",
					zap.String("store", cfg.Conversation.Store))
			}

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			inserted, err := strg.AddJob(ctx, conversation.NewPruneJobArgs(period), nil)
			if err != nil {
				logger.Fatal(ctx, "could not enqueue prune job", zap.Error(err))
			}

			logger.Info(ctx, "prune job enqueued", zap.Bool("inserted", inserted))
		},
	}

	cmd.Flags().Duration("period", 0, "Deduplication period, zero enqueues unconditionally")

	return cmd
}
