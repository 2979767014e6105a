// Package main provides the CLI entrypoint for the AI gateway.
// It wires subcommands (serve, migrate, jwt, healthcheck, unit, chatbot, prune),
// loads configuration, and initializes logging.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gateway/internal/config"
	"gateway/pkg/logger"
	"gateway/pkg/storage/postgres"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging before
// any subcommand runs, and executes the CLI.
func main() {
	// filled by PersistentPreRunE, subcommands only read it from Run.
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "gateway",
		Short:         "AI gateway for the banking chatbot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			log.Println("loading config ...")
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			logger.Setup(cfg.Environment, cfg.LogLevel)

			return nil
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config file path (yaml or .env)")

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		migrateCommand(cfg),
		JWTCommand(cfg),
		healthcheckCommand(cfg),
		unitCommand(cfg),
		chatbotCommand(cfg),
		pruneCommand(cfg),
	)

	err := rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		log.Println(err)
		os.Exit(1) //nolint: gocritic
	}
}
