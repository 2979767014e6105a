package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riverqueue/river"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gateway/internal/api"
	"gateway/internal/api/handler/v1handler"
	"gateway/internal/config"
	"gateway/internal/conversation"
	"gateway/internal/orchestrator"
	"gateway/internal/tools"
	"gateway/internal/worker"
	"gateway/pkg/bankapi"
	"gateway/pkg/llm"
	"gateway/pkg/llm/azureopenai"
	"gateway/pkg/logger"
	"gateway/pkg/metrics"
	"gateway/pkg/storage"
	"gateway/pkg/storage/memory"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// backend is the configured conversation storage with its readiness check and
// pruning loop.
type backend struct {
	storage storage.Storage
	ready   func(ctx context.Context) error
	// start launches the pruning of expired conversations and returns the
	// function that stops it and closes the storage.
	start func(store conversation.Store) func(ctx context.Context)
}

// setupStorage opens the configured conversation storage. With PostgreSQL the
// readiness check pings the pool and expired conversations are pruned by a
// River periodic job. In memory a janitor goroutine does the same.
func setupStorage(ctx context.Context, cfg *config.Config) backend {
	if cfg.Conversation.Store != config.StorePostgres {
		strg := memory.New()

		return backend{storage: strg, start: func(store conversation.Store) func(ctx context.Context) {
			janitorCtx, cancel := context.WithCancel(ctx)
			go conversation.RunJanitor(janitorCtx, store, cfg.Conversation.SweepInterval)

			return func(context.Context) {
				cancel()
				_ = strg.Close()
			}
		}}
	}

	pgsql, closeStrg := getPostgres(ctx, cfg)

	return backend{storage: pgsql, ready: pgsql.Ping, start: func(store conversation.Store) func(ctx context.Context) {
		riverClient, err := worker.Start(ctx, pgsql.Pool, store, worker.NewOptions(cfg))
		if err != nil {
			logger.Fatal(ctx, "could not start workers", zap.Error(err))
		}

		return func(ctx context.Context) {
			stopWorkers(ctx, riverClient)
			closeStrg()
		}
	}}
}

func stopWorkers(ctx context.Context, riverClient *river.Client[pgx.Tx]) {
	logger.Info(ctx, "stopping workers...")
	if err := riverClient.Stop(ctx); err != nil {
		logger.Error(ctx, "could not stop workers", zap.Error(err))
	}
}

// newAgent wires the orchestrator with its tools, metrics and a lazily created
// Azure OpenAI client.
func newAgent(ctx context.Context, cfg *config.Config, store conversation.Store) orchestrator.Agent {
	kb, err := tools.LoadKnowledgeBase(cfg.BankInfoPath)
	if err != nil {
		logger.Fatal(ctx, "could not load bank info", zap.Error(err))
	}
	registry := tools.NewDefaultRegistry(tools.Dependencies{
		Bank:          bankapi.New(bankapi.NewOptions(cfg)),
		KnowledgeBase: kb,
	})

	meterProvider, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	recorder, err := metrics.NewRecorder(meterProvider)
	if err != nil {
		logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
	}

	llmOptions := azureopenai.NewOptions(cfg)
	factory := func() (llm.Client, error) {
		client, err := azureopenai.New(llmOptions)
		if err != nil {
			return nil, err
		}

		return client, nil
	}

	return orchestrator.New(store, registry, factory, recorder, orchestrator.NewOptions(cfg))
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			b := setupStorage(ctx, cfg)
			store := conversation.New(b.storage, conversation.NewOptions(cfg))
			stopBackground := b.start(store)

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps:  v1handler.Deps{Agent: newAgent(ctx, cfg, store)},
				Ready: b.ready,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopBackground(shutdownCtx)
		},
	}

	return cmd
}
