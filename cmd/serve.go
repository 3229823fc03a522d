package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"urix/internal/api"
	"urix/internal/api/handler/v1handler"
	"urix/internal/config"
	"urix/internal/extractor"
	"urix/internal/worker"
	"urix/pkg/fetcher"
	"urix/pkg/logger"
	"urix/pkg/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, ext extractor.Extractor) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{Extractor: ext},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
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

func setupWorkers(ctx context.Context, cfg *config.Config, strg *postgres.PgSQL) func(ctx context.Context) {
	docWorker := worker.NewDocumentWorker(strg,
		fetcher.New(fetcher.Options{
			RetryMax:     cfg.Fetcher.RetryMax,
			MaxBodyBytes: cfg.Fetcher.MaxBodyBytes,
			UserAgent:    cfg.Fetcher.UserAgent,
		}),
		worker.NewOptions(cfg))

	riverClient, err := worker.Start(ctx, strg.Pool, docWorker, cfg.Extractor.WorkerCount)
	if err != nil {
		logger.Fatal(ctx, "could not start workers", zap.Error(err))
	}

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping workers...")
		if err := riverClient.Stop(ctx); err != nil {
			logger.Error(ctx, "could not stop workers", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			ext := extractor.New(strg, extractor.NewOptions(cfg))

			stopWebserver := setupServer(ctx, cfg, ext)
			stopWorkers := setupWorkers(ctx, cfg, strg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopWorkers(shutdownCtx)
		},
	}

	return cmd
}
