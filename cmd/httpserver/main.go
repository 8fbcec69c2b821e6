package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movieinfo/httpserver"
	"movieinfo/movieinfo"
	"movieinfo/pkg/config"
	"movieinfo/pkg/logger"
	"movieinfo/pkg/sentry"
	"movieinfo/storage"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewBootstrap().Fatalw("cannot load config", "error", err)
	}

	log, err := logger.NewLogger(logger.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: cfg.AppEnv == "local",
	})
	if err != nil {
		logger.NewBootstrap().Fatalw("cannot init logger", "error", err)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	policy, err := movieinfo.ParseMergePolicy(cfg.MergePolicy)
	if err != nil {
		log.Fatalw("invalid merge policy", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		sentry.Fatal(err)
		log.Fatalw("cannot open movie info store", "driver", cfg.StoreDriver, "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Errorw("cannot close movie info store", "error", err)
		}
	}()

	server := httpserver.Default(cfg)
	server.Logger = log
	server.MovieInfoService = movieinfo.NewUsecase(repo, movieinfo.WithMergePolicy(policy))

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "store", cfg.StoreDriver, "merge_policy", policy)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
