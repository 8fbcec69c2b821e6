package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"movieinfo/movieinfo"
	"movieinfo/pkg/config"
	"movieinfo/pkg/logger"
	"movieinfo/storage"

	"go.uber.org/zap"
)

func main() {
	var (
		source string
		limit  int
	)

	flag.StringVar(&source, "csv", "movieinfos.csv", "Path or http(s) URL of a CSV with name,year,cast,release_date columns")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	log := logger.NewBootstrap()
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Errorw("load config failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Errorw("cannot open movie info store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() { _ = closeRepo() }()

	count, err := seed(ctx, movieinfo.NewUsecase(repo), source, limit, log)
	if err != nil {
		log.Errorw("import failed", "rows", count, "error", err)
		os.Exit(1)
	}

	log.Infow("import completed", "rows", count)
}

// seed adds every valid row of source through svc and returns how many were
// stored. Invalid rows are logged and skipped.
func seed(ctx context.Context, svc movieinfo.Service, source string, limit int, log *zap.SugaredLogger) (int, error) {
	rc, err := openSource(ctx, source)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	rows, err := newRowReader(rc)
	if err != nil {
		return 0, err
	}

	count := 0
	for limit <= 0 || count < limit {
		m, line, err := rows.next()
		if errors.Is(err, errEndOfRows) {
			break
		}
		var bad *rowError
		if errors.As(err, &bad) {
			log.Warnw("skipping row", "line", line, "error", err)
			continue
		}
		if err != nil {
			return count, err
		}

		created, err := svc.AddMovieInfo(ctx, m)
		if err != nil {
			if ctx.Err() != nil {
				return count, ctx.Err()
			}
			log.Warnw("skipping row", "line", line, "error", err)
			continue
		}
		log.Debugw("added movie info", "id", created.ID, "name", created.Name)
		count++
	}

	return count, nil
}
