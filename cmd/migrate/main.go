package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"movieinfo/dynamodb"
	"movieinfo/pkg/config"
	"movieinfo/pkg/logger"
	"movieinfo/postgres"
	"movieinfo/storage"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

func main() {
	var (
		dir  string
		down bool
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the postgres migrations")
	flag.BoolVar(&down, "down", false, "Roll back the last postgres migration instead of applying")
	flag.Parse()

	log := logger.NewBootstrap()
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Errorw("cannot load config", "error", err)
		os.Exit(1)
	}

	switch strings.ToLower(cfg.StoreDriver) {
	case storage.DriverPostgres:
		err = migratePostgres(cfg, dir, down, log)
	case storage.DriverDynamoDB, "":
		err = createDynamoDBTable(cfg, log)
	default:
		log.Infow("nothing to migrate", "driver", cfg.StoreDriver)
	}
	if err != nil {
		log.Errorw("migration failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
}

func migratePostgres(cfg *config.Config, dir string, down bool, log *zap.SugaredLogger) error {
	db, err := postgres.NewConnection(storage.PostgresOptions(cfg))
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	if down {
		total, err := migrate.ExecMax(sqlDB, "postgres", migrations, migrate.Down, 1)
		if err != nil {
			return err
		}
		log.Infow("rolled back migrations", "total", total)
		return nil
	}

	total, err := migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	if err != nil {
		return err
	}
	log.Infow("applied migrations", "total", total)
	return nil
}

func createDynamoDBTable(cfg *config.Config, log *zap.SugaredLogger) error {
	ctx := context.Background()
	opts := storage.DynamoDBOptions(cfg)
	client, err := dynamodb.NewClient(ctx, opts)
	if err != nil {
		return err
	}

	created, err := dynamodb.EnsureMovieInfoTable(ctx, client, opts.MovieInfosTable)
	if err != nil {
		return err
	}
	log.Infow("movie info table ready", "table", opts.MovieInfosTable, "created", created)
	return nil
}
