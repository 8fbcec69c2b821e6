// Package storage opens the movie info repository selected by configuration.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"movieinfo/dynamodb"
	"movieinfo/memory"
	"movieinfo/movieinfo"
	"movieinfo/pkg/config"
	"movieinfo/postgres"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open returns the repository for cfg.StoreDriver and a function releasing
// its resources.
func Open(ctx context.Context, cfg *config.Config) (movieinfo.Repository, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.StoreDriver)) {
	case DriverDynamoDB, "":
		repo, err := dynamodb.OpenMovieInfoRepository(ctx, DynamoDBOptions(cfg))
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil

	case DriverPostgres:
		db, err := postgres.NewConnection(PostgresOptions(cfg))
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: get db instance: %w", err)
		}
		return postgres.NewMovieInfoRepository(db), sqlDB.Close, nil

	case DriverMemory:
		return memory.NewMovieInfoRepository(), noop, nil

	default:
		return nil, noop, fmt.Errorf("storage: unknown store driver %q", cfg.StoreDriver)
	}
}

func DynamoDBOptions(cfg *config.Config) dynamodb.Options {
	return dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,

		MovieInfosTable: cfg.DynamoDB.MovieInfosTable,
	}
}

func PostgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
}
