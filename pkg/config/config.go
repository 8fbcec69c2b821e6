package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"local"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile      string `envconfig:"LOG_FILE"`
	// RateLimit is the per client requests per second; 0 disables limiting.
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"20"`

	// StoreDriver selects the movie info store: dynamodb, postgres or memory.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"dynamodb"`
	// MergePolicy is compat (name and cast only) or full.
	MergePolicy string `envconfig:"MOVIEINFO_MERGE_POLICY" default:"compat"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region          string `envconfig:"DDB_REGION"`
		Endpoint        string `envconfig:"DDB_ENDPOINT"`
		AccessKey       string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey       string `envconfig:"DDB_SECRET_KEY"`
		SessionToken    string `envconfig:"DDB_SESSION_TOKEN"`
		MovieInfosTable string `envconfig:"DDB_MOVIEINFOS_TABLE" default:"movieinfos"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
