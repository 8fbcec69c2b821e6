package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Options locates the movie info table. Endpoint is only set for DynamoDB
// Local; static keys are optional and fall back to the default AWS chain.
type Options struct {
	Region          string
	Endpoint        string
	AccessKey       string
	SecretKey       string
	SessionToken    string
	MovieInfosTable string
}

func (opts Options) Validate() error {
	if strings.TrimSpace(opts.Region) == "" {
		return errors.New("dynamodb: region is required")
	}
	if opts.hasStaticCredentials() && (opts.AccessKey == "" || opts.SecretKey == "") {
		return errors.New("dynamodb: access key and secret key must be set together")
	}
	return validateTable(opts.MovieInfosTable)
}

func (opts Options) hasStaticCredentials() bool {
	return opts.AccessKey != "" || opts.SecretKey != "" || opts.SessionToken != ""
}

// NewClient builds a client for opts after validating them, table included.
func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(strings.TrimSpace(opts.Region)),
	}
	if opts.hasStaticCredentials() {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// OpenMovieInfoRepository connects to the table named in opts.
func OpenMovieInfoRepository(ctx context.Context, opts Options) (*MovieInfoRepository, error) {
	client, err := NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewMovieInfoRepository(client, opts.MovieInfosTable), nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return errors.New("dynamodb: movie info table name is required")
	}
	return nil
}
