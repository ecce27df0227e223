package catalog

import (
	"context"
	"fmt"

	"quote-desk/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reading catalogue files from AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based catalogue loader.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-catalog-loader").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 catalogue loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Load reads a JSON catalogue object from S3 and returns its products.
// The source parameter is the full S3 key.
func (l *s3Loader) Load(ctx context.Context, source string) ([]model.Product, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", source).
		Msg("loading catalogue from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(source),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", source).
			Msg("failed to get catalogue object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, source, err)
	}
	defer result.Body.Close()

	products, err := decodeProducts(result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", source).
			Msg("failed to decode catalogue object")
		return nil, fmt.Errorf("failed to decode catalogue object %s: %w", source, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", source).
		Int("products_loaded", len(products)).
		Msg("catalogue loaded successfully from S3")

	return products, nil
}

// fallbackLoader tries S3 first and falls back to the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Key      string
	localPath  string
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries the S3 key first and falls
// back to the local path. If s3Loader is nil only the file loader is used.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Key, localPath string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Key:      s3Key,
		localPath:  localPath,
		logger:     logger.With().Str("component", "fallback-catalog-loader").Logger(),
	}
}

// Load ignores its source argument and uses the configured S3 key and local
// path; the decision of where the catalogue lives belongs to configuration,
// not the caller.
func (l *fallbackLoader) Load(ctx context.Context, _ string) ([]model.Product, error) {
	if l.s3Loader != nil {
		products, err := l.s3Loader.Load(ctx, l.s3Key)
		if err == nil {
			return products, nil
		}
		l.logger.Warn().
			Err(err).
			Str("s3_key", l.s3Key).
			Msg("failed to load catalogue from S3, falling back to local file system")
	}

	return l.fileLoader.Load(ctx, l.localPath)
}
