package storage_fx

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/fx"

	"purelife/internal/config"
	"purelife/internal/services"
	"purelife/pkg/logger"
)

var Module = fx.Provide(provideFileStorage)

func provideFileStorage(cfg config.StorageConfig) (services.FileStorage, error) {
	switch cfg.Driver {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		logger.Info("product images stored in s3", "bucket", cfg.S3.Bucket, "region", cfg.S3.Region)
		return services.NewS3FileStorage(
			s3.NewFromConfig(awsCfg),
			cfg.S3.Bucket,
			cfg.S3.Region,
			cfg.S3.KeyPrefix,
			cfg.S3.PublicBaseURL,
			cfg.MaxUploadBytes,
		), nil
	default:
		logger.Info("product images stored on disk", "dir", cfg.UploadDir)
		return services.NewLocalFileStorage(cfg.UploadDir, cfg.PublicPrefix, cfg.MaxUploadBytes), nil
	}
}
