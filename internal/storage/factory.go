package storage

import (
	"context"
	"fmt"

	appconfig "medisupply.com/portal/internal/config"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
}

func FromConfig(ctx context.Context, cfg appconfig.Media) (FactoryResult, error) {
	switch cfg.Driver {
	case "", "local":
		return FactoryResult{Driver: "local", Storage: NewLocal(cfg.LocalDir, cfg.LocalURL)}, nil

	case "s3":
		if cfg.Region == "" || cfg.Bucket == "" {
			return FactoryResult{}, fmt.Errorf("S3 config missing: APP_S3_MEDIA_REGION and APP_S3_MEDIA_BUCKET_NAME required")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.Region,
			Bucket:        cfg.Bucket,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.Driver)
	}
}
