package storage

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"eventregistration/config"
	"eventregistration/internal/domain"
)

// NewBlobStore creates a blob store from config. Provider "s3" uses S3 (or any
// S3-compatible endpoint); "memory" or unknown keeps objects in process.
func NewBlobStore(cfg config.StorageConfig, logger *slog.Logger) (domain.BlobStore, error) {
	switch cfg.Provider {
	case "s3":
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("s3 storage requires S3_BUCKET")
		}
		awsCfg := aws.Config{
			Region: cfg.Region,
		}
		if cfg.AccessKeyID != "" {
			awsCfg.Credentials = aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			)
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
				o.UsePathStyle = true
			}
		})
		return newS3Store(client, cfg.Bucket, publicBaseURL(cfg)), nil
	case "memory":
		return NewMemoryStore(publicBaseURL(cfg)), nil
	default:
		logger.Warn("unknown storage provider, using memory", "provider", cfg.Provider)
		return NewMemoryStore(publicBaseURL(cfg)), nil
	}
}

// publicBaseURL is where stored objects can be read back. Without an explicit
// base it is derived from the endpoint or the regional S3 host.
func publicBaseURL(cfg config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	if cfg.Region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket)
}

func joinURL(base, key string) string {
	return base + "/" + strings.TrimLeft(key, "/")
}
