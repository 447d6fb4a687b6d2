package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port              string `env:"PORT,                default=8080"`
	DBPath            string `env:"DB_PATH,             default=data/ladle.db"`
	LogLevel          string `env:"LOG_LEVEL,           default=info"`
	LogPretty         bool   `env:"LOG_PRETTY,          default=false"`
	MinPasswordLength int    `env:"MIN_PASSWORD_LENGTH, default=6"`

	Storage StorageConfig
}

type StorageConfig struct {
	// Backend selects the image store: "disk" or "s3".
	Backend      string `env:"STORAGE_BACKEND, default=disk"`
	MediaDir     string `env:"MEDIA_DIR,       default=data/media"`
	MediaBaseURL string `env:"MEDIA_BASE_URL,  default=/media"`

	S3 S3Config
}

type S3Config struct {
	Region        string `env:"S3_REGION"`
	Bucket        string `env:"S3_BUCKET"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	BaseEndpoint  string `env:"S3_BASE_ENDPOINT"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.Storage.Backend == "s3" && cfg.Storage.S3.Bucket == "" {
		return nil, fmt.Errorf("STORAGE_BACKEND=s3 requires S3_BUCKET")
	}
	return &cfg, nil
}
