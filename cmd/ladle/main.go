package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dorazhang07/ladle/internal/api"
	"github.com/dorazhang07/ladle/internal/cli"
	"github.com/dorazhang07/ladle/internal/config"
	"github.com/dorazhang07/ladle/internal/db"
	"github.com/dorazhang07/ladle/internal/logger"
	"github.com/dorazhang07/ladle/internal/services"
	"github.com/dorazhang07/ladle/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config init failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	policy := services.NewPasswordPolicy(cfg.MinPasswordLength)

	if len(os.Args) > 1 && os.Args[1] == "createsuperuser" {
		if err := cli.CreateSuperuser(database, policy); err != nil {
			log.Fatal().Err(err).Msg("createsuperuser failed")
		}
		return
	}

	images, err := buildImageStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("image storage init failed")
	}

	handler := api.NewHandler(database, images, policy, log)
	app := api.NewApp(handler)

	if diskStore, ok := images.(*storage.DiskStore); ok {
		app.Static(cfg.Storage.MediaBaseURL, diskStore.MediaDir())
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Str("storage", cfg.Storage.Backend).
		Msg("ladle listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func buildImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Options{
			Region:        cfg.Storage.S3.Region,
			Bucket:        cfg.Storage.S3.Bucket,
			AccessKey:     cfg.Storage.S3.AccessKey,
			SecretKey:     cfg.Storage.S3.SecretKey,
			BaseEndpoint:  cfg.Storage.S3.BaseEndpoint,
			PublicBaseURL: cfg.Storage.S3.PublicBaseURL,
		})
	default:
		return storage.NewDiskStore(cfg.Storage.MediaDir, cfg.Storage.MediaBaseURL), nil
	}
}
