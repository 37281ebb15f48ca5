package main

import (
	"context"
	"fmt"
	"time"

	"docgen-srv/config"
	configMinio "docgen-srv/config/minio"
	"docgen-srv/internal/httpserver"
	"docgen-srv/pkg/convert"
	"docgen-srv/pkg/discord"
	"docgen-srv/pkg/log"
	"docgen-srv/pkg/minio"
	"docgen-srv/pkg/pdf"
	"docgen-srv/pkg/preview"
)

func main() {
	// 1. Load configuration
	// Reads config from YAML file and environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// 3. Initialize converter backend
	converter, err := convert.New(convert.Config{
		Backend: cfg.Converter.Backend,
		Binary:  cfg.Converter.Binary,
		Timeout: time.Duration(cfg.Converter.Timeout) * time.Second,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize converter: ", err)
		return
	}
	logger.Infof(ctx, "Converter backend initialized: %s", cfg.Converter.Backend)

	// 4. Initialize stamper
	// Fails fast when the seal image is missing or unreadable.
	stamper, err := pdf.NewStamper(pdf.StamperConfig{
		SealPath: cfg.Docgen.StampPath,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize stamper: ", err)
		return
	}

	// 5. Initialize preview renderer
	previewer := preview.NewRenderer(cfg.Docgen.PreviewScale)

	// 6. Initialize Discord (optional)
	discordClient, err := discord.New(logger, &discord.DiscordWebhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		discordClient = nil // Continue without Discord
	} else {
		logger.Infof(ctx, "Discord webhook initialized successfully")
	}

	// 7. Initialize MinIO artifact mirror (optional)
	var storage minio.MinIO
	if cfg.MinIO.Enabled {
		storage, err = configMinio.Connect(ctx, &cfg.MinIO)
		if err != nil {
			logger.Error(ctx, "Failed to connect to MinIO: ", err)
			return
		}
		defer configMinio.Disconnect()
		if err := ensureBucket(ctx, storage, cfg.MinIO.Bucket); err != nil {
			logger.Error(ctx, "Failed to ensure MinIO bucket: ", err)
			return
		}
		logger.Infof(ctx, "MinIO connected, mirroring artifacts to bucket %s", cfg.MinIO.Bucket)
	}

	// 8. Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		Config: cfg,

		Converter: converter,
		Stamper:   stamper,
		Previewer: previewer,
		Storage:   storage,

		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}

func ensureBucket(ctx context.Context, storage minio.MinIO, bucket string) error {
	exists, err := storage.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return storage.CreateBucket(ctx, bucket)
}
