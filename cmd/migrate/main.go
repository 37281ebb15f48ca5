package main

import (
	"context"
	"fmt"
	"os"

	"docgen-srv/config"
	configPostgre "docgen-srv/config/postgre"
	configSqlite "docgen-srv/config/sqlite"
	migrationUsecase "docgen-srv/internal/migration/usecase"
	"docgen-srv/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	source, err := configSqlite.Connect(ctx, cfg.SQLite)
	if err != nil {
		logger.Error(ctx, "Failed to open SQLite database: ", err)
		os.Exit(1)
	}
	defer configSqlite.Disconnect()
	logger.Infof(ctx, "SQLite source opened: %s", cfg.SQLite.Path)

	target, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		os.Exit(1)
	}
	defer configPostgre.Disconnect(ctx, target)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	uc := migrationUsecase.New(source, target, logger)

	out, err := uc.Migrate(ctx)
	if err != nil {
		logger.Error(ctx, "Migration failed: ", err)
		os.Exit(1)
	}

	failed := 0
	for _, res := range out.Results {
		if res.Err != nil {
			failed++
		}
	}
	logger.Infof(ctx, "Migration finished: %d rows across %d tables (%d failed)", out.TotalRows, len(out.Results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
