package main

import (
	"context"
	"flag"
	"fmt"

	"docgen-srv/config"
	configPostgre "docgen-srv/config/postgre"
	"docgen-srv/internal/address"
	addressPostgre "docgen-srv/internal/address/repository/postgre"
	addressUsecase "docgen-srv/internal/address/usecase"
	"docgen-srv/pkg/log"
)

func main() {
	output := flag.String("output", "addressMapping.js", "path of the generated mapping file")
	flag.Parse()

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
	db, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, db)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	repo := addressPostgre.New(db, logger)
	uc := addressUsecase.New(repo, logger)

	out, err := uc.GenerateMapping(ctx, address.GenerateMappingInput{OutputPath: *output})
	if err != nil {
		logger.Error(ctx, "Failed to generate address mapping: ", err)
		return
	}

	logger.Infof(ctx, "Address mapping written: %s (%d addresses)", out.OutputPath, out.AddressCount)
}
