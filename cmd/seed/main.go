// Command seed wipes the database and loads the demo dataset.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"projectboard/internal/config"
	"projectboard/internal/repository"
	"projectboard/pkg/db"
	"projectboard/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logger.NewLogger()
	defer logg.Sync()

	dbConn, err := db.NewConnection(cfg.DB, logg)
	if err != nil {
		logg.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.EnsureSchema(ctx, dbConn, logg); err != nil {
		logg.Fatal("Failed to ensure schema", zap.Error(err))
	}

	if err := repository.Seed(ctx, dbConn, repository.DemoSeed(), logg); err != nil {
		logg.Fatal("Seeding failed", zap.Error(err))
	}

	logg.Info("Seeding complete")
}
