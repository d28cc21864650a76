package main

import (
	"context"
	"flag"
	"log"

	"edugen/internal/config"
	"edugen/internal/database"
	"edugen/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll migrations back instead of applying them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer l.Sync()

	ctx := context.Background()
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	dir := database.Up
	if *down {
		dir = database.Down
	}
	if err := database.RunMigrations(ctx, db, dir); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err), zap.String("direction", string(dir)))
	}
	l.Info("Migrations finished", zap.String("direction", string(dir)))
}
