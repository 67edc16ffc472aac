package main

import (
	"context"
	"fmt"
	"os"

	"beadshop/config"
	"beadshop/internal/cleanup"
	"beadshop/internal/database"
	"beadshop/internal/logger"
	"beadshop/internal/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()
	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	cleanupSvc := cleanup.NewCleanupService(repository.New(db), log)

	ctx := context.Background()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "sessions":
			log.Info("running sessions cleanup")
			if err := cleanupSvc.CleanupOldSessions(ctx); err != nil {
				log.Fatal("failed to cleanup old sessions", zap.Error(err))
			}
		case "carts":
			log.Info("running carts cleanup")
			if err := cleanupSvc.CleanupAbandonedCarts(ctx); err != nil {
				log.Fatal("failed to cleanup abandoned carts", zap.Error(err))
			}
		case "all":
			fallthrough
		default:
			log.Info("running full cleanup")
			if err := cleanupSvc.RunFullCleanup(ctx); err != nil {
				log.Fatal("failed to run full cleanup", zap.Error(err))
			}
		}
	} else {
		fmt.Println("Usage: go run cmd/cleanup/main.go [sessions|carts|all]")
		fmt.Println("  sessions - delete sessions not seen for 30 days")
		fmt.Println("  carts    - mark idle NEW carts as OLD")
		fmt.Println("  all      - run full cleanup (default)")
		os.Exit(1)
	}

	log.Info("cleanup completed successfully")
}
