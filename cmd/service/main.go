package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beadshop/config"
	"beadshop/internal/cleanup"
	"beadshop/internal/database"
	"beadshop/internal/logger"
	"beadshop/internal/producer"
	"beadshop/internal/repository"
	"beadshop/internal/service"
	shophttp "beadshop/internal/transport/http"

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

	repos := repository.New(db)

	var events service.Notifier
	var emailProducer *producer.EmailProducer
	if len(cfg.KafkaBrokers) > 0 {
		emailProducer = producer.NewEmailProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.AdminEmail)
		defer emailProducer.Close()
		events = emailProducer
	} else {
		log.Warn("KAFKA_BROKERS не задан, письма о заказах отправляться не будут")
	}

	cleanupSvc := cleanup.NewCleanupService(repos, log)
	scheduler := cleanup.NewScheduler(cleanupSvc, log)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	scheduler.Start(cleanupCtx)

	catalogSvc := service.NewCatalogService(repos)
	cartSvc := service.NewCartService(repos)
	orderSvc := service.NewOrderService(repos, events)

	r := shophttp.Router(cfg, catalogSvc, cartSvc, orderSvc, log)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting shop HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down shop HTTP server...")

	scheduler.Stop()
	cleanupCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("Shop HTTP server stopped gracefully")
}
