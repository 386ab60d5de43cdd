package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/bootstrap"
	"github.com/sea-companion/internal/config"
	"github.com/sea-companion/internal/pkg/logger"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/worker"
	"github.com/sea-companion/internal/worker/recordsync"
)

// Отдельный процесс приёма подтверждений синхронизации, для развёртываний,
// где хранилище записей общее (redis или postgres).
func main() {
	envFile := pflag.String("env-file", ".env", "path to the env file with configuration")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.LoadFile(*envFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Sync.Enabled {
		fmt.Println("Sync is disabled in configuration. Set SYNC_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.NewService(cfg.Log.Level, "sync-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting sync ack worker",
		zap.String("ack_stream", cfg.Sync.AckStream),
		zap.String("consumer_group", cfg.Sync.ConsumerGroup),
		zap.String("store_backend", cfg.Store.Backend))

	if cfg.Store.Backend == config.StoreBackendFile {
		log.Warn("File store is shared with the API process only through the filesystem; concurrent writes are last-writer-wins")
	}

	// 3. Storage and streams
	res, err := bootstrap.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer res.Close()

	// 4. Use cases
	store := usecase.NewRecordStore(res.Blobs, cfg.Store.Prefix, log)
	syncUC := usecase.NewSyncUseCase(store, res.Streams, cfg.Sync.OutboxStream, log)

	// 5. Workers
	manager := worker.NewWorkerManager(log)
	manager.Register(recordsync.NewAckWorker(res.Streams, syncUC, cfg.Sync.AckStream, cfg.Sync.ConsumerGroup, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Worker started successfully")

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := manager.Stop(shutdownCtx); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Worker stopped successfully")
}
