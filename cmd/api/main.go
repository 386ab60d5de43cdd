package main

// @title Sea Companion API
// @version 1.0.0
// @description Офлайн хранилище улова, планов выходов и уведомлений для рыбаков.
// @description Классификация позиции по регуляторным зонам, мониторинг морских границ,
// @description оптимизация маршрута и синхронизация записей через outbox стрим.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "github.com/sea-companion/docs"
	"github.com/sea-companion/internal/bootstrap"
	"github.com/sea-companion/internal/config"
	httpDelivery "github.com/sea-companion/internal/delivery/http"
	"github.com/sea-companion/internal/delivery/http/handler"
	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/pkg/logger"
	"github.com/sea-companion/internal/repository/memory"
	"github.com/sea-companion/internal/usecase"
	"github.com/sea-companion/internal/worker"
	"github.com/sea-companion/internal/worker/boundary"
	"github.com/sea-companion/internal/worker/recordsync"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the env file with configuration")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.LoadFile(*envFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.NewService(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Sea Companion API",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Storage, catalog source and sync streams
	res, err := bootstrap.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer res.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	catalog, err := usecase.LoadCatalog(ctx, res.Catalog, log)
	if err != nil {
		log.Fatal("Failed to load zone catalog", zap.Error(err))
	}

	// 4. Use cases
	store := usecase.NewRecordStore(res.Blobs, cfg.Store.Prefix, log)

	locationUC := usecase.NewLocationUseCase(
		memory.NewLocationRepository(),
		domain.Position{Lat: cfg.Location.DefaultLat, Lon: cfg.Location.DefaultLon},
		cfg.Location.MaxFixAge,
		log,
	)
	catchUC := usecase.NewCatchUseCase(store, log)
	tripUC := usecase.NewTripUseCase(
		store,
		domain.Position{Lat: cfg.Location.TripOriginLat, Lon: cfg.Location.TripOriginLon},
		log,
	)
	alertUC := usecase.NewAlertUseCase(store, log)
	settingsUC := usecase.NewSettingsUseCase(store, log)
	syncUC := usecase.NewSyncUseCase(store, res.Streams, cfg.Sync.OutboxStream, log)
	zoneUC := usecase.NewZoneUseCase(catalog, locationUC, log)
	boundaryUC := usecase.NewBoundaryUseCase(catalog, locationUC, cfg.Monitor.ViolationThresholdKm, log)

	// 5. Background workers
	manager := worker.NewWorkerManager(log)

	var monitor handler.StatusProvider
	if cfg.Monitor.Enabled {
		var alerts boundary.AlertRaiser
		if cfg.Monitor.RaiseAlerts {
			alerts = alertUC
		}
		m := boundary.NewMonitor(boundaryUC, alerts, cfg.Monitor.Interval, log)
		manager.Register(m)
		monitor = m
	}
	if res.Streams != nil {
		manager.Register(recordsync.NewAckWorker(res.Streams, syncUC, cfg.Sync.AckStream, cfg.Sync.ConsumerGroup, log))
	}

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	workersStarted := len(manager.Names()) > 0
	if workersStarted {
		if err := manager.Start(workersCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 6. HTTP server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Catch:    handler.NewCatchHandler(catchUC, log),
		Trip:     handler.NewTripHandler(tripUC, log),
		Alert:    handler.NewAlertHandler(alertUC, log),
		Settings: handler.NewSettingsHandler(settingsUC, log),
		Sync:     handler.NewSyncHandler(syncUC, log),
		Zone:     handler.NewZoneHandler(zoneUC, boundaryUC, monitor, log),
		Location: handler.NewLocationHandler(locationUC, log),
	}, res.Checks)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Strings("workers", manager.Names()),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workersStarted {
		if err := manager.Stop(shutdownCtx); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
