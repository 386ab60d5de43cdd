package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sea-companion/internal/config"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/repository/cache"
	"github.com/sea-companion/internal/repository/file"
	"github.com/sea-companion/internal/repository/postgres"
	redisRepo "github.com/sea-companion/internal/repository/redis"
)

// Resources - хранилища и подключения процесса, выбранные конфигурацией
type Resources struct {
	Blobs   repository.BlobRepository
	Catalog repository.CatalogRepository
	// Streams - nil, если синхронизация выключена
	Streams repository.StreamRepository
	Checks  map[string]func(ctx context.Context) error

	closers []namedCloser
	logger  *zap.Logger
}

type namedCloser struct {
	name  string
	close func() error
}

// Open открывает хранилище записей, источник каталога и стримы синхронизации.
// Postgres и Redis подключаются только если их требует конфигурация.
func Open(cfg *config.Config, logger *zap.Logger) (*Resources, error) {
	res := &Resources{
		Checks: make(map[string]func(ctx context.Context) error),
		logger: logger,
	}

	if err := res.open(cfg); err != nil {
		res.Close()
		return nil, err
	}
	return res, nil
}

func (r *Resources) open(cfg *config.Config) error {
	var db *postgres.DB
	if cfg.Store.Backend == config.StoreBackendPostgres || cfg.Catalog.Source == config.CatalogSourcePostgres {
		var err error
		db, err = postgres.New(&cfg.Database, r.logger)
		if err != nil {
			return err
		}
		r.closers = append(r.closers, namedCloser{"postgres", db.Close})
		r.Checks["postgres"] = db.Health
	}

	switch cfg.Store.Backend {
	case config.StoreBackendFile:
		blobs, err := file.NewBlobRepository(cfg.Store.Dir, r.logger)
		if err != nil {
			return err
		}
		r.Blobs = blobs
	case config.StoreBackendRedis:
		redisClient, err := cache.NewRedis(&cfg.Redis, r.logger)
		if err != nil {
			return err
		}
		r.closers = append(r.closers, namedCloser{"redis", redisClient.Close})
		r.Checks["redis"] = redisClient.Health
		r.Blobs = cache.NewBlobRepository(redisClient)
	case config.StoreBackendPostgres:
		r.Blobs = postgres.NewBlobRepository(db)
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		r.Catalog = file.NewCatalogRepository(cfg.Catalog.ZonesFile, cfg.Catalog.BoundariesFile, r.logger)
	case config.CatalogSourcePostgres:
		r.Catalog = postgres.NewCatalogRepository(db)
	default:
		return fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	if cfg.Sync.Enabled {
		client, err := cache.NewRedisStreams(&cfg.Redis, &cfg.Sync, r.logger)
		if err != nil {
			return err
		}
		r.closers = append(r.closers, namedCloser{"redis-streams", client.Close})
		r.Checks["redis-streams"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		r.Streams = redisRepo.NewStreamRepository(client, cfg.Sync.StreamReadTimeout, cfg.Sync.BatchSize, r.logger)
	}

	r.logger.Info("Storage initialized",
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.Bool("sync_enabled", cfg.Sync.Enabled))
	return nil
}

// Close закрывает подключения в обратном порядке
func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		c := r.closers[i]
		if err := c.close(); err != nil {
			r.logger.Error("Failed to close connection", zap.String("name", c.name), zap.Error(err))
		}
	}
	r.closers = nil
}
