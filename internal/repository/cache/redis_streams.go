package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/config"
)

// NewRedisStreams создаёт отдельный клиент для outbox стримов синхронизации.
// Блокирующие XREADGROUP не должны занимать соединения пула хранилища записей.
func NewRedisStreams(cfg *config.RedisConfig, sync *config.SyncConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		ReadTimeout: sync.StreamReadTimeout + 2*time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis streams: %w", err)
	}

	logger.Info("Redis Streams connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("outbox", sync.OutboxStream),
		zap.String("ack", sync.AckStream),
	)

	return client, nil
}
