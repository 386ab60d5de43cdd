package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain/repository"
)

type blobRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewBlobRepository - хранилище коллекций записей в Redis строках без TTL
func NewBlobRepository(redis *Redis) repository.BlobRepository {
	return &blobRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *blobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get blob", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	r.logger.Debug("Blob hit", zap.String("key", key))
	return val, nil
}

// Set - одна команда SET, документ заменяется атомарно
func (r *blobRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		r.logger.Error("Failed to set blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}

	r.logger.Debug("Blob set", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (r *blobRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to delete blobs", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("redis delete error: %w", err)
	}

	r.logger.Debug("Blobs deleted", zap.Strings("keys", keys))
	return nil
}
