package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain/repository"
)

type blobRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewBlobRepository - коллекции записей в таблице record_blobs, одна строка на ключ
func NewBlobRepository(db *DB) repository.BlobRepository {
	return &blobRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *blobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.GetContext(ctx, &value, `SELECT value FROM record_blobs WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get blob", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("postgres get error: %w", err)
	}

	return value, nil
}

// Set - один UPSERT, строка заменяется целиком в рамках одного оператора.
// Документ хранится как байты без разбора, порядок ключей и \u0000 сохраняются.
func (r *blobRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO record_blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		r.logger.Error("Failed to set blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("postgres set error: %w", err)
	}

	r.logger.Debug("Blob set", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (r *blobRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM record_blobs WHERE key = ANY($1)`, pq.Array(keys)); err != nil {
		r.logger.Error("Failed to delete blobs", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("postgres delete error: %w", err)
	}

	r.logger.Debug("Blobs deleted", zap.Strings("keys", keys))
	return nil
}
