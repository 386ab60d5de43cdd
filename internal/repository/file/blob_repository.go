// Package file - файловые реализации репозиториев для офлайн режима:
// коллекции записей в JSON файлах и каталог зон в JSONC.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain/repository"
)

const (
	blobExt   = ".json"
	dirPerms  = 0o755
	filePerms = 0o644
)

type blobRepository struct {
	dir    string
	logger *zap.Logger
}

// NewBlobRepository создаёт хранилище документов в каталоге dir.
// Каталог создаётся при необходимости.
func NewBlobRepository(dir string, logger *zap.Logger) (repository.BlobRepository, error) {
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	logger.Info("File store ready", zap.String("dir", dir))

	return &blobRepository{
		dir:    dir,
		logger: logger,
	}, nil
}

// path - ключ превращается в имя файла, разделители пути в ключе запрещены
func (r *blobRepository) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(r.dir, key+blobExt), nil
}

func (r *blobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to read blob", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("file get error: %w", err)
	}

	return data, nil
}

// Set пишет через временный файл и rename, читатель видит либо старый документ, либо новый
func (r *blobRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.path(key)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(path, bytes.NewReader(value)); err != nil {
		r.logger.Error("Failed to write blob", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("file set error: %w", err)
	}

	// atomic.WriteFile не выставляет права для новых файлов
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("file chmod error: %w", err)
	}

	r.logger.Debug("Blob written", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (r *blobRepository) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, key := range keys {
		path, err := r.path(key)
		if err != nil {
			return err
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.logger.Error("Failed to delete blob", zap.String("key", key), zap.Error(err))
			return fmt.Errorf("file delete error: %w", err)
		}
	}

	r.logger.Debug("Blobs deleted", zap.Strings("keys", keys))
	return nil
}
