package repository

import "context"

// BlobRepository - хранилище JSON-документов по ключу. Каждая коллекция записей
// лежит целиком под одним ключом и переписывается целиком.
type BlobRepository interface {
	// Get возвращает документ по ключу. Отсутствующий ключ - (nil, nil).
	Get(ctx context.Context, key string) ([]byte, error)

	// Set заменяет документ целиком. Частично записанный документ не должен быть виден читателям.
	Set(ctx context.Context, key string, value []byte) error

	// Delete удаляет документы. Удаление отсутствующего ключа не ошибка.
	Delete(ctx context.Context, keys ...string) error
}
